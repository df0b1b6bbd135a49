package model

import (
	"time"

	"gorm.io/gorm"
)

// Project being voted on. Vote counts are aggregated from the votes table,
// never stored here.
type Project struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Website     string    `gorm:"size:512" json:"website,omitempty"`
	Image       string    `gorm:"size:512" json:"image,omitempty"`
	Chain       string    `gorm:"size:64" json:"chain,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Project) TableName() string { return "projects" }

// Vote records one accepted vote. The unique index on (project_id, address)
// is what enforces one vote per address per project under concurrent submits.
type Vote struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	ProjectID string    `gorm:"size:36;not null;uniqueIndex:idx_votes_project_address" json:"project_id"`
	Address   string    `gorm:"size:64;not null;uniqueIndex:idx_votes_project_address" json:"address"`
	Signature string    `gorm:"size:256;not null" json:"signature"`
	Nonce     string    `gorm:"size:64;not null" json:"nonce"`
	CreatedAt time.Time `json:"created_at"`
}

func (Vote) TableName() string { return "votes" }

// Nonce is a one-time signing challenge issued per address. Rows are never
// deleted; consumption flips Used. At most one row per address may have
// Used=false at any time.
type Nonce struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Address   string    `gorm:"size:64;not null;index:idx_nonces_address_used" json:"address"`
	Value     string    `gorm:"size:64;not null" json:"nonce"`
	Used      bool      `gorm:"not null;default:false;index:idx_nonces_address_used" json:"used"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Nonce) TableName() string { return "nonces" }

// helper: create tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Project{}, &Vote{}, &Nonce{})
}
