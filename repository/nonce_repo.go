package repository

import (
	"time"

	"github.com/web3_voting/model"
	"gorm.io/gorm"
)

type NonceRepository struct {
	db *gorm.DB
}

func NewNonceRepository(db *gorm.DB) *NonceRepository {
	return &NonceRepository{db: db}
}

// Replace marks every unused nonce for the address as used and inserts a
// fresh one, inside a single transaction so two concurrent issues can never
// both leave an unused nonce behind.
func (r *NonceRepository) Replace(address, value string) (*model.Nonce, error) {
	nonce := &model.Nonce{Address: address, Value: value}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Nonce{}).
			Where("address = ? AND used = ?", address, false).
			Updates(map[string]interface{}{"used": true, "updated_at": time.Now().UTC()}).Error; err != nil {
			return err
		}
		return tx.Create(nonce).Error
	})
	if err != nil {
		return nil, err
	}
	return nonce, nil
}

// FindUnused returns the nonce row matching address and exact value with
// used=false, or gorm.ErrRecordNotFound.
func (r *NonceRepository) FindUnused(address, value string) (*model.Nonce, error) {
	var nonce model.Nonce
	if err := r.db.Where("address = ? AND value = ? AND used = ?", address, value, false).First(&nonce).Error; err != nil {
		return nil, err
	}
	return &nonce, nil
}

// MarkUsed flips a nonce to used. Marking an already-used nonce is a no-op.
func (r *NonceRepository) MarkUsed(id uint64) error {
	return r.db.Model(&model.Nonce{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"used": true, "updated_at": time.Now().UTC()}).Error
}

func (r *NonceRepository) CountByAddress(address string, used bool) (int64, error) {
	var total int64
	err := r.db.Model(&model.Nonce{}).Where("address = ? AND used = ?", address, used).Count(&total).Error
	return total, err
}
