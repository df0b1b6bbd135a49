package repository

import (
	"errors"

	"github.com/web3_voting/model"
	"gorm.io/gorm"
)

// ErrAlreadyVoted is returned when an insert hits the (project_id, address)
// uniqueness constraint. Callers treat it as the already-voted path, not a
// hard failure.
var ErrAlreadyVoted = errors.New("vote already recorded for this address and project")

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) HasVoted(projectID, address string) (bool, error) {
	var total int64
	err := r.db.Model(&model.Vote{}).Where("project_id = ? AND address = ?", projectID, address).Count(&total).Error
	return total > 0, err
}

// Create inserts a vote row. A duplicate-key conflict from a concurrent
// submit for the same pair is converted to ErrAlreadyVoted.
func (r *VoteRepository) Create(vote *model.Vote) error {
	if err := r.db.Create(vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyVoted
		}
		return err
	}
	return nil
}

func (r *VoteRepository) CountForProject(projectID string) (int64, error) {
	var total int64
	err := r.db.Model(&model.Vote{}).Where("project_id = ?", projectID).Count(&total).Error
	return total, err
}

// CountsByProject aggregates vote totals for all projects in one query.
func (r *VoteRepository) CountsByProject() (map[string]int64, error) {
	type row struct {
		ProjectID string
		Total     int64
	}
	var rows []row
	err := r.db.Model(&model.Vote{}).
		Select("project_id, COUNT(*) AS total").
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.ProjectID] = rw.Total
	}
	return counts, nil
}
