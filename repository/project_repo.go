package repository

import (
	"github.com/web3_voting/model"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(project *model.Project) error {
	return r.db.Create(project).Error
}

func (r *ProjectRepository) List() ([]*model.Project, error) {
	var list []*model.Project
	if err := r.db.Order("created_at").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
