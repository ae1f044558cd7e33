package database

import (
	"github.com/westley-wess/portfolio/models"
	"gorm.io/gorm"
)

type HireRequestRepo struct {
	db *gorm.DB
}

func NewHireRequestRepo(db *gorm.DB) *HireRequestRepo {
	return &HireRequestRepo{db}
}

func (r *HireRequestRepo) FindAll() ([]*models.HireRequest, error) {
	requests := []*models.HireRequest{}
	err := r.db.Order("submitted_at DESC").Find(&requests).Error
	return requests, err
}

func (r *HireRequestRepo) Add(request *models.HireRequest) error {
	return r.db.Create(request).Error
}
