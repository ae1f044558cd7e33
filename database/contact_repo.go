package database

import (
	"github.com/westley-wess/portfolio/models"
	"gorm.io/gorm"
)

type ContactSubmissionRepo struct {
	db *gorm.DB
}

func NewContactSubmissionRepo(db *gorm.DB) *ContactSubmissionRepo {
	return &ContactSubmissionRepo{db}
}

// FindAll returns every submission, newest first
func (r *ContactSubmissionRepo) FindAll() ([]*models.ContactSubmission, error) {
	submissions := []*models.ContactSubmission{}
	err := r.db.Order("submitted_at DESC").Find(&submissions).Error
	return submissions, err
}

func (r *ContactSubmissionRepo) Add(submission *models.ContactSubmission) error {
	return r.db.Create(submission).Error
}
