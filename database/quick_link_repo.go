package database

import (
	"github.com/westley-wess/portfolio/models"
	"gorm.io/gorm"
)

type QuickLinkRepo struct {
	db *gorm.DB
}

func NewQuickLinkRepo(db *gorm.DB) *QuickLinkRepo {
	return &QuickLinkRepo{db}
}

// FindAll returns quick links in display order
func (r *QuickLinkRepo) FindAll() ([]*models.QuickLink, error) {
	links := []*models.QuickLink{}
	err := r.db.Order("display_order").Order("id").Find(&links).Error
	return links, err
}

func (r *QuickLinkRepo) Add(link *models.QuickLink) error {
	return r.db.Create(link).Error
}
