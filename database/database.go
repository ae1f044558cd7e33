package database

import (
	"gorm.io/gorm"
)

type Database struct {
	db                    *gorm.DB
	projectRepo           *ProjectRepo
	contactSubmissionRepo *ContactSubmissionRepo
	hireRequestRepo       *HireRequestRepo
	quickLinkRepo         *QuickLinkRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                    db,
		projectRepo:           NewProjectRepo(db),
		contactSubmissionRepo: NewContactSubmissionRepo(db),
		hireRequestRepo:       NewHireRequestRepo(db),
		quickLinkRepo:         NewQuickLinkRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ContactSubmissionRepo() *ContactSubmissionRepo {
	return d.contactSubmissionRepo
}

func (d Database) HireRequestRepo() *HireRequestRepo {
	return d.hireRequestRepo
}

func (d Database) QuickLinkRepo() *QuickLinkRepo {
	return d.quickLinkRepo
}

// Ping checks the underlying connection
func (d Database) Ping() error {
	var result int
	return d.db.Raw("SELECT 1").Scan(&result).Error
}
