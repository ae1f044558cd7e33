package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project sources
const (
	SourceManual = "MANUAL"
	SourceGitHub = "GITHUB"
)

// Project is a curated portfolio entry
type Project struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string    `json:"title" db:"title" gorm:"type:varchar(100);not null;uniqueIndex:idx_project_title"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null"`
	TechStack   string    `json:"tech_stack" db:"tech_stack" gorm:"type:varchar(200);not null"`
	GithubURL   *string   `json:"github_url,omitempty" db:"github_url" gorm:"type:text"`
	DemoURL     *string   `json:"demo_url,omitempty" db:"demo_url" gorm:"type:text"`
	Source      string    `json:"source" db:"source" gorm:"type:varchar(10);not null;default:MANUAL"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"not null;index:idx_project_created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at" gorm:"not null"`
}

// BeforeCreate assigns the id on the application side so sqlite and postgres
// behave the same
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Source == "" {
		p.Source = SourceManual
	}
	return nil
}
