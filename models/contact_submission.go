package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactSubmission is a message left through the contact form
type ContactSubmission struct {
	ID             uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name           string    `json:"name" db:"name" gorm:"type:varchar(100);not null"`
	Email          string    `json:"email" db:"email" gorm:"type:text;not null"`
	Message        string    `json:"message" db:"message" gorm:"type:text;not null"`
	SubmissionType string    `json:"submission_type" db:"submission_type" gorm:"type:varchar(20);not null;default:general"`
	SubmittedAt    time.Time `json:"submitted_at" db:"submitted_at" gorm:"not null;autoCreateTime"`
}

func (c *ContactSubmission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.SubmissionType == "" {
		c.SubmissionType = "general"
	}
	return nil
}
