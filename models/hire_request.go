package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HireRequest is an employment or contract offer submitted through the hire form
type HireRequest struct {
	ID             uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ApplicantName  string    `json:"applicant_name" db:"applicant_name" gorm:"type:varchar(100);not null"`
	ApplicantEmail string    `json:"applicant_email" db:"applicant_email" gorm:"type:text;not null"`
	ApplicantPhone string    `json:"applicant_phone" db:"applicant_phone" gorm:"type:varchar(20);not null"`
	CompanyName    string    `json:"company_name" db:"company_name" gorm:"type:varchar(150);not null"`
	Role           string    `json:"role" db:"role" gorm:"type:varchar(100);not null"`
	OfferedSalary  float64   `json:"offered_salary" db:"offered_salary" gorm:"type:numeric(12,2);not null"`
	Message        *string   `json:"message,omitempty" db:"message" gorm:"type:text"`
	SubmittedAt    time.Time `json:"submitted_at" db:"submitted_at" gorm:"not null;autoCreateTime"`
}

func (h *HireRequest) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
