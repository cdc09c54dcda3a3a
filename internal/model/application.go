package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// ApplicationStatusPending indicates that the application is pending review
	ApplicationStatusPending = "PENDING"
	// ApplicationStatusAccepted indicates that the job finder accepted the application
	ApplicationStatusAccepted = "ACCEPTED"
	// ApplicationStatusRejected indicates that the application has been rejected
	ApplicationStatusRejected = "REJECTED"
)

// Application represents a job application record. The composite unique index
// on (job_id, applicant_id) is the store-level guard against duplicate
// applications from the same profile.
type Application struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AppliedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"applied_at"`
	Status    string    `gorm:"type:text;default:'PENDING'" json:"status"`

	JobID uint `gorm:"not null;uniqueIndex:idx_job_applicant" json:"job_id"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID" json:"-"`

	ApplicantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_job_applicant" json:"applicant_id"`
	Applicant   Profile   `gorm:"foreignKey:ApplicantID;references:ID" json:"-"`

	Message   string `gorm:"type:text" json:"message"`
	ResumeURL string `gorm:"type:text" json:"resume_url"`

	ResumeFileID *int `json:"resume_file_id"`
	ResumeFile   File `gorm:"foreignKey:ResumeFileID;references:ID;constraint:OnDelete:SET NULL" json:"-"`
}
