package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Job status constants
var (
	// JobStatusPending indicates the job is waiting for admin review
	JobStatusPending = "PENDING"
	// JobStatusApproved indicates an admin approved the job
	JobStatusApproved = "APPROVED"
	// JobStatusRejected indicates an admin rejected the job
	JobStatusRejected = "REJECTED"
	// JobStatusPosted indicates the job went live without review
	JobStatusPosted = "POSTED"
)

// Job type constants
var (
	JobTypeAcademicProject      = "ACADEMIC_PROJECT"
	JobTypeStartupCollaboration = "STARTUP_COLLABORATION"
	JobTypePartTime             = "PART_TIME_JOB"
	JobTypeCompetitionHackathon = "COMPETITION_HACKATHON"
)

// DefaultRejectionReason is used when admin rejects without giving a reason
var DefaultRejectionReason = "No reason provided"

// JobStatuses lists every valid job status
var JobStatuses = []string{JobStatusPending, JobStatusApproved, JobStatusRejected, JobStatusPosted}

// JobTypes lists every valid job type
var JobTypes = []string{
	JobTypeAcademicProject,
	JobTypeStartupCollaboration,
	JobTypePartTime,
	JobTypeCompetitionHackathon,
}

// EditableJobInfo is part of job that the owner can edit
type EditableJobInfo struct {
	Title       string         `gorm:"type:text" json:"title"`
	Type        string         `gorm:"type:text" json:"type"`
	Description string         `gorm:"type:text" json:"description"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
}

// Job is gorm model for store job posting data in DB
type Job struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"created_by_id"`
	CreatedBy   Profile   `gorm:"foreignKey:CreatedByID;references:ID" json:"-"`

	EditableJobInfo

	Status          string  `gorm:"type:text;default:'PENDING'" json:"status"`
	RejectionReason *string `gorm:"type:text" json:"rejection_reason"`

	IsPublished       bool `gorm:"default:true" json:"is_published"`
	IsFilled          bool `gorm:"default:false" json:"is_filled"`
	ApplicationsCount int  `gorm:"default:0" json:"applications_count"`

	ApprovedByID *uuid.UUID `gorm:"type:uuid" json:"approved_by_id"`
	ApprovedAt   *time.Time `gorm:"type:timestamp" json:"approved_at"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`
}

// JobResponse is the listing shape for a job: the row joined with its
// creator summary.
type JobResponse struct {
	ID uint `json:"id"`
	EditableJobInfo
	Status            string         `json:"status"`
	RejectionReason   *string        `json:"rejection_reason"`
	IsPublished       bool           `json:"is_published"`
	IsFilled          bool           `json:"is_filled"`
	ApplicationsCount int            `json:"applications_count"`
	ApprovedByID      *uuid.UUID     `json:"approved_by_id"`
	ApprovedAt        *time.Time     `json:"approved_at"`
	CreatedAt         time.Time      `json:"created_at"`
	CreatedBy         ProfileSummary `json:"created_by"`
}

// ToResponse converts a job (with CreatedBy preloaded) to its listing shape
func (j *Job) ToResponse() JobResponse {
	return JobResponse{
		ID:                j.ID,
		EditableJobInfo:   j.EditableJobInfo,
		Status:            j.Status,
		RejectionReason:   j.RejectionReason,
		IsPublished:       j.IsPublished,
		IsFilled:          j.IsFilled,
		ApplicationsCount: j.ApplicationsCount,
		ApprovedByID:      j.ApprovedByID,
		ApprovedAt:        j.ApprovedAt,
		CreatedAt:         j.CreatedAt,
		CreatedBy:         j.CreatedBy.Summary(),
	}
}

// Approve transitions the job to APPROVED. Rejection reason is cleared
// because it is mutually exclusive with the approver fields.
func (j *Job) Approve(adminProfileID uuid.UUID) {
	now := time.Now()
	j.Status = JobStatusApproved
	j.ApprovedByID = &adminProfileID
	j.ApprovedAt = &now
	j.RejectionReason = nil
}

// Reject transitions the job to REJECTED with the given reason, falling back
// to DefaultRejectionReason when empty. Approver fields are cleared.
func (j *Job) Reject(reason string) {
	if reason == "" {
		reason = DefaultRejectionReason
	}
	j.Status = JobStatusRejected
	j.RejectionReason = &reason
	j.ApprovedByID = nil
	j.ApprovedAt = nil
}

// ValidateType returns an error when the job type is not one of the four
// allowed categories.
func (j *Job) ValidateType() error {
	for _, t := range JobTypes {
		if j.Type == t {
			return nil
		}
	}
	return fmt.Errorf("invalid job type: %s", j.Type)
}
