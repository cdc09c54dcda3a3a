package model

import (
	"github.com/google/uuid"
)

// Notification type constants
var (
	// NotificationJobApproved is sent to a job creator when admin approves
	NotificationJobApproved = "JOB_APPROVED"
	// NotificationJobRejected is sent to a job creator when admin rejects
	NotificationJobRejected = "JOB_REJECTED"
	// NotificationNewApplication is sent to a job creator on a new application
	NotificationNewApplication = "NEW_APPLICATION"
)

// Notification is an append-only row targeted at a profile. There is no
// read/unread lifecycle.
type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Target    Profile   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Type      string    `gorm:"type:text;not null" json:"type"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt int64     `gorm:"autoCreateTime;->" json:"created_at"`
}
