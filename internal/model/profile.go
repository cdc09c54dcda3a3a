package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Profile roles
var (
	// RoleSeeker applies to jobs posted by finders
	RoleSeeker = "SEEKER"
	// RoleFinder posts jobs and projects
	RoleFinder = "FINDER"
)

// EditableProfileInfo is part of profile that owner can edit
type EditableProfileInfo struct {
	FullName   string         `gorm:"type:text" json:"full_name"`
	AvatarURL  string         `gorm:"type:text" json:"avatar_url"`
	Bio        string         `gorm:"type:text" json:"bio"`
	Department string         `gorm:"type:text" json:"department"`
	Year       string         `gorm:"type:text" json:"year"`
	Skills     pq.StringArray `gorm:"type:text[]" json:"skills"`
	Interests  pq.StringArray `gorm:"type:text[]" json:"interests"`
}

// Profile is the application-level user record, one-to-one with User.
type Profile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	Email string `gorm:"type:text" json:"email"`
	Role  string `gorm:"type:text;default:'SEEKER';check:role IN ('SEEKER', 'FINDER')" json:"role"`
	EditableProfileInfo

	StripeCustomerID *string `gorm:"index" json:"stripe_customer_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileSummary is the creator card embedded in job listings
type ProfileSummary struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url"`
	Role      string    `json:"role"`
}

// Summary converts a profile to its listing card
func (p *Profile) Summary() ProfileSummary {
	return ProfileSummary{
		ID:        p.ID,
		FullName:  p.FullName,
		Email:     p.Email,
		AvatarURL: p.AvatarURL,
		Role:      p.Role,
	}
}
