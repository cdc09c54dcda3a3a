// Package model contain gorm model for recording data to database
package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the authentication record. Everything user-facing lives on Profile,
// this row only carries credentials and the external Google identity.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	Email          *string   `gorm:"uniqueIndex" json:"email"`
	Password       string    `json:"-"`
	GoogleID       string    `gorm:"index" json:"-"`
	ProfilePicture string    `gorm:"type:text" json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
