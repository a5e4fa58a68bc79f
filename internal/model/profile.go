package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NamePlaceholder is displayed for profiles without a full name.
const NamePlaceholder = "Sans nom"

// Profile is a user's identity record.
type Profile struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	FullName  *string   `json:"full_name" gorm:"size:255"`
	Email     string    `json:"email" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TableName pins the table name shared with the rest of the application.
func (Profile) TableName() string {
	return "profiles"
}

// BeforeCreate sets UUID before creating the record.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// EnrichedUser is a profile joined with its resolved role. It is never persisted.
type EnrichedUser struct {
	ID        string    `json:"id"`
	FullName  *string   `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Role      Role      `json:"role"`
}

// DisplayName returns the full name, or NamePlaceholder when it is absent.
func (u EnrichedUser) DisplayName() string {
	if u.FullName == nil || *u.FullName == "" {
		return NamePlaceholder
	}
	return *u.FullName
}
