package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole binds a user to a role. The mutation protocol keeps at most one row per user.
type UserRole struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:char(36);not null;index"`
	Role      Role      `json:"role" gorm:"size:20;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName pins the table name shared with the rest of the application.
func (UserRole) TableName() string {
	return "user_roles"
}

// BeforeCreate sets UUID before creating the record.
func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
