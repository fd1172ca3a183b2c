package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. IDs are generated by the application (UUIDv7).
type UserModel struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Names               string     `gorm:"type:varchar(150);not null"`
	Email               string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	Phone               string     `gorm:"type:varchar(32);not null;uniqueIndex:idx_users_phone"`
	PasswordHash        string     `gorm:"type:varchar(255);not null"`
	Role                string     `gorm:"type:varchar(20);not null;index"`
	Blocked             bool       `gorm:"not null"`
	Active              bool       `gorm:"not null"`
	TwoFactorEnabled    bool       `gorm:"not null"`
	NotificationEnabled bool       `gorm:"not null"`
	HasGoogleAuth       bool       `gorm:"not null"`
	DeactivatedBy       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
