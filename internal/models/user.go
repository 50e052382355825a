package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Username          string         `gorm:"type:varchar(100);unique;not null" json:"username"`
	Email             string         `gorm:"type:varchar(100);unique;not null" json:"email"`
	Password          string         `gorm:"type:varchar(255);not null" json:"-"`
	PreferredLanguage string         `gorm:"type:varchar(10);default:english" json:"preferred_language"`
	NotificationToken string         `gorm:"type:varchar(255)" json:"notification_token,omitempty"`
	LastLogin         *time.Time     `json:"last_login,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
