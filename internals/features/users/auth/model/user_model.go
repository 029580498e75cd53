package model

import (
	"time"

	"github.com/google/uuid"
)

type UserModel struct {
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	UserName         *string   `gorm:"column:user_name;type:varchar(100)" json:"user_name,omitempty"`
	UserEmail        string    `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex" json:"user_email"`
	UserPasswordHash string    `gorm:"column:user_password_hash;type:text;not null" json:"-"`
	UserRole         string    `gorm:"column:user_role;type:varchar(20);not null;default:parent" json:"user_role"`
	UserStatus       string    `gorm:"column:user_status;type:varchar(20);not null;default:pending" json:"user_status"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;type:timestamptz;not null;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;type:timestamptz;not null;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string { return "users" }
