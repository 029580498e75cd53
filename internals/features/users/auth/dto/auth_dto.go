package dto

import (
	"time"

	"github.com/google/uuid"

	model "sinchonkinder_backend/internals/features/users/auth/model"
)

/* ===================== REQUESTS ===================== */

type RegisterRequest struct {
	UserName        *string `json:"user_name" form:"user_name" validate:"omitempty,max=100"`
	UserEmail       string  `json:"user_email" form:"user_email" validate:"required,email"`
	Password        string  `json:"password" form:"password" validate:"required,min=8"`
	ConfirmPassword string  `json:"confirm_password" form:"confirm_password" validate:"required"`
}

type LoginRequest struct {
	UserEmail string `json:"user_email" form:"user_email" validate:"required,email"`
	Password  string `json:"password" form:"password" validate:"required"`
}

/* ===================== RESPONSES ===================== */

type UserResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	UserName      *string   `json:"user_name,omitempty"`
	UserEmail     string    `json:"user_email"`
	UserRole      string    `json:"user_role"`
	UserStatus    string    `json:"user_status"`
	UserCreatedAt time.Time `json:"user_created_at"`
}

func NewUserResponse(m *model.UserModel) *UserResponse {
	if m == nil {
		return nil
	}
	return &UserResponse{
		UserID:        m.UserID,
		UserName:      m.UserName,
		UserEmail:     m.UserEmail,
		UserRole:      m.UserRole,
		UserStatus:    m.UserStatus,
		UserCreatedAt: m.UserCreatedAt,
	}
}
