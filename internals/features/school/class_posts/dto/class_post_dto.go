package dto

import (
	"time"

	"github.com/google/uuid"

	helper "sinchonkinder_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

type AttachmentInput struct {
	FileURL string  `json:"file_url" form:"file_url" validate:"required,url"`
	Label   *string `json:"label" form:"label" validate:"omitempty,max=100"`
}

type CreateClassPostRequest struct {
	ClassroomID string  `json:"classroom_id" form:"classroom_id" validate:"required,uuid"`
	Title       string  `json:"title" form:"title" validate:"required,max=200"`
	Summary     *string `json:"summary" form:"summary" validate:"omitempty,max=500"`
	Content     string  `json:"content" form:"content" validate:"omitempty"`

	PublishAt *time.Time `json:"publish_at" form:"publish_at"`

	Attachments []AttachmentInput `json:"attachments" validate:"omitempty,max=5,dive"`
}

type UpdateClassPostRequest struct {
	ClassroomID *string `json:"classroom_id" form:"classroom_id" validate:"omitempty,uuid"`
	Title       *string `json:"title" form:"title" validate:"omitempty,max=200"`
	Summary     *string `json:"summary" form:"summary" validate:"omitempty,max=500"`
	Content     *string `json:"content" form:"content"`

	PublishAt *time.Time `json:"publish_at" form:"publish_at"`

	Attachments *[]AttachmentInput `json:"attachments" validate:"omitempty,dive"`
}

/* ===================== RESPONSES ===================== */

type ClassPostResponse struct {
	ClassPostID   uuid.UUID `json:"class_post_id"`
	ClassroomID   uuid.UUID `json:"classroom_id"`
	ClassroomName *string   `json:"classroom_name,omitempty"`
	Title         string    `json:"title"`
	Summary       *string   `json:"summary,omitempty"`
	Content       []string  `json:"content"`
	PublishAt     time.Time `json:"publish_at"`

	Attachments []helper.AttachmentLite `json:"attachments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
