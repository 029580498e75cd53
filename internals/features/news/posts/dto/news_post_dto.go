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

// CreateNewsPostRequest: Slug is optional. When present it is slugified and
// used instead of the title-derived slug.
type CreateNewsPostRequest struct {
	Title    string  `json:"title" form:"title" validate:"required,max=200"`
	Slug     *string `json:"slug" form:"slug" validate:"omitempty,max=160"`
	Category string  `json:"category" form:"category" validate:"required,oneof=announcements newsletter events"`
	Summary  *string `json:"summary" form:"summary" validate:"omitempty,max=500"`
	Content  string  `json:"content" form:"content" validate:"omitempty"`

	HeroImageURL *string `json:"hero_image_url" form:"hero_image_url" validate:"omitempty,url"`
	HeroImageAlt *string `json:"hero_image_alt" form:"hero_image_alt" validate:"omitempty,max=200"`

	PublishAt     *time.Time `json:"publish_at" form:"publish_at"`
	IsHighlighted *bool      `json:"is_highlighted" form:"is_highlighted"`
	AudienceScope *string    `json:"audience_scope" form:"audience_scope" validate:"omitempty,oneof=public parents"`

	Attachments []AttachmentInput `json:"attachments" validate:"omitempty,max=5,dive"`
}

// UpdateNewsPostRequest: nil fields are untouched. A non-nil Attachments slice
// replaces the whole set (delete then reinsert), including the empty slice.
type UpdateNewsPostRequest struct {
	Title    *string `json:"title" form:"title" validate:"omitempty,max=200"`
	Category *string `json:"category" form:"category" validate:"omitempty,oneof=announcements newsletter events"`
	Summary  *string `json:"summary" form:"summary" validate:"omitempty,max=500"`
	Content  *string `json:"content" form:"content"`

	HeroImageURL *string `json:"hero_image_url" form:"hero_image_url" validate:"omitempty,url"`
	HeroImageAlt *string `json:"hero_image_alt" form:"hero_image_alt" validate:"omitempty,max=200"`

	PublishAt     *time.Time `json:"publish_at" form:"publish_at"`
	IsHighlighted *bool      `json:"is_highlighted" form:"is_highlighted"`
	AudienceScope *string    `json:"audience_scope" form:"audience_scope" validate:"omitempty,oneof=public parents"`

	Attachments *[]AttachmentInput `json:"attachments" validate:"omitempty,dive"`
}

/* ===================== RESPONSES ===================== */

type NewsPostResponse struct {
	NewsPostID    uuid.UUID `json:"news_post_id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	Summary       *string   `json:"summary,omitempty"`
	Content       []string  `json:"content"`
	HeroImageURL  *string   `json:"hero_image_url,omitempty"`
	HeroImageAlt  *string   `json:"hero_image_alt,omitempty"`
	PublishAt     time.Time `json:"publish_at"`
	IsHighlighted bool      `json:"is_highlighted"`
	AudienceScope string    `json:"audience_scope"`

	Attachments []helper.AttachmentLite `json:"attachments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
