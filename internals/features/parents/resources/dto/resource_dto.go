package dto

import (
	"time"

	"github.com/google/uuid"
)

/* ===================== REQUESTS ===================== */

type CreateResourceRequest struct {
	Title       string     `json:"title" form:"title" validate:"required,max=200"`
	Description *string    `json:"description" form:"description" validate:"omitempty,max=1000"`
	Category    *string    `json:"category" form:"category" validate:"omitempty,max=50"`
	Type        string     `json:"type" form:"type" validate:"required,oneof=form committee"`
	FileURL     string     `json:"file_url" form:"file_url" validate:"required,url"`
	PublishedAt *time.Time `json:"published_at" form:"published_at"`
}

type UpdateResourceRequest struct {
	Title       *string    `json:"title" form:"title" validate:"omitempty,max=200"`
	Description *string    `json:"description" form:"description" validate:"omitempty,max=1000"`
	Category    *string    `json:"category" form:"category" validate:"omitempty,max=50"`
	Type        *string    `json:"type" form:"type" validate:"omitempty,oneof=form committee"`
	FileURL     *string    `json:"file_url" form:"file_url" validate:"omitempty,url"`
	PublishedAt *time.Time `json:"published_at" form:"published_at"`
}

/* ===================== RESPONSES ===================== */

type ResourceResponse struct {
	ParentResourceID uuid.UUID `json:"parent_resource_id"`
	Title            string    `json:"title"`
	Description      *string   `json:"description,omitempty"`
	Category         *string   `json:"category,omitempty"`
	Type             string    `json:"type"`
	FileURL          string    `json:"file_url"`
	PublishedAt      time.Time `json:"published_at"`
	CreatedAt        time.Time `json:"created_at"`
}

type ResourceOverviewResponse struct {
	Forms     []ResourceResponse `json:"forms"`
	Committee []ResourceResponse `json:"committee"`
}
