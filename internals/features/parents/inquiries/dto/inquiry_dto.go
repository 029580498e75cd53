package dto

import (
	"time"

	"github.com/google/uuid"
)

/* ===================== REQUESTS ===================== */

type CreateInquiryRequest struct {
	Category *string `json:"category" form:"category" validate:"omitempty,oneof=general admission schedule meal etc"`
	Subject  string  `json:"subject" form:"subject" validate:"required,max=200"`
	Message  string  `json:"message" form:"message" validate:"required,max=5000"`
}

// UpdateInquiryRequest: admin-side status/reply patch. Reply and replied-at
// always move together; status transitions are not checked backward.
type UpdateInquiryRequest struct {
	Status     *string `json:"status" form:"status" validate:"omitempty,oneof=received in_review completed"`
	AdminReply *string `json:"admin_reply" form:"admin_reply" validate:"omitempty,max=5000"`
}

/* ===================== RESPONSES ===================== */

type InquiryResponse struct {
	ParentInquiryID uuid.UUID  `json:"parent_inquiry_id"`
	Category        string     `json:"category"`
	Subject         string     `json:"subject"`
	Message         string     `json:"message"`
	Status          string     `json:"status"`
	AdminReply      *string    `json:"admin_reply,omitempty"`
	RepliedAt       *time.Time `json:"replied_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type AdminInquiryResponse struct {
	InquiryResponse

	ParentID    uuid.UUID `json:"parent_id"`
	ParentName  *string   `json:"parent_name,omitempty"`
	ParentEmail string    `json:"parent_email"`
}

type InquirySummaryResponse struct {
	Received  int64 `json:"received"`
	InReview  int64 `json:"in_review"`
	Completed int64 `json:"completed"`
	Total     int64 `json:"total"`
}
