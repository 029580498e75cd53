package dto

import (
	"time"

	"github.com/google/uuid"
)

/* ===================== REQUESTS ===================== */

type CreateClassroomRequest struct {
	Name             string  `json:"name" form:"name" validate:"required,max=100"`
	Description      *string `json:"description" form:"description" validate:"omitempty,max=1000"`
	AgeRange         *string `json:"age_range" form:"age_range" validate:"omitempty,max=50"`
	LeadTeacher      *string `json:"lead_teacher" form:"lead_teacher" validate:"omitempty,max=100"`
	AssistantTeacher *string `json:"assistant_teacher" form:"assistant_teacher" validate:"omitempty,max=100"`
}

type UpdateClassroomRequest struct {
	Name             *string `json:"name" form:"name" validate:"omitempty,max=100"`
	Description      *string `json:"description" form:"description" validate:"omitempty,max=1000"`
	AgeRange         *string `json:"age_range" form:"age_range" validate:"omitempty,max=50"`
	LeadTeacher      *string `json:"lead_teacher" form:"lead_teacher" validate:"omitempty,max=100"`
	AssistantTeacher *string `json:"assistant_teacher" form:"assistant_teacher" validate:"omitempty,max=100"`
}

type CreateChildRequest struct {
	Name        string  `json:"name" form:"name" validate:"required,max=100"`
	ClassroomID *string `json:"classroom_id" form:"classroom_id" validate:"omitempty,uuid"`
}

type UpdateChildRequest struct {
	Name        *string `json:"name" form:"name" validate:"omitempty,max=100"`
	Status      *string `json:"status" form:"status" validate:"omitempty,oneof=active inactive"`
	ClassroomID *string `json:"classroom_id" form:"classroom_id" validate:"omitempty,uuid"`
}

type LinkParentRequest struct {
	ParentID string `json:"parent_id" form:"parent_id" validate:"required,uuid"`
}

/* ===================== RESPONSES ===================== */

type ClassroomResponse struct {
	ClassroomID      uuid.UUID `json:"classroom_id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description,omitempty"`
	AgeRange         *string   `json:"age_range,omitempty"`
	LeadTeacher      *string   `json:"lead_teacher,omitempty"`
	AssistantTeacher *string   `json:"assistant_teacher,omitempty"`
	ChildCount       int64     `json:"child_count"`
	CreatedAt        time.Time `json:"created_at"`
}

type ChildResponse struct {
	ChildID       uuid.UUID  `json:"child_id"`
	Name          string     `json:"name"`
	Status        string     `json:"status"`
	ClassroomID   *uuid.UUID `json:"classroom_id,omitempty"`
	ClassroomName *string    `json:"classroom_name,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type MemberResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	UserName   *string   `json:"user_name,omitempty"`
	UserEmail  string    `json:"user_email"`
	UserStatus string    `json:"user_status"`
	JoinedAt   time.Time `json:"joined_at"`

	Children []ChildResponse `json:"children"`
}

/* ===================== PARENT DASHBOARD ===================== */

type DashboardChild struct {
	ChildID       uuid.UUID  `json:"child_id"`
	Name          string     `json:"name"`
	Status        string     `json:"status"`
	ClassroomID   *uuid.UUID `json:"classroom_id,omitempty"`
	ClassroomName *string    `json:"classroom_name,omitempty"`
}

type DashboardPost struct {
	ClassPostID   uuid.UUID `json:"class_post_id"`
	Title         string    `json:"title"`
	Summary       *string   `json:"summary,omitempty"`
	ClassroomName string    `json:"classroom_name"`
	PublishAt     time.Time `json:"publish_at"`
}

type DashboardResponse struct {
	Children    []DashboardChild `json:"children"`
	RecentPosts []DashboardPost  `json:"recent_posts"`
}
