package dto

import (
	"time"

	"github.com/google/uuid"
)

/* ===================== REQUESTS ===================== */

type CreateClassScheduleRequest struct {
	ClassroomID *string `json:"classroom_id" form:"classroom_id" validate:"omitempty,uuid"`
	Title       string  `json:"title" form:"title" validate:"required,max=200"`
	Description *string `json:"description" form:"description" validate:"omitempty,max=1000"`
	Location    *string `json:"location" form:"location" validate:"omitempty,max=200"`

	StartDate string  `json:"start_date" form:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" form:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateClassScheduleRequest struct {
	ClassroomID *string `json:"classroom_id" form:"classroom_id" validate:"omitempty,uuid"`
	Title       *string `json:"title" form:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" form:"description" validate:"omitempty,max=1000"`
	Location    *string `json:"location" form:"location" validate:"omitempty,max=200"`

	StartDate *string `json:"start_date" form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" form:"end_date" validate:"omitempty,datetime=2006-01-02"`

	// true detaches the schedule from its classroom (kindergarten-wide)
	ClearClassroom bool `json:"clear_classroom" form:"clear_classroom"`
}

/* ===================== RESPONSES ===================== */

type ClassScheduleResponse struct {
	ClassScheduleID uuid.UUID  `json:"class_schedule_id"`
	ClassroomID     *uuid.UUID `json:"classroom_id,omitempty"`
	ClassroomName   *string    `json:"classroom_name,omitempty"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	Location        *string    `json:"location,omitempty"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
