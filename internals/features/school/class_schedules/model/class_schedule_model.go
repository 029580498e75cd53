package model

import (
	"time"

	"github.com/google/uuid"

	classroomModel "sinchonkinder_backend/internals/features/school/classrooms/model"
)

// ClassScheduleModel: classroom nullable, NULL rows are kindergarten-wide
// events every parent sees.
type ClassScheduleModel struct {
	ClassScheduleID          uuid.UUID  `gorm:"column:class_schedule_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"class_schedule_id"`
	ClassScheduleClassroomID *uuid.UUID `gorm:"column:class_schedule_classroom_id;type:uuid;index" json:"class_schedule_classroom_id,omitempty"`

	ClassScheduleTitle       string  `gorm:"column:class_schedule_title;type:varchar(200);not null" json:"class_schedule_title"`
	ClassScheduleDescription *string `gorm:"column:class_schedule_description;type:text" json:"class_schedule_description,omitempty"`
	ClassScheduleLocation    *string `gorm:"column:class_schedule_location;type:varchar(200)" json:"class_schedule_location,omitempty"`

	ClassScheduleStartDate time.Time  `gorm:"column:class_schedule_start_date;type:date;not null;index" json:"class_schedule_start_date"`
	ClassScheduleEndDate   *time.Time `gorm:"column:class_schedule_end_date;type:date" json:"class_schedule_end_date,omitempty"`

	ClassScheduleCreatedAt time.Time `gorm:"column:class_schedule_created_at;type:timestamptz;not null;autoCreateTime" json:"class_schedule_created_at"`
	ClassScheduleUpdatedAt time.Time `gorm:"column:class_schedule_updated_at;type:timestamptz;not null;autoUpdateTime" json:"class_schedule_updated_at"`

	Classroom *classroomModel.ClassroomModel `gorm:"foreignKey:ClassScheduleClassroomID;references:ClassroomID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ClassScheduleModel) TableName() string { return "class_schedules" }
