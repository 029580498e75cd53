package model

import (
	"time"

	"github.com/google/uuid"
)

type ClassroomModel struct {
	ClassroomID          uuid.UUID `gorm:"column:classroom_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"classroom_id"`
	ClassroomName        string    `gorm:"column:classroom_name;type:varchar(100);not null" json:"classroom_name"`
	ClassroomDescription *string   `gorm:"column:classroom_description;type:text" json:"classroom_description,omitempty"`
	ClassroomAgeRange    *string   `gorm:"column:classroom_age_range;type:varchar(50)" json:"classroom_age_range,omitempty"`

	ClassroomLeadTeacher      *string `gorm:"column:classroom_lead_teacher;type:varchar(100)" json:"classroom_lead_teacher,omitempty"`
	ClassroomAssistantTeacher *string `gorm:"column:classroom_assistant_teacher;type:varchar(100)" json:"classroom_assistant_teacher,omitempty"`

	ClassroomCreatedAt time.Time `gorm:"column:classroom_created_at;type:timestamptz;not null;autoCreateTime" json:"classroom_created_at"`
	ClassroomUpdatedAt time.Time `gorm:"column:classroom_updated_at;type:timestamptz;not null;autoUpdateTime" json:"classroom_updated_at"`
}

func (ClassroomModel) TableName() string { return "classrooms" }

type ChildModel struct {
	ChildID     uuid.UUID `gorm:"column:child_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"child_id"`
	ChildName   string    `gorm:"column:child_name;type:varchar(100);not null" json:"child_name"`
	ChildStatus string    `gorm:"column:child_status;type:varchar(20);not null;default:active" json:"child_status"`

	// nullable: a child can exist before being assigned to a classroom
	ChildClassroomID *uuid.UUID `gorm:"column:child_classroom_id;type:uuid;index" json:"child_classroom_id,omitempty"`

	ChildCreatedAt time.Time `gorm:"column:child_created_at;type:timestamptz;not null;autoCreateTime" json:"child_created_at"`
	ChildUpdatedAt time.Time `gorm:"column:child_updated_at;type:timestamptz;not null;autoUpdateTime" json:"child_updated_at"`

	Classroom *ClassroomModel `gorm:"foreignKey:ChildClassroomID;references:ClassroomID;constraint:OnDelete:SET NULL" json:"-"`
}

func (ChildModel) TableName() string { return "children" }

// ChildParentModel links a parent account to a child (many-to-many).
type ChildParentModel struct {
	ChildParentChildID  uuid.UUID `gorm:"column:child_parent_child_id;type:uuid;primaryKey" json:"child_parent_child_id"`
	ChildParentParentID uuid.UUID `gorm:"column:child_parent_parent_id;type:uuid;primaryKey;index" json:"child_parent_parent_id"`

	ChildParentCreatedAt time.Time `gorm:"column:child_parent_created_at;type:timestamptz;not null;autoCreateTime" json:"child_parent_created_at"`
}

func (ChildParentModel) TableName() string { return "child_parents" }
