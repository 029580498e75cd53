package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	classroomModel "sinchonkinder_backend/internals/features/school/classrooms/model"
)

type ClassPostModel struct {
	ClassPostID          uuid.UUID      `gorm:"column:class_post_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"class_post_id"`
	ClassPostClassroomID uuid.UUID      `gorm:"column:class_post_classroom_id;type:uuid;not null;index" json:"class_post_classroom_id"`
	ClassPostTitle       string         `gorm:"column:class_post_title;type:varchar(200);not null" json:"class_post_title"`
	ClassPostSummary     *string        `gorm:"column:class_post_summary;type:text" json:"class_post_summary,omitempty"`
	ClassPostContent     datatypes.JSON `gorm:"column:class_post_content;type:jsonb" json:"class_post_content"`

	ClassPostPublishAt time.Time  `gorm:"column:class_post_publish_at;type:timestamptz;not null;default:now();index" json:"class_post_publish_at"`
	ClassPostAuthorID  *uuid.UUID `gorm:"column:class_post_author_id;type:uuid" json:"class_post_author_id,omitempty"`

	ClassPostCreatedAt time.Time `gorm:"column:class_post_created_at;type:timestamptz;not null;autoCreateTime" json:"class_post_created_at"`
	ClassPostUpdatedAt time.Time `gorm:"column:class_post_updated_at;type:timestamptz;not null;autoUpdateTime" json:"class_post_updated_at"`

	Classroom *classroomModel.ClassroomModel `gorm:"foreignKey:ClassPostClassroomID;references:ClassroomID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ClassPostModel) TableName() string { return "class_posts" }

type ClassPostAttachmentModel struct {
	ClassPostAttachmentID      uuid.UUID `gorm:"column:class_post_attachment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"class_post_attachment_id"`
	ClassPostAttachmentPostID  uuid.UUID `gorm:"column:class_post_attachment_post_id;type:uuid;not null;index" json:"class_post_attachment_post_id"`
	ClassPostAttachmentFileURL string    `gorm:"column:class_post_attachment_file_url;type:text;not null" json:"class_post_attachment_file_url"`
	ClassPostAttachmentLabel   *string   `gorm:"column:class_post_attachment_label;type:varchar(100)" json:"class_post_attachment_label,omitempty"`

	ClassPostAttachmentCreatedAt time.Time `gorm:"column:class_post_attachment_created_at;type:timestamptz;not null;autoCreateTime" json:"class_post_attachment_created_at"`

	Post *ClassPostModel `gorm:"foreignKey:ClassPostAttachmentPostID;references:ClassPostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ClassPostAttachmentModel) TableName() string { return "class_post_attachments" }
