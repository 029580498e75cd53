package model

import (
	"time"

	"github.com/google/uuid"
)

type ParentInquiryModel struct {
	ParentInquiryID       uuid.UUID `gorm:"column:parent_inquiry_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"parent_inquiry_id"`
	ParentInquiryParentID uuid.UUID `gorm:"column:parent_inquiry_parent_id;type:uuid;not null;index" json:"parent_inquiry_parent_id"`

	ParentInquiryCategory string `gorm:"column:parent_inquiry_category;type:varchar(30);not null;default:general" json:"parent_inquiry_category"`
	ParentInquirySubject  string `gorm:"column:parent_inquiry_subject;type:varchar(200);not null" json:"parent_inquiry_subject"`
	ParentInquiryMessage  string `gorm:"column:parent_inquiry_message;type:text;not null" json:"parent_inquiry_message"`

	ParentInquiryStatus     string     `gorm:"column:parent_inquiry_status;type:varchar(20);not null;default:received;index" json:"parent_inquiry_status"`
	ParentInquiryAdminReply *string    `gorm:"column:parent_inquiry_admin_reply;type:text" json:"parent_inquiry_admin_reply,omitempty"`
	ParentInquiryRepliedAt  *time.Time `gorm:"column:parent_inquiry_replied_at;type:timestamptz" json:"parent_inquiry_replied_at,omitempty"`

	ParentInquiryCreatedAt time.Time `gorm:"column:parent_inquiry_created_at;type:timestamptz;not null;autoCreateTime" json:"parent_inquiry_created_at"`
	ParentInquiryUpdatedAt time.Time `gorm:"column:parent_inquiry_updated_at;type:timestamptz;not null;autoUpdateTime" json:"parent_inquiry_updated_at"`
}

func (ParentInquiryModel) TableName() string { return "parent_inquiries" }
