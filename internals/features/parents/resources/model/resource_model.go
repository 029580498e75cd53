package model

import (
	"time"

	"github.com/google/uuid"
)

// ParentResourceModel: downloadable documents for parents, typed form
// (가정통신문/서식) or committee (운영위원회 자료).
type ParentResourceModel struct {
	ParentResourceID uuid.UUID `gorm:"column:parent_resource_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"parent_resource_id"`

	ParentResourceTitle       string  `gorm:"column:parent_resource_title;type:varchar(200);not null" json:"parent_resource_title"`
	ParentResourceDescription *string `gorm:"column:parent_resource_description;type:text" json:"parent_resource_description,omitempty"`
	ParentResourceCategory    *string `gorm:"column:parent_resource_category;type:varchar(50)" json:"parent_resource_category,omitempty"`
	ParentResourceType        string  `gorm:"column:parent_resource_type;type:varchar(20);not null;index" json:"parent_resource_type"`
	ParentResourceFileURL     string  `gorm:"column:parent_resource_file_url;type:text;not null" json:"parent_resource_file_url"`

	ParentResourcePublishedAt time.Time `gorm:"column:parent_resource_published_at;type:timestamptz;not null;default:now();index" json:"parent_resource_published_at"`

	ParentResourceCreatedAt time.Time `gorm:"column:parent_resource_created_at;type:timestamptz;not null;autoCreateTime" json:"parent_resource_created_at"`
	ParentResourceUpdatedAt time.Time `gorm:"column:parent_resource_updated_at;type:timestamptz;not null;autoUpdateTime" json:"parent_resource_updated_at"`
}

func (ParentResourceModel) TableName() string { return "parent_resources" }
