package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NewsPostModel struct {
	NewsPostID       uuid.UUID      `gorm:"column:news_post_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"news_post_id"`
	NewsPostSlug     string         `gorm:"column:news_post_slug;type:varchar(160);not null;uniqueIndex" json:"news_post_slug"`
	NewsPostTitle    string         `gorm:"column:news_post_title;type:varchar(200);not null" json:"news_post_title"`
	NewsPostCategory string         `gorm:"column:news_post_category;type:varchar(30);not null;index" json:"news_post_category"`
	NewsPostSummary  *string        `gorm:"column:news_post_summary;type:text" json:"news_post_summary,omitempty"`
	NewsPostContent  datatypes.JSON `gorm:"column:news_post_content;type:jsonb" json:"news_post_content"`

	NewsPostHeroImageURL *string `gorm:"column:news_post_hero_image_url;type:text" json:"news_post_hero_image_url,omitempty"`
	NewsPostHeroImageAlt *string `gorm:"column:news_post_hero_image_alt;type:varchar(200)" json:"news_post_hero_image_alt,omitempty"`

	NewsPostPublishAt     time.Time `gorm:"column:news_post_publish_at;type:timestamptz;not null;default:now();index" json:"news_post_publish_at"`
	NewsPostIsHighlighted bool      `gorm:"column:news_post_is_highlighted;not null;default:false" json:"news_post_is_highlighted"`
	NewsPostAudienceScope string    `gorm:"column:news_post_audience_scope;type:varchar(20);not null;default:public" json:"news_post_audience_scope"`

	NewsPostCreatedBy *uuid.UUID `gorm:"column:news_post_created_by;type:uuid" json:"news_post_created_by,omitempty"`

	NewsPostCreatedAt time.Time `gorm:"column:news_post_created_at;type:timestamptz;not null;autoCreateTime" json:"news_post_created_at"`
	NewsPostUpdatedAt time.Time `gorm:"column:news_post_updated_at;type:timestamptz;not null;autoUpdateTime" json:"news_post_updated_at"`
}

func (NewsPostModel) TableName() string { return "news_posts" }

type NewsAttachmentModel struct {
	NewsAttachmentID      uuid.UUID `gorm:"column:news_attachment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"news_attachment_id"`
	NewsAttachmentPostID  uuid.UUID `gorm:"column:news_attachment_post_id;type:uuid;not null;index" json:"news_attachment_post_id"`
	NewsAttachmentFileURL string    `gorm:"column:news_attachment_file_url;type:text;not null" json:"news_attachment_file_url"`
	NewsAttachmentLabel   *string   `gorm:"column:news_attachment_label;type:varchar(100)" json:"news_attachment_label,omitempty"`

	NewsAttachmentCreatedAt time.Time `gorm:"column:news_attachment_created_at;type:timestamptz;not null;autoCreateTime" json:"news_attachment_created_at"`

	Post *NewsPostModel `gorm:"foreignKey:NewsAttachmentPostID;references:NewsPostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (NewsAttachmentModel) TableName() string { return "news_attachments" }
