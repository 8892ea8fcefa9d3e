package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TagModel is a label shared across posts. Slug is derived from Name.
type TagModel struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"      gorm:"uniqueIndex;not null"`
	Slug      string    `json:"slug"      gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (TagModel) TableName() string { return "tags" }

func (t *TagModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// PostTag is the join row between posts and tags.
type PostTag struct {
	PostID string `gorm:"type:char(36);primaryKey"`
	TagID  string `gorm:"type:char(36);primaryKey;index"`
}

func (PostTag) TableName() string { return "post_tags" }
