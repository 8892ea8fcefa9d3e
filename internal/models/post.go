package models

import "time"

// PostModel is a blog post.
// PublishedAt is non-nil exactly when Published is true.
type PostModel struct {
	Base
	Title       string     `json:"title"       gorm:"not null"`
	Slug        string     `json:"slug"        gorm:"uniqueIndex;not null"`
	Content     string     `json:"content"     gorm:"type:text"`
	Excerpt     string     `json:"excerpt"     gorm:"type:text"`
	Featured    bool       `json:"featured"    gorm:"default:false;index"`
	Published   bool       `json:"published"   gorm:"default:false;index"`
	PublishedAt *time.Time `json:"publishedAt" gorm:"index"`
	ViewCount   int64      `json:"viewCount"   gorm:"column:view_count;default:0;not null"`
	AuthorID    string     `json:"authorId"    gorm:"type:char(36);index;not null"`
	Author      *UserModel `json:"-"           gorm:"foreignKey:AuthorID"`

	Tags []TagModel `json:"tags" gorm:"many2many:post_tags;joinForeignKey:PostID;joinReferences:TagID"`
}

func (PostModel) TableName() string { return "posts" }
