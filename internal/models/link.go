package models

// LinkModel is a directory entry. Clicks is only ever incremented in SQL.
type LinkModel struct {
	Base
	URL        string         `json:"url"        gorm:"type:text;not null"`
	CategoryID string         `json:"categoryId" gorm:"type:char(36);index;not null"`
	Category   *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Clicks     int64          `json:"clicks"     gorm:"default:0;not null"`
}

func (LinkModel) TableName() string { return "links" }
