package models

// CategoryModel groups directory links.
type CategoryModel struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null"`

	Links []LinkModel `json:"links" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (CategoryModel) TableName() string { return "categories" }
