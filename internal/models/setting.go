package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettingModel is a key/value pair read by presentation layers.
type SettingModel struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	Key       string    `json:"key"       gorm:"column:key;type:varchar(64);uniqueIndex;not null"`
	Value     string    `json:"value"     gorm:"type:text"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SettingModel) TableName() string { return "settings" }

func (s *SettingModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
