package models

import (
	"time"

	"gorm.io/gorm"
)

// FocusSession records one completed focus-mode session.
type FocusSession struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	StartTime time.Time      `gorm:"not null;index" json:"start_time"`
	Duration  int64          `gorm:"not null;default:0" json:"duration"` // seconds
	MusicUsed bool           `gorm:"not null;default:false" json:"music_used"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
