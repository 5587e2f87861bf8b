package models

import "time"

// StorySection holds one block of the story page, keyed by type.
type StorySection struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"type:varchar(64);unique;not null" json:"type"`
	Content   string    `gorm:"type:text" json:"content"` // free-form JSON
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
