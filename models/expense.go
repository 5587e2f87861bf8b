package models

import "time"

type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Category    string    `gorm:"type:varchar(100);not null" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"not null" json:"date"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
