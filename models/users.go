package models

import "time"

type User struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"type:varchar(255);not null" json:"name"`
	Email     string  `gorm:"type:varchar(255);unique;not null" json:"email"`
	Phone     *string `gorm:"type:varchar(32);index" json:"phone,omitempty"`
	Password  string  `gorm:"type:varchar(255);not null" json:"-"`
	Role      string  `gorm:"type:varchar(32);not null;default:'customer'" json:"role"`
	Address   string  `gorm:"type:text" json:"address"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
