package models

import "time"

// Security log severities
const (
	SeverityLow    = "LOW"
	SeverityMedium = "MEDIUM"
	SeverityHigh   = "HIGH"
)

// SecurityLog is an append-only audit record.
type SecurityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IPAddress string    `gorm:"type:varchar(64);not null" json:"ip_address"`
	Action    string    `gorm:"type:varchar(64);not null" json:"action"`
	Severity  string    `gorm:"type:varchar(10);not null;default:'LOW'" json:"severity"`
	Details   string    `gorm:"type:text" json:"details"`
	UserAgent string    `gorm:"type:text" json:"user_agent"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
