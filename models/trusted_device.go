package models

import "time"

// TrustedDeviceTTL is how long a device authorization stays valid.
const TrustedDeviceTTL = 30 * 24 * time.Hour

// TrustedDevice is a browser/device remembered via the trusted_device cookie.
type TrustedDevice struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	DeviceID  string     `gorm:"type:varchar(64);unique;not null" json:"device_id"`
	Name      string     `gorm:"type:varchar(255)" json:"name"`
	UserAgent string     `gorm:"type:text" json:"user_agent"`
	OS        string     `gorm:"type:varchar(64)" json:"os"`
	Browser   string     `gorm:"type:varchar(64)" json:"browser"`
	IPAddress string     `gorm:"type:varchar(64)" json:"ip_address"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}

// TrustedAt reports whether the device is still valid at the given time.
func (d *TrustedDevice) TrustedAt(at time.Time) bool {
	return !at.After(d.ExpiresAt)
}
