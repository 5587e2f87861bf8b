package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/crabkhai/crabkhai-shop/events"
	"github.com/crabkhai/crabkhai-shop/models"
	"github.com/crabkhai/crabkhai-shop/utils"
)

// DeviceSweeper periodically deletes trusted devices past their expiry so a
// stale cookie can never be re-matched against an old record.
type DeviceSweeper struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewDeviceSweeper(db *gorm.DB) *DeviceSweeper {
	return &DeviceSweeper{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Hour,
	}
}

func (ds *DeviceSweeper) Start() {
	go func() {
		ticker := time.NewTicker(ds.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ds.Sweep()
			case <-ds.StopChan:
				return
			}
		}
	}()
}

func (ds *DeviceSweeper) Stop() {
	close(ds.StopChan)
}

// Sweep removes expired devices and records the revocations.
func (ds *DeviceSweeper) Sweep() {
	var expired []models.TrustedDevice
	if err := ds.DB.Where("expires_at < ?", time.Now()).Find(&expired).Error; err != nil {
		utils.ErrorLogger.Printf("device sweep query failed: %v", err)
		return
	}
	if len(expired) == 0 {
		return
	}

	for _, device := range expired {
		if err := ds.DB.Delete(&models.TrustedDevice{}, device.ID).Error; err != nil {
			utils.ErrorLogger.Printf("failed to delete expired device %s: %v", device.DeviceID, err)
			continue
		}

		logEntry := models.SecurityLog{
			IPAddress: device.IPAddress,
			Action:    "DEVICE_EXPIRED",
			Severity:  models.SeverityLow,
			Details:   "Expired: " + device.Name,
			UserAgent: device.UserAgent,
			CreatedAt: time.Now(),
		}
		if err := ds.DB.Create(&logEntry).Error; err != nil {
			utils.ErrorLogger.Printf("failed to log device expiry: %v", err)
		}

		events.BroadcastDeviceRevoked(device.DeviceID)
	}

	utils.InfoLogger.Printf("device sweep removed %d expired device(s)", len(expired))
}
