package config

import (
	"errors"
	"os"

	"gorm.io/gorm"

	"github.com/crabkhai/crabkhai-shop/models"
)

// DevSetupSecret is only ever used outside release mode.
const DevSetupSecret = "crab-secret-setup-123"

var ErrSetupSecretUnset = errors.New("ADMIN_SETUP_SECRET must be set in release mode")

// SetupSecret resolves the device-setup secret: the SiteConfig row wins,
// then the ADMIN_SETUP_SECRET environment variable, then the dev fallback.
func SetupSecret(db *gorm.DB) string {
	var cfg models.SiteConfig
	if err := db.First(&cfg).Error; err == nil {
		if cfg.AdminSetupToken != nil && *cfg.AdminSetupToken != "" {
			return *cfg.AdminSetupToken
		}
	}
	if env := os.Getenv("ADMIN_SETUP_SECRET"); env != "" {
		return env
	}
	return DevSetupSecret
}

// CheckSetupSecret refuses to run a release build on the well-known dev
// fallback. Call at startup, before serving traffic.
func CheckSetupSecret(db *gorm.DB, releaseMode bool) error {
	if releaseMode && SetupSecret(db) == DevSetupSecret {
		return ErrSetupSecretUnset
	}
	return nil
}
