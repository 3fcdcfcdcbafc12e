// Package lock issues guest access codes on smart locks.
package lock

import (
	"context"
	"time"

	"azhaboost/pkg/utils"

	"go.uber.org/zap"
)

type Vendor interface {
	GenerateCode(ctx context.Context, deviceID string) (string, error)
	SetExpiration(ctx context.Context, deviceID, code string, expiresAt time.Time) error
}

// NewVendor returns the Tuya client, or the simulated vendor when credentials are missing.
func NewVendor(cfg utils.LockConfig, log *zap.Logger) Vendor {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		log.Warn("Tuya credentials not set, using simulated smart lock vendor")
		return NewSimulatedVendor(log)
	}
	return NewTuyaClient(cfg, nil, log)
}

// SimulatedVendor hands out random 6 digit codes and only logs expirations.
type SimulatedVendor struct {
	log *zap.Logger
}

func NewSimulatedVendor(log *zap.Logger) *SimulatedVendor {
	return &SimulatedVendor{log: log.With(zap.String("integration", "lock_simulated"))}
}

func (v *SimulatedVendor) GenerateCode(_ context.Context, deviceID string) (string, error) {
	return utils.GenerateNumericCode(6), nil
}

func (v *SimulatedVendor) SetExpiration(_ context.Context, deviceID, code string, expiresAt time.Time) error {
	v.log.Info("Setting PIN expiration",
		zap.String("device_id", deviceID),
		zap.Time("expires_at", expiresAt),
	)
	return nil
}
