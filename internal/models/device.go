package models

import (
	"time"
)

// Device is a registered power consumer. ThresholdWatts of 0 means the
// static threshold check is disabled for the device.
type Device struct {
	DeviceID       string `gorm:"primaryKey"`
	DeviceName     string
	Location       string `gorm:"default:default"`
	ThresholdWatts float64
	CreatedAt      time.Time
}
