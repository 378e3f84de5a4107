package models

import (
	"time"
)

// Reading is a single power-draw sample. Immutable once persisted.
type Reading struct {
	ID         uint   `gorm:"primaryKey"`
	DeviceID   string `gorm:"index:idx_readings_device_timestamp"`
	DeviceName string
	Watts      float64
	Location   string    `gorm:"default:default"`
	Timestamp  time.Time `gorm:"index:idx_readings_device_timestamp"`
}
