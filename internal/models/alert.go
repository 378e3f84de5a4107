package models

import (
	"time"
)

const (
	// AlertTypeAnomaly marks a reading more than two standard deviations
	// away from the device's rolling baseline.
	AlertTypeAnomaly = "anomaly"
	// AlertTypeThreshold marks a reading above the device's configured
	// static watt ceiling. Threshold alerts are transient notifications
	// and are not persisted to the alert log.
	AlertTypeThreshold = "threshold"
)

// Alert is an append-only record of a detected irregularity.
// BaselineWatts and DeviationPct are 0 for threshold alerts.
type Alert struct {
	ID            uint `gorm:"primaryKey"`
	DeviceID      string
	DeviceName    string
	AlertType     string
	Watts         float64
	BaselineWatts float64
	DeviationPct  float64
	Message       string
	CreatedAt     time.Time `gorm:"index"`
}
