// Package store exposes the persistence collaborators of the monitor core:
// an append-only reading log, a device registry, and an append-only alert
// log, all backed by a single SQLite handle.
package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/blackroad/energy-monitor/internal/models"
)

// ErrDuplicateDevice is returned when registering a device_id that already
// exists. Callers are expected to treat it as a warning, not a failure.
var ErrDuplicateDevice = errors.New("device already registered")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a store bound to a single transaction.
// Returning an error from fn rolls everything back.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// CreateDevice registers a device with create-if-absent semantics.
func (s *Store) CreateDevice(device *models.Device) error {
	if device.Location == "" {
		device.Location = "default"
	}
	if device.CreatedAt.IsZero() {
		device.CreatedAt = time.Now().UTC()
	}

	err := s.db.Create(device).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", ErrDuplicateDevice, device.DeviceID)
	}
	if err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}

	return nil
}

// Devices returns all registered devices ordered by device_id.
func (s *Store) Devices() ([]models.Device, error) {
	var devices []models.Device
	if err := s.db.Order("device_id").Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch devices: %w", err)
	}

	return devices, nil
}

// Threshold returns the device's configured watt ceiling. The second return
// is false when the device is not registered. A registered device with a
// threshold of 0 has the check disabled.
func (s *Store) Threshold(deviceID string) (float64, bool, error) {
	var device models.Device
	err := s.db.Where("device_id = ?", deviceID).First(&device).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to fetch device: %w", err)
	}

	return device.ThresholdWatts, true, nil
}

// AppendReading persists a reading and assigns its id.
func (s *Store) AppendReading(reading *models.Reading) error {
	if reading.Location == "" {
		reading.Location = "default"
	}

	if err := s.db.Create(reading).Error; err != nil {
		return fmt.Errorf("failed to persist reading: %w", err)
	}

	return nil
}

// RecentWatts returns up to limit watt values for the device, newest first.
func (s *Store) RecentWatts(deviceID string, limit int) ([]float64, error) {
	var watts []float64
	err := s.db.
		Model(&models.Reading{}).
		Where("device_id = ?", deviceID).
		Order("timestamp DESC").
		Limit(limit).
		Pluck("watts", &watts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reading history: %w", err)
	}

	return watts, nil
}

// ReadingsOn returns every reading whose timestamp falls on the given UTC
// day, optionally restricted to one device. An empty result is a valid
// non-error state.
func (s *Store) ReadingsOn(day time.Time, deviceID string) ([]models.Reading, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	query := s.db.Where("timestamp >= ? AND timestamp < ?", dayStart, dayEnd)
	if deviceID != "" {
		query = query.Where("device_id = ?", deviceID)
	}

	var readings []models.Reading
	if err := query.Find(&readings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch readings: %w", err)
	}

	return readings, nil
}

// AppendAlert persists an alert to the alert log.
func (s *Store) AppendAlert(alert *models.Alert) error {
	if err := s.db.Create(alert).Error; err != nil {
		return fmt.Errorf("failed to persist alert: %w", err)
	}

	return nil
}

// RecentAlerts returns up to limit alerts, newest first.
func (s *Store) RecentAlerts(limit int) ([]models.Alert, error) {
	var alerts []models.Alert
	err := s.db.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch alerts: %w", err)
	}

	return alerts, nil
}
