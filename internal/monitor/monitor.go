// Package monitor implements the anomaly-detection and aggregation core:
// classifying new readings against a rolling per-device baseline, deriving
// daily per-device usage statistics, and composing exportable reports.
package monitor

import (
	"log/slog"
	"time"

	"github.com/blackroad/energy-monitor/internal/models"
	"github.com/blackroad/energy-monitor/internal/store"
)

const (
	// DefaultCostPerKWH is the electricity rate applied when none is
	// configured, in USD.
	DefaultCostPerKWH = 0.12

	// DefaultAlertLimit is the number of recent alerts included in
	// listings and reports.
	DefaultAlertLimit = 20
)

type Monitor struct {
	store      *store.Store
	logger     *slog.Logger
	costPerKWH float64
}

type Option func(*Monitor)

// WithCostPerKWH overrides the electricity rate used for cost derivation.
func WithCostPerKWH(rate float64) Option {
	return func(m *Monitor) {
		if rate > 0 {
			m.costPerKWH = rate
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func New(st *store.Store, opts ...Option) *Monitor {
	m := &Monitor{
		store:      st,
		logger:     slog.Default(),
		costPerKWH: DefaultCostPerKWH,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Record classifies and persists a reading, returning the alerts the reading
// generated. The history used for classification is read before the reading
// is committed, so a reading never skews its own baseline. The reading and
// its anomaly alerts commit in a single transaction; threshold alerts are
// transient notifications and are returned without being persisted.
func (m *Monitor) Record(reading *models.Reading) ([]models.Alert, error) {
	if reading.Timestamp.IsZero() {
		reading.Timestamp = time.Now().UTC()
	}
	if reading.Location == "" {
		reading.Location = "default"
	}

	history, err := m.store.RecentWatts(reading.DeviceID, HistoryLimit)
	if err != nil {
		return nil, err
	}

	threshold, _, err := m.store.Threshold(reading.DeviceID)
	if err != nil {
		return nil, err
	}

	alerts := Classify(*reading, history, threshold)

	err = m.store.Transaction(func(tx *store.Store) error {
		if err := tx.AppendReading(reading); err != nil {
			return err
		}

		for i := range alerts {
			if alerts[i].AlertType != models.AlertTypeAnomaly {
				continue
			}
			if err := tx.AppendAlert(&alerts[i]); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, alert := range alerts {
		m.logger.Warn("Alert generated",
			"type", alert.AlertType,
			"device_id", alert.DeviceID,
			"message", alert.Message,
		)
	}

	return alerts, nil
}

// RecentAlerts returns up to limit persisted alerts, newest first. A
// non-positive limit falls back to DefaultAlertLimit.
func (m *Monitor) RecentAlerts(limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = DefaultAlertLimit
	}

	return m.store.RecentAlerts(limit)
}
