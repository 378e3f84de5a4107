package monitor

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackroad/energy-monitor/internal/database"
	"github.com/blackroad/energy-monitor/internal/models"
	"github.com/blackroad/energy-monitor/internal/store"
)

// newTestMonitor opens a fresh migrated database under the test's temp
// directory and builds a monitor with a discarded logger.
func newTestMonitor(t *testing.T, opts ...Option) (*Monitor, *store.Store) {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		database.Close(db)
	})

	st := store.New(db)
	opts = append(opts, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	return New(st, opts...), st
}

// recordJittered records count readings alternating one watt below and above
// center so the device's history has a non-zero spread.
func recordJittered(t *testing.T, m *Monitor, deviceID, deviceName string, center float64, count int) {
	t.Helper()

	for i := 0; i < count; i++ {
		watts := center - 1
		if i%2 == 1 {
			watts = center + 1
		}

		alerts, err := m.Record(&models.Reading{
			DeviceID:   deviceID,
			DeviceName: deviceName,
			Watts:      watts,
		})
		require.NoError(t, err)
		require.Empty(t, alerts)
	}
}

func TestRecordFirstReading(t *testing.T) {
	m, _ := newTestMonitor(t)

	reading := models.Reading{DeviceID: "d1", DeviceName: "Fridge", Watts: 1500}
	alerts, err := m.Record(&reading)

	require.NoError(t, err)
	assert.Empty(t, alerts)
	assert.NotZero(t, reading.ID)
	assert.False(t, reading.Timestamp.IsZero())
	assert.Equal(t, "default", reading.Location)
}

func TestRecordAnomalyAfterStableHistory(t *testing.T) {
	m, st := newTestMonitor(t)

	recordJittered(t, m, "a1", "AC Unit", 100, 15)

	alerts, err := m.Record(&models.Reading{DeviceID: "a1", DeviceName: "AC Unit", Watts: 9999})
	require.NoError(t, err)

	require.Len(t, alerts, 1)
	alert := alerts[0]
	assert.Equal(t, models.AlertTypeAnomaly, alert.AlertType)
	assert.InDelta(t, 100.0, alert.BaselineWatts, 0.5)
	assert.InDelta(t, 9900.0, alert.DeviationPct, 25.0)

	persisted, err := st.RecentAlerts(DefaultAlertLimit)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, models.AlertTypeAnomaly, persisted[0].AlertType)
	assert.NotZero(t, persisted[0].ID)
}

func TestRecordHistoryExcludesNewReading(t *testing.T) {
	m, _ := newTestMonitor(t)

	// A perfectly constant history has zero spread, so the spike itself
	// must not be part of the baseline it is judged against.
	for i := 0; i < 12; i++ {
		alerts, err := m.Record(&models.Reading{DeviceID: "c1", DeviceName: "Constant", Watts: 100})
		require.NoError(t, err)
		require.Empty(t, alerts)
	}

	alerts, err := m.Record(&models.Reading{DeviceID: "c1", DeviceName: "Constant", Watts: 9999})
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestRecordThresholdAlertIsTransient(t *testing.T) {
	m, st := newTestMonitor(t)

	require.NoError(t, st.CreateDevice(&models.Device{
		DeviceID:       "h1",
		DeviceName:     "Heater",
		ThresholdWatts: 1000,
	}))

	reading := models.Reading{DeviceID: "h1", DeviceName: "Heater", Watts: 1500}
	alerts, err := m.Record(&reading)
	require.NoError(t, err)

	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertTypeThreshold, alerts[0].AlertType)

	// Threshold breaches warn the caller but never reach the alert log.
	persisted, err := st.RecentAlerts(DefaultAlertLimit)
	require.NoError(t, err)
	assert.Empty(t, persisted)

	// The reading itself still persists.
	assert.NotZero(t, reading.ID)
	watts, err := st.RecentWatts("h1", HistoryLimit)
	require.NoError(t, err)
	assert.Equal(t, []float64{1500}, watts)
}

func TestRecordBothAlertKinds(t *testing.T) {
	m, st := newTestMonitor(t)

	require.NoError(t, st.CreateDevice(&models.Device{
		DeviceID:       "b1",
		DeviceName:     "Boiler",
		ThresholdWatts: 500,
	}))

	recordJittered(t, m, "b1", "Boiler", 100, 12)

	alerts, err := m.Record(&models.Reading{DeviceID: "b1", DeviceName: "Boiler", Watts: 9999})
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	persisted, err := st.RecentAlerts(DefaultAlertLimit)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, models.AlertTypeAnomaly, persisted[0].AlertType)
}

func TestRecordKeepsProvidedTimestamp(t *testing.T) {
	m, st := newTestMonitor(t)

	ts := time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC)
	reading := models.Reading{DeviceID: "d1", DeviceName: "Fridge", Watts: 120, Timestamp: ts}

	_, err := m.Record(&reading)
	require.NoError(t, err)
	assert.True(t, reading.Timestamp.Equal(ts))

	readings, err := st.ReadingsOn(ts, "d1")
	require.NoError(t, err)
	require.Len(t, readings, 1)
}

func TestRecentAlertsFreshStore(t *testing.T) {
	m, _ := newTestMonitor(t)

	alerts, err := m.RecentAlerts(0)

	require.NoError(t, err)
	assert.Empty(t, alerts)
}
