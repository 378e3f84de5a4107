package monitor

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackroad/energy-monitor/internal/models"
)

func TestBuildReportComposition(t *testing.T) {
	m, st := newTestMonitor(t)

	seedReading(t, st, "d1", "Oven", "kitchen", 1000, 8)
	seedReading(t, st, "d2", "Fridge", "kitchen", 125, 9)

	require.NoError(t, st.AppendAlert(&models.Alert{
		DeviceID:      "d1",
		DeviceName:    "Oven",
		AlertType:     models.AlertTypeAnomaly,
		Watts:         1000,
		BaselineWatts: 120,
		DeviationPct:  733.3333,
		Message:       "Anomaly: 1000.0W vs baseline 120.0W (+733.3%)",
		CreatedAt:     testDay.Add(8 * time.Hour),
	}))

	report, err := m.BuildReport(testDay)
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "2026-08-27", report.Date)
	assert.NotEmpty(t, report.GeneratedAt)

	require.Len(t, report.Devices, 2)
	assert.Equal(t, "d1", report.Devices[0].DeviceID)
	assert.Equal(t, 24.0, report.Devices[0].DailyKWH)
	assert.Equal(t, "d2", report.Devices[1].DeviceID)
	assert.Equal(t, 3.0, report.Devices[1].DailyKWH)

	require.Len(t, report.RecentAlerts, 1)
	assert.Equal(t, 733.33, report.RecentAlerts[0].DeviationPct)

	assert.Equal(t, 27.0, report.Summary.TotalDailyKWH)
	assert.InDelta(t, 27.0*DefaultCostPerKWH, report.Summary.TotalDailyCostUSD, 0.0001)
	assert.Equal(t, 2, report.Summary.DeviceCount)
	assert.Equal(t, 1, report.Summary.AlertCount)
}

func TestBuildReportRoundsAtPresentationBoundary(t *testing.T) {
	m, st := newTestMonitor(t)

	// avg 100.006W -> kWh 2.400144, both beyond their display precision
	seedReading(t, st, "d1", "Lamp", "office", 100.002, 1)
	seedReading(t, st, "d1", "Lamp", "office", 100.01, 2)

	report, err := m.BuildReport(testDay)
	require.NoError(t, err)

	require.Len(t, report.Devices, 1)
	assert.Equal(t, 100.01, report.Devices[0].AvgWatts)
	assert.Equal(t, 2.4001, report.Devices[0].DailyKWH)
}

func TestBuildReportAlertsNewestFirst(t *testing.T) {
	m, st := newTestMonitor(t)

	for hour := 1; hour <= 3; hour++ {
		require.NoError(t, st.AppendAlert(&models.Alert{
			DeviceID:   "d1",
			DeviceName: "Oven",
			AlertType:  models.AlertTypeAnomaly,
			Watts:      float64(hour * 100),
			CreatedAt:  testDay.Add(time.Duration(hour) * time.Hour),
		}))
	}

	report, err := m.BuildReport(testDay)
	require.NoError(t, err)

	require.Len(t, report.RecentAlerts, 3)
	assert.Equal(t, 300.0, report.RecentAlerts[0].Watts)
	assert.Equal(t, 100.0, report.RecentAlerts[2].Watts)
}

func TestBuildReportEmptyStore(t *testing.T) {
	m, _ := newTestMonitor(t)

	report, err := m.BuildReport(testDay)
	require.NoError(t, err)

	assert.Empty(t, report.Devices)
	assert.Empty(t, report.RecentAlerts)
	assert.Zero(t, report.Summary.TotalDailyKWH)
	assert.Zero(t, report.Summary.DeviceCount)
}

func TestBuildReportSerializes(t *testing.T) {
	m, st := newTestMonitor(t)
	seedReading(t, st, "d1", "Oven", "kitchen", 500, 12)

	report, err := m.BuildReport(testDay)
	require.NoError(t, err)

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "summary")
	assert.Contains(t, decoded, "devices")
	assert.Contains(t, decoded, "recent_alerts")
}
