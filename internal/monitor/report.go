package monitor

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const timestampLayout = "2006-01-02T15:04:05Z07:00"

// Report is the exportable daily snapshot: per-device statistics, the most
// recent alerts, and summary totals. All values are rounded here, at the
// presentation boundary (2 decimals for watts, 4 for kWh and cost).
type Report struct {
	ID           string         `json:"report_id"`
	Date         string         `json:"date"`
	Devices      []ReportDevice `json:"devices"`
	RecentAlerts []ReportAlert  `json:"recent_alerts"`
	Summary      ReportSummary  `json:"summary"`
	GeneratedAt  string         `json:"generated_at"`
}

type ReportDevice struct {
	DeviceID      string  `json:"device_id"`
	DeviceName    string  `json:"device_name"`
	Location      string  `json:"location"`
	AvgWatts      float64 `json:"avg_watts"`
	MaxWatts      float64 `json:"max_watts"`
	MinWatts      float64 `json:"min_watts"`
	DailyKWH      float64 `json:"daily_kwh"`
	DailyCostUSD  float64 `json:"daily_cost_usd"`
	ReadingCount  int     `json:"reading_count"`
	LastReadingAt string  `json:"last_reading_at"`
}

type ReportAlert struct {
	DeviceID      string  `json:"device_id"`
	DeviceName    string  `json:"device_name"`
	AlertType     string  `json:"alert_type"`
	Watts         float64 `json:"watts"`
	BaselineWatts float64 `json:"baseline_watts"`
	DeviationPct  float64 `json:"deviation_pct"`
	Message       string  `json:"message"`
	CreatedAt     string  `json:"created_at"`
}

type ReportSummary struct {
	TotalDailyKWH     float64 `json:"total_daily_kwh"`
	TotalDailyCostUSD float64 `json:"total_daily_cost_usd"`
	DeviceCount       int     `json:"device_count"`
	AlertCount        int     `json:"alert_count"`
}

// BuildReport composes the daily usage statistics and the DefaultAlertLimit
// most recent alerts into a single snapshot. Summary totals are summed at
// full precision before rounding.
func (m *Monitor) BuildReport(day time.Time) (*Report, error) {
	stats, err := m.DailyUsage(day, "")
	if err != nil {
		return nil, err
	}

	alerts, err := m.store.RecentAlerts(DefaultAlertLimit)
	if err != nil {
		return nil, err
	}

	devices := make([]ReportDevice, 0, len(stats))
	totalKWH := 0.0
	totalCost := 0.0
	for _, s := range stats {
		totalKWH += s.DailyKWH
		totalCost += s.DailyCostUSD

		devices = append(devices, ReportDevice{
			DeviceID:      s.DeviceID,
			DeviceName:    s.DeviceName,
			Location:      s.Location,
			AvgWatts:      round2(s.AvgWatts),
			MaxWatts:      round2(s.MaxWatts),
			MinWatts:      round2(s.MinWatts),
			DailyKWH:      round4(s.DailyKWH),
			DailyCostUSD:  round4(s.DailyCostUSD),
			ReadingCount:  s.ReadingCount,
			LastReadingAt: s.LastReadingAt.Format(timestampLayout),
		})
	}

	reportAlerts := make([]ReportAlert, 0, len(alerts))
	for _, a := range alerts {
		reportAlerts = append(reportAlerts, ReportAlert{
			DeviceID:      a.DeviceID,
			DeviceName:    a.DeviceName,
			AlertType:     a.AlertType,
			Watts:         round2(a.Watts),
			BaselineWatts: round2(a.BaselineWatts),
			DeviationPct:  round2(a.DeviationPct),
			Message:       a.Message,
			CreatedAt:     a.CreatedAt.Format(timestampLayout),
		})
	}

	return &Report{
		ID:           uuid.NewString(),
		Date:         day.UTC().Format("2006-01-02"),
		Devices:      devices,
		RecentAlerts: reportAlerts,
		Summary: ReportSummary{
			TotalDailyKWH:     round4(totalKWH),
			TotalDailyCostUSD: round4(totalCost),
			DeviceCount:       len(devices),
			AlertCount:        len(reportAlerts),
		},
		GeneratedAt: time.Now().UTC().Format(timestampLayout),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
