package models

import (
	"time"
)

// DeviceStats is a derived, non-persisted aggregate of one device's readings
// over a single day. It is recomputed from the reading log on every query.
// Values are kept at full precision; rounding happens at presentation
// boundaries only.
type DeviceStats struct {
	DeviceID      string
	DeviceName    string
	Location      string
	AvgWatts      float64
	MaxWatts      float64
	MinWatts      float64
	DailyKWH      float64
	DailyCostUSD  float64
	ReadingCount  int
	LastReadingAt time.Time
}
