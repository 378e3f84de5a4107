package monitor

import (
	"sort"
	"time"

	"github.com/blackroad/energy-monitor/internal/models"
)

type usageGroup struct {
	sum         float64
	max         float64
	min         float64
	count       int
	lastReading time.Time
}

type groupKey struct {
	deviceID   string
	deviceName string
	location   string
}

// DailyUsage aggregates readings recorded on the given UTC day into
// per-device statistics, optionally restricted to one device. Groups are
// keyed by the stored (device_id, device_name, location) tuple, so a device
// whose stored location changed mid-day fragments into one row per location.
// Devices without readings on the day produce no row. Values are unrounded;
// rounding belongs to presentation boundaries.
func (m *Monitor) DailyUsage(day time.Time, deviceID string) ([]models.DeviceStats, error) {
	readings, err := m.store.ReadingsOn(day, deviceID)
	if err != nil {
		return nil, err
	}

	groups := make(map[groupKey]*usageGroup)
	for _, reading := range readings {
		key := groupKey{
			deviceID:   reading.DeviceID,
			deviceName: reading.DeviceName,
			location:   reading.Location,
		}

		group, ok := groups[key]
		if !ok {
			group = &usageGroup{max: reading.Watts, min: reading.Watts}
			groups[key] = group
		}

		group.sum += reading.Watts
		group.count++
		if reading.Watts > group.max {
			group.max = reading.Watts
		}
		if reading.Watts < group.min {
			group.min = reading.Watts
		}
		if reading.Timestamp.After(group.lastReading) {
			group.lastReading = reading.Timestamp
		}
	}

	stats := make([]models.DeviceStats, 0, len(groups))
	for key, group := range groups {
		avg := group.sum / float64(group.count)
		// Projects the day's average power over a constant 24 hours; an
		// approximation, not an integral over the sampling intervals.
		kwh := (avg * 24) / 1000

		stats = append(stats, models.DeviceStats{
			DeviceID:      key.deviceID,
			DeviceName:    key.deviceName,
			Location:      key.location,
			AvgWatts:      avg,
			MaxWatts:      group.max,
			MinWatts:      group.min,
			DailyKWH:      kwh,
			DailyCostUSD:  kwh * m.costPerKWH,
			ReadingCount:  group.count,
			LastReadingAt: group.lastReading,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].DeviceID != stats[j].DeviceID {
			return stats[i].DeviceID < stats[j].DeviceID
		}
		return stats[i].Location < stats[j].Location
	})

	return stats, nil
}
