package monitor

import (
	"fmt"
	"math"
	"time"

	"github.com/blackroad/energy-monitor/internal/models"
)

const (
	// HistoryLimit bounds the rolling window used as the anomaly baseline.
	// Older readings fall out of the window so the baseline adapts to
	// sustained regime changes.
	HistoryLimit = 100

	// minHistory is the number of prior readings required before the
	// statistical check is evaluated.
	minHistory = 10

	// sigmaFactor is the spread multiplier a reading must exceed to be
	// flagged as anomalous.
	sigmaFactor = 2.0
)

// Classify evaluates a reading against the device's recent history and its
// optional static threshold. history holds up to HistoryLimit prior watt
// values, newest first, excluding the reading under evaluation. The two
// checks are independent, so zero, one, or two alerts may be returned.
func Classify(reading models.Reading, history []float64, thresholdWatts float64) []models.Alert {
	var alerts []models.Alert
	now := time.Now().UTC()

	if len(history) >= minHistory {
		baseline := mean(history)
		spread := sampleStdDev(history)

		// A zero spread leaves no variability to measure against; the
		// check is skipped rather than dividing by zero.
		if spread > 0 && math.Abs(reading.Watts-baseline) > sigmaFactor*spread {
			deviation := 0.0
			if baseline > 0 {
				deviation = ((reading.Watts - baseline) / baseline) * 100
			}

			alerts = append(alerts, models.Alert{
				DeviceID:      reading.DeviceID,
				DeviceName:    reading.DeviceName,
				AlertType:     models.AlertTypeAnomaly,
				Watts:         reading.Watts,
				BaselineWatts: baseline,
				DeviationPct:  deviation,
				Message: fmt.Sprintf("Anomaly: %.1fW vs baseline %.1fW (%+.1f%%)",
					reading.Watts, baseline, deviation),
				CreatedAt: now,
			})
		}
	}

	if thresholdWatts > 0 && reading.Watts > thresholdWatts {
		alerts = append(alerts, models.Alert{
			DeviceID:   reading.DeviceID,
			DeviceName: reading.DeviceName,
			AlertType:  models.AlertTypeThreshold,
			Watts:      reading.Watts,
			Message: fmt.Sprintf("Threshold exceeded: %.1fW > %.1fW",
				reading.Watts, thresholdWatts),
			CreatedAt: now,
		})
	}

	return alerts
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// sampleStdDev uses the N-1 denominator and is defined as 0 for fewer than
// two values.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(values)-1))
}
