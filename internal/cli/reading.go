package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blackroad/energy-monitor/internal/models"
)

// readingCmd represents the reading command
var readingCmd = &cobra.Command{
	Use:     "reading",
	Aliases: []string{"r", "readings"},
	Short:   "Record power-draw readings",
	Long:    `Commands for recording device power-draw readings.`,
}

// readingAddCmd represents the reading add command
var readingAddCmd = &cobra.Command{
	Use:   "add <device_id> <name> <watts> [location]",
	Short: "Record a power-draw reading",
	Long: `Record a power-draw reading for a device. The reading is checked
against the device's rolling baseline and its optional static threshold
before it is persisted.

Examples:
  energy-monitor reading add fridge-01 "Kitchen Fridge" 120.5
  energy-monitor reading add heater-01 "Space Heater" 1900 office`,
	Args: cobra.RangeArgs(3, 4),
	Run:  runReadingAdd,
}

func runReadingAdd(cmd *cobra.Command, args []string) {
	watts, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Invalid watt value: %s\n", args[2])
		os.Exit(1)
	}

	location := "default"
	if len(args) > 3 {
		location = args[3]
	}

	reading := models.Reading{
		DeviceID:   args[0],
		DeviceName: args[1],
		Watts:      watts,
		Location:   location,
	}

	logger.Debug("Recording reading", "device_id", reading.DeviceID, "watts", reading.Watts)

	alerts, err := mon.Record(&reading)
	if err != nil {
		logger.Error("Failed to record reading", "device_id", reading.DeviceID, "error", err)
		fmt.Fprintf(os.Stderr, "Error: Failed to record reading: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Reading logged: %s %.1fW\n", reading.DeviceName, reading.Watts)

	for _, alert := range alerts {
		switch alert.AlertType {
		case models.AlertTypeAnomaly:
			fmt.Printf("⚠ ANOMALY: %s\n", alert.Message)
		case models.AlertTypeThreshold:
			fmt.Printf("⚠ %s\n", alert.Message)
		}
	}
}

func init() {
	rootCmd.AddCommand(readingCmd)

	readingCmd.AddCommand(readingAddCmd)
}
