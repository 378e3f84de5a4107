package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/blackroad/energy-monitor/internal/models"
	"github.com/blackroad/energy-monitor/internal/store"
)

var deviceThresholdWatts float64

// deviceCmd represents the device command
var deviceCmd = &cobra.Command{
	Use:     "device",
	Aliases: []string{"d", "devices"},
	Short:   "Manage and list devices",
	Long:    `Commands for registering and listing monitored devices.`,
}

// deviceAddCmd represents the device add command
var deviceAddCmd = &cobra.Command{
	Use:   "add <device_id> <name> [location]",
	Short: "Register a new device",
	Long: `Register a device under a unique device ID. Registering an already
present device ID is reported as a warning, not an error.

Examples:
  energy-monitor device add fridge-01 "Kitchen Fridge" kitchen
  energy-monitor device add heater-01 "Space Heater" office --threshold 1800`,
	Args: cobra.RangeArgs(2, 3),
	Run:  runDeviceAdd,
}

// deviceListCmd represents the device list command
var deviceListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all registered devices",
	Run:     runDeviceList,
}

func runDeviceAdd(cmd *cobra.Command, args []string) {
	location := "default"
	if len(args) > 2 {
		location = args[2]
	}

	device := models.Device{
		DeviceID:       args[0],
		DeviceName:     args[1],
		Location:       location,
		ThresholdWatts: deviceThresholdWatts,
	}

	err := store.New(db).CreateDevice(&device)
	if errors.Is(err, store.ErrDuplicateDevice) {
		fmt.Printf("⚠ Device '%s' already exists\n", device.DeviceID)
		return
	}
	if err != nil {
		logger.Error("Failed to register device", "device_id", device.DeviceID, "error", err)
		fmt.Fprintf(os.Stderr, "Error: Failed to register device: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Added device: %s (%s)\n", device.DeviceName, device.DeviceID)
}

func runDeviceList(cmd *cobra.Command, args []string) {
	logger.Debug("Fetching devices from database")

	devices, err := store.New(db).Devices()
	if err != nil {
		logger.Error("Failed to fetch devices", "error", err)
		fmt.Fprintf(os.Stderr, "Error: Failed to fetch devices: %v\n", err)
		os.Exit(1)
	}

	if len(devices) == 0 {
		fmt.Println("No devices found.")
		return
	}

	// Create tabwriter for aligned output
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tNAME\tLOCATION\tTHRESHOLD\tCREATED")
	fmt.Fprintln(w, "--\t----\t--------\t---------\t-------")

	for _, device := range devices {
		threshold := "off"
		if device.ThresholdWatts > 0 {
			threshold = fmt.Sprintf("%.1fW", device.ThresholdWatts)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			device.DeviceID,
			device.DeviceName,
			device.Location,
			threshold,
			device.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		)
	}

	logger.Debug("Device list completed", "count", len(devices))
}

func init() {
	rootCmd.AddCommand(deviceCmd)

	deviceCmd.AddCommand(deviceAddCmd)
	deviceCmd.AddCommand(deviceListCmd)

	deviceAddCmd.Flags().Float64Var(&deviceThresholdWatts, "threshold", 0, "Static watt ceiling for threshold alerts (0 disables the check)")
}
