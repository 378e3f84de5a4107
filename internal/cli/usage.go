package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

const (
	usageBarWidth    = 20
	usageBarMaxWatts = 3000.0
)

var usageDeviceFilter string

// usageCmd represents the usage command
var usageCmd = &cobra.Command{
	Use:     "usage [date]",
	Aliases: []string{"list"},
	Short:   "List daily per-device usage statistics",
	Long: `List average/max/min watts, derived daily energy and cost per device
for a given day (today by default). Dates use the YYYY-MM-DD format.

Examples:
  energy-monitor usage
  energy-monitor usage 2026-08-27 --device fridge-01`,
	Args: cobra.MaximumNArgs(1),
	Run:  runUsage,
}

func runUsage(cmd *cobra.Command, args []string) {
	day := parseDayArg(args)

	stats, err := mon.DailyUsage(day, usageDeviceFilter)
	if err != nil {
		logger.Error("Failed to aggregate usage", "error", err)
		fmt.Fprintf(os.Stderr, "Error: Failed to aggregate usage: %v\n", err)
		os.Exit(1)
	}

	if len(stats) == 0 {
		fmt.Println("No readings for this day. Use 'reading add' to log data.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "DEVICE\tLOCATION\tUSAGE\tAVG\tMAX\tMIN\tKWH\tCOST\tREADINGS")

	for _, s := range stats {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fW\t%.2fW\t%.2fW\t%.4f\t$%.4f\t%d\n",
			s.DeviceName,
			s.Location,
			usageBar(s.AvgWatts),
			s.AvgWatts,
			s.MaxWatts,
			s.MinWatts,
			s.DailyKWH,
			s.DailyCostUSD,
			s.ReadingCount,
		)
	}

	logger.Debug("Usage list completed", "day", day.Format("2006-01-02"), "devices", len(stats))
}

// usageBar renders average draw as a fixed-width bar scaled to 3kW.
func usageBar(watts float64) string {
	pct := watts / usageBarMaxWatts
	if pct > 1 {
		pct = 1
	}
	if pct < 0 {
		pct = 0
	}

	filled := int(pct * usageBarWidth)

	return strings.Repeat("█", filled) + strings.Repeat("░", usageBarWidth-filled)
}

// parseDayArg returns the optional YYYY-MM-DD argument, defaulting to the
// current UTC day.
func parseDayArg(args []string) time.Time {
	if len(args) == 0 {
		return time.Now().UTC()
	}

	day, err := time.Parse("2006-01-02", args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Invalid date (expected YYYY-MM-DD): %s\n", args[0])
		os.Exit(1)
	}

	return day
}

func init() {
	rootCmd.AddCommand(usageCmd)

	usageCmd.Flags().StringVar(&usageDeviceFilter, "device", "", "Restrict the listing to one device ID")
}
