package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a summary of today's energy usage",
	Run:   runStatus,
}

func runStatus(cmd *cobra.Command, args []string) {
	stats, err := mon.DailyUsage(time.Now().UTC(), "")
	if err != nil {
		logger.Error("Failed to aggregate usage", "error", err)
		fmt.Fprintf(os.Stderr, "Error: Failed to aggregate usage: %v\n", err)
		os.Exit(1)
	}

	totalWatts := 0.0
	totalKWH := 0.0
	totalCost := 0.0
	for _, s := range stats {
		totalWatts += s.AvgWatts
		totalKWH += s.DailyKWH
		totalCost += s.DailyCostUSD
	}

	fmt.Println("=== Energy Status ===")
	fmt.Printf("  Active Devices:   %d\n", len(stats))
	fmt.Printf("  Total Power:      %.1fW\n", totalWatts)
	fmt.Printf("  Est. Daily:       %.2f kWh\n", totalKWH)
	fmt.Printf("  Est. Daily Cost:  $%.4f\n", totalCost)
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
