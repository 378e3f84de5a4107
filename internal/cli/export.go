package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export a daily report as JSON",
	Long: `Compose today's per-device statistics, the most recent alerts and
summary totals into a JSON report file. The default output path comes from
the settings file.

Examples:
  energy-monitor export
  energy-monitor export /tmp/report.json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runExport,
}

var exportDate string

func runExport(cmd *cobra.Command, args []string) {
	path := settings.DefaultReportPath
	if len(args) > 0 {
		path = args[0]
	}

	day := time.Now().UTC()
	if exportDate != "" {
		var err error
		day, err = time.Parse("2006-01-02", exportDate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Invalid date (expected YYYY-MM-DD): %s\n", exportDate)
			os.Exit(1)
		}
	}

	report, err := mon.BuildReport(day)
	if err != nil {
		logger.Error("Failed to build report", "error", err)
		fmt.Fprintf(os.Stderr, "Error: Failed to build report: %v\n", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Error("Failed to marshal report", "error", err)
		fmt.Fprintf(os.Stderr, "Error: Failed to format report: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Error("Failed to write report", "path", path, "error", err)
		fmt.Fprintf(os.Stderr, "Error: Failed to write report: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Report exported to %s\n", path)
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportDate, "date", "", "Report day in YYYY-MM-DD format (defaults to today)")
}
