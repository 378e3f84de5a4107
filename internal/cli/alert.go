package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/blackroad/energy-monitor/internal/monitor"
)

var alertLimit int

// alertCmd represents the alerts command
var alertCmd = &cobra.Command{
	Use:     "alerts",
	Aliases: []string{"a", "anomalies"},
	Short:   "List recent alerts",
	Long:    `List the most recently generated alerts, newest first.`,
	Run:     runAlerts,
}

func runAlerts(cmd *cobra.Command, args []string) {
	alerts, err := mon.RecentAlerts(alertLimit)
	if err != nil {
		logger.Error("Failed to fetch alerts", "error", err)
		fmt.Fprintf(os.Stderr, "Error: Failed to fetch alerts: %v\n", err)
		os.Exit(1)
	}

	if len(alerts) == 0 {
		fmt.Println("No anomalies detected.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "TIME\tDEVICE\tTYPE\tMESSAGE")

	for _, alert := range alerts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			alert.CreatedAt.Format("2006-01-02T15:04:05"),
			alert.DeviceName,
			alert.AlertType,
			alert.Message,
		)
	}

	logger.Debug("Alert list completed", "count", len(alerts))
}

func init() {
	rootCmd.AddCommand(alertCmd)

	alertCmd.Flags().IntVar(&alertLimit, "limit", monitor.DefaultAlertLimit, "Maximum number of alerts to list")
}
