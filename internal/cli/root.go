package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/blackroad/energy-monitor/internal/config"
	"github.com/blackroad/energy-monitor/internal/database"
	"github.com/blackroad/energy-monitor/internal/monitor"
	"github.com/blackroad/energy-monitor/internal/store"
	"github.com/blackroad/energy-monitor/internal/version"
)

var (
	verbose bool
	logFile string

	logger   *slog.Logger
	settings *config.Settings
	db       *gorm.DB
	mon      *monitor.Monitor
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "energy-monitor",
	Version: version.GetVersion(),
	Short:   "Device power-draw monitor",
	Long: `A command line utility for monitoring device power consumption.

Readings are persisted to a local SQLite database. Each new reading is
checked against the device's rolling baseline and its optional static
threshold, and daily per-device usage, energy and cost statistics can be
listed or exported as a JSON report.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()
		return initializeMonitor()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db == nil {
			return nil
		}
		return database.Close(db)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file (with rotation) instead of stdout")
}

// setupLogger configures the logger based on the verbose and log-file flags
func setupLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var sink io.Writer = os.Stdout
	if logFile != "" {
		sink = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
	}

	logger = slog.New(slog.NewTextHandler(sink, &slog.HandlerOptions{
		Level: level,
	}))

	// Set as default logger
	slog.SetDefault(logger)
}

// initializeMonitor loads settings, opens the database and builds the
// monitor the subcommands run against. The handle is released by the
// root command's PersistentPostRunE.
func initializeMonitor() error {
	newSettings, loaded := config.LoadOrInitializeSettingsFromDefaultLocation()
	settings = loaded
	if newSettings {
		logger.Debug("Created new settings file")
		if err := settings.Save(); err != nil {
			logger.Warn("Failed to save new settings", "error", err)
		}
	}

	var err error
	db, err = database.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	mon = monitor.New(store.New(db),
		monitor.WithCostPerKWH(settings.CostPerKWH),
		monitor.WithLogger(logger),
	)

	return nil
}
