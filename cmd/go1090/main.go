package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"jet1090go/internal/app"
)

func main() {
	var config app.Config
	var configPath string

	// A minimal pre-scan for --config, ahead of cobra's own flag
	// parsing: file values become the flags' defaults, so an explicit
	// command-line flag still overrides whatever the file set.
	for i, arg := range os.Args {
		switch {
		case arg == "--config" && i+1 < len(os.Args):
			configPath = os.Args[i+1]
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		}
	}
	if configPath != "" {
		if err := app.LoadConfigFile(configPath, &config); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config file: %v\n", err)
			os.Exit(1)
		}
	}
	config = config.WithDefaults()

	rootCmd := &cobra.Command{
		Use:   "jet1090go",
		Short: "Multi-sensor ADS-B/Mode S aggregator",
		Long: `Multi-sensor ADS-B/Mode S aggregator.

Ingests Mode S frames from one or more Beast-format TCP feeds,
deduplicates observations of the same frame across sensors, decodes
DF/BDS content, and folds it into per-aircraft state. Optionally
streams decoded events over a websocket and/or writes them to a
rotating .jsonl log, alongside dump1090-style BaseStation CSV output.

Example usage:
  jet1090go --beast 127.0.0.1:30005 --beast 10.0.0.5:30005 --jsonl --websocket :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ShowVersion {
				app.ShowVersion()
				return nil
			}

			application := app.NewApplication(config)
			return application.Start()
		},
	}

	rootCmd.Flags().StringSliceVar(&config.BeastAddrs, "beast", nil, "Beast-format TCP feed address (repeatable)")
	rootCmd.Flags().DurationVar(&config.DedupWindow, "dedup-window", app.DefaultDedupWindow, "Cross-sensor deduplication window")
	rootCmd.Flags().DurationVar(&config.StateMaxAge, "state-max-age", app.DefaultStateMaxAge, "Aircraft expiry age with no traffic")
	rootCmd.Flags().DurationVar(&config.HistoryMaxAge, "history-max-age", app.DefaultHistoryMaxAge, "History retention age")
	rootCmd.Flags().IntVar(&config.HistoryLength, "history-length", app.DefaultHistoryLength, "Per-aircraft history entry cap")
	rootCmd.Flags().StringVar(&config.AircraftDBPath, "aircraft-db", "", "Optional CSV registration/typecode database")
	rootCmd.Flags().StringVarP(&config.LogDir, "log-dir", "l", "./logs", "Log directory")
	rootCmd.Flags().BoolVarP(&config.LogRotateUTC, "utc", "u", true, "Use UTC for log rotation")
	rootCmd.Flags().BoolVar(&config.BaseStationEnabled, "basestation", false, "Write dump1090-style BaseStation CSV output")
	rootCmd.Flags().BoolVar(&config.JSONLEnabled, "jsonl", false, "Write decoded events as .jsonl")
	rootCmd.Flags().StringVar(&config.WebsocketAddr, "websocket", "", "Serve decoded events over a websocket at this address (e.g. :8080)")
	rootCmd.Flags().StringVar(&config.WebsocketPath, "websocket-path", "/ws", "HTTP path for the websocket endpoint")
	rootCmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&config.ShowVersion, "version", false, "Show version information")
	rootCmd.Flags().StringVar(&configPath, "config", configPath, "YAML config file (values become flag defaults; explicit flags still win)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
