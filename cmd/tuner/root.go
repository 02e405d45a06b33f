package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/tuner/internal/app"
	"github.com/five82/tuner/internal/config"
	"github.com/five82/tuner/internal/geo"
)

var (
	flagConfig         string
	flagPrefs          string
	flagPoll           int
	flagSearch         string
	flagSortByDistance bool
	flagPosition       string
	flagNoLocation     bool
)

var rootCmd = &cobra.Command{
	Use:          "tuner",
	Short:        "Terminal browser for a free-radio catalog",
	Long:         "tuner searches radio stations and scheduled broadcasts, optionally sorted by distance from your location.",
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default ~/.config/tuner/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagPrefs, "prefs", "", "path to prefs file (default ~/.config/tuner/prefs.toml)")
	rootCmd.PersistentFlags().StringVar(&flagSearch, "search", "", "start with this search text")
	rootCmd.PersistentFlags().BoolVar(&flagSortByDistance, "sort-by-distance", false, "sort stations nearest first (needs [location] enabled)")
	rootCmd.PersistentFlags().StringVar(&flagPosition, "position", "", "use this lat,lon instead of the configured location")
	rootCmd.PersistentFlags().BoolVar(&flagNoLocation, "no-location", false, "disable distance sorting for this session")
	rootCmd.Flags().IntVar(&flagPoll, "poll", 0, "health refresh interval in seconds (default 2)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(locationCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(nearbyCmd)
	rootCmd.AddCommand(logsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tuner %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pos, err := positionOverride()
	if err != nil {
		return err
	}

	closeLog := redirectLog(cfg.LogFile)
	defer closeLog()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return app.Run(ctx, cfg, app.Options{
		PrefsPath:      flagPrefs,
		PollEvery:      flagPoll,
		Search:         searchOverride(cmd),
		SortByDistance: sortOverride(cmd),
		Position:       pos,
		NoLocation:     flagNoLocation,
	})
}

// positionOverride parses --position; an empty flag keeps the configured
// location.
func positionOverride() (*geo.Point, error) {
	if flagPosition == "" {
		return nil, nil
	}
	p, err := geo.ParsePoint(flagPosition)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// searchOverride returns the --search value only when the flag was given, so
// an omitted flag keeps the persisted location.
func searchOverride(cmd *cobra.Command) *string {
	if !cmd.Flags().Changed("search") {
		return nil
	}
	v := flagSearch
	return &v
}

func sortOverride(cmd *cobra.Command) *bool {
	if !cmd.Flags().Changed("sort-by-distance") {
		return nil
	}
	v := flagSortByDistance
	return &v
}

// redirectLog sends the standard logger to path while the TUI owns the
// terminal. Without a usable path logging is discarded.
func redirectLog(path string) func() {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}
}
