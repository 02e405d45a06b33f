package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/tuner/internal/app"
	"github.com/five82/tuner/internal/config"
	"github.com/five82/tuner/internal/logtail"
	"github.com/five82/tuner/internal/prefs"
	"github.com/five82/tuner/internal/radio"
	"github.com/five82/tuner/internal/search"
)

const listTimeout = 15 * time.Second

var flagNearbyLimit int

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Print the shareable location of the last search",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _ := prefs.Load(flagPrefs)
		params := app.SeedParams(p.Location, searchOverride(cmd), sortOverride(cmd))
		fmt.Fprintln(cmd.OutOrStdout(), params.Location())
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print stations and broadcasts for the current search and exit",
	RunE:  runList,
}

var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "Print the stations closest to the configured location (needs elastic_url)",
	RunE:  runNearby,
}

func init() {
	nearbyCmd.Flags().IntVar(&flagNearbyLimit, "limit", 10, "number of stations to print")
	logsCmd.Flags().IntVar(&flagLogLines, "lines", 50, "number of lines to print")
	logsCmd.Flags().StringVar(&flagLogGrep, "grep", "", "only print lines containing this text")
}

func runList(cmd *cobra.Command, args []string) error {
	catalog, err := openCatalog()
	if err != nil {
		return err
	}
	defer func() { _ = catalog.Close() }()

	p, _ := prefs.Load(flagPrefs)
	params := app.SeedParams(p.Location, searchOverride(cmd), sortOverride(cmd))
	q := search.DeriveQuery(params, catalog.Geo)

	ctx, cancel := context.WithTimeout(cmd.Context(), listTimeout)
	defer cancel()

	done := make(chan search.Result, 1)
	catalog.Assembler.AssembleAsync(ctx, q, func(res search.Result) { done <- res })
	res := <-done
	if res.Err != nil {
		return res.Err
	}

	out := cmd.OutOrStdout()
	if res.Stale {
		fmt.Fprintln(out, "catalog unreachable, showing cached results")
		fmt.Fprintln(out)
	}
	writeStations(out, res.Stations)
	fmt.Fprintln(out)
	writeBroadcasts(out, res.Broadcasts)
	return nil
}

func runNearby(cmd *cobra.Command, args []string) error {
	catalog, err := openCatalog()
	if err != nil {
		return err
	}
	defer func() { _ = catalog.Close() }()
	if catalog.Index == nil {
		return errors.New("nearby needs elastic_url in the config")
	}
	origin, ok := catalog.Geo.Position()
	if !ok {
		return errors.New("nearby needs [location] enabled in the config or --position")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), listTimeout)
	defer cancel()
	stations, err := catalog.Index.Nearby(ctx, origin, flagNearbyLimit)
	if err != nil {
		return err
	}
	writeStations(cmd.OutOrStdout(), stations)
	return nil
}

// openCatalog loads the config and applies the session location flags.
func openCatalog() (*app.Catalog, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	pos, err := positionOverride()
	if err != nil {
		return nil, err
	}
	catalog, err := app.OpenCatalog(cfg)
	if err != nil {
		return nil, err
	}
	catalog.OverrideLocation(pos, flagNoLocation)
	return catalog, nil
}

func writeStations(w io.Writer, stations []radio.Station) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STATION\tFREQ\tCITY\tGENRE")
	for _, st := range stations {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", st.DisplayName(), st.Frequency, st.City, st.Genre)
	}
	_ = tw.Flush()
}

func writeBroadcasts(w io.Writer, broadcasts []radio.Broadcast) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTS\tSTATION\tTITLE")
	for _, b := range broadcasts {
		start := "-"
		if t := b.ParsedStartsAt(); !t.IsZero() {
			start = t.Format("Mon 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", start, b.StationName, b.Title)
	}
	_ = tw.Flush()
}

var (
	flagLogLines int
	flagLogGrep  string
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the last lines of the tuner log file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		lines, err := logtail.Read(cfg.LogFile, flagLogLines, logtail.Filter{Contains: flagLogGrep})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
		return nil
	},
}
