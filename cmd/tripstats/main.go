package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/ridereport/tripstats"
	"github.com/ridereport/tripstats/api"
	"github.com/ridereport/tripstats/config"
	"github.com/ridereport/tripstats/dashboard"
	"github.com/ridereport/tripstats/report"
)

func main() {
	app := &cli.App{
		Name:  "tripstats",
		Usage: "rank ride-hailing pickup zones and busy hours from trip record CSVs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "report",
				Usage:     "ingest a trip record file and print the rankings",
				ArgsUsage: "path ('-' or nothing reads stdin)",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"k"},
						Usage:   "number of entries per ranking",
						Value:   report.DefaultK,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "output format: text, json",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "log every skipped row to stderr",
					},
				},
				Action: runReport,
			},
			{
				Name:      "serve",
				Usage:     "ingest a trip record file and serve the rankings over HTTP",
				ArgsUsage: "path",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "listen address",
					},
				},
				Action: runServe,
			},
			{
				Name:      "watch",
				Usage:     "show a live dashboard that re-ingests the file when it changes",
				ArgsUsage: "path",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"k"},
						Usage:   "number of entries per ranking",
						Value:   report.DefaultK,
					},
				},
				Action: runWatch,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	return config.Load(ctx.String("config"))
}

// inputPath resolves the trip record source: the positional argument wins,
// then the configured input path, then stdin.
func inputPath(ctx *cli.Context, cfg *config.Config) string {
	if ctx.Args().Len() > 0 {
		return ctx.Args().First()
	}
	if cfg.Input.Path != "" {
		return cfg.Input.Path
	}
	return "-"
}

func ingest(cfg *config.Config, path string) (*tripstats.Analyzer, tripstats.IngestSummary) {
	a := tripstats.NewAnalyzer()
	p := tripstats.Parser{Dialect: cfg.Dialect()}
	if path == "-" {
		return a, a.IngestReader(os.Stdin, p)
	}
	return a, a.IngestFile(path, p)
}

func runReport(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.IsSet("top") {
		cfg.Report.K = ctx.Int("top")
	}
	if ctx.IsSet("format") {
		cfg.Report.Format = ctx.String("format")
		if _, ok := report.ParseFormat(cfg.Report.Format); !ok {
			return fmt.Errorf("unknown report format %q", cfg.Report.Format)
		}
	}
	if !ctx.Bool("verbose") {
		log.SetOutput(io.Discard)
	}

	path := inputPath(ctx, cfg)
	a, sum := ingest(cfg, path)
	r := report.Build(a, sum, cfg.Report.K)

	out, err := r.Export(cfg.Format())
	if err != nil {
		return err
	}
	// The report goes to stdout so it stays machine parseable; the colored
	// summary goes to stderr.
	if _, err := os.Stdout.Write(out); err != nil {
		return err
	}
	printSummary(r, path)
	return nil
}

func printSummary(r report.Report, path string) {
	pc := color.New(color.FgCyan)
	nc := color.New(color.FgGreen)
	source := path
	if source == "-" {
		source = "stdin"
	}
	fmt.Fprintf(os.Stderr, "Read %s rows from %s: %s ingested, %s skipped\n",
		nc.Sprint(r.RowsSeen), pc.Sprint(source),
		nc.Sprint(r.RowsSeen-r.RowsSkipped), nc.Sprint(r.RowsSkipped))
	fmt.Fprintf(os.Stderr, "%s trips across %s zones\n",
		nc.Sprint(r.Trips), nc.Sprint(r.Zones))
}

func runServe(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.IsSet("addr") {
		cfg.API.Addr = ctx.String("addr")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	path := inputPath(ctx, cfg)
	a, sum := ingest(cfg, path)
	logger.Info("ingested trip records",
		"path", path,
		"rows_seen", sum.RowsSeen,
		"rows_skipped", sum.RowsSkipped,
		"trips", a.TotalTrips(),
		"zones", a.NumZones(),
	)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return api.New(cfg.API.Addr, a, sum, logger).Run(runCtx)
}

func runWatch(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.IsSet("top") {
		cfg.Report.K = ctx.Int("top")
	}
	path := inputPath(ctx, cfg)
	if path == "-" {
		return fmt.Errorf("a path to a trip record file was not provided")
	}

	// Row skip logs would tear the terminal UI.
	log.SetOutput(io.Discard)
	return dashboard.Run(dashboard.Options{
		Path:     path,
		Dialect:  cfg.Dialect(),
		K:        cfg.Report.K,
		Debounce: cfg.Debounce(),
	})
}
