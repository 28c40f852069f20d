// Package main provides the matvis command: it runs the maternity data
// pipeline for one view and prints the resulting table.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/config"
	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/formatter"
	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/loader"
	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/logger"
	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/models"
	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML configuration file")
	view := flag.String("view", "map", "View to build: map, bar, region-bar or timeseries")
	dimension := flag.String("dimension", "", "Dimension to build the view for")
	orgLevel := flag.String("org-level", pipeline.RegionLevel, "Organisation level to filter by")
	location := flag.String("location", "", "Organisation name for bar/timeseries views")
	year := flag.String("year", "", "Reporting year, e.g. 2022-23")
	compare := flag.Bool("compare-all-submitters", false, "Attach All Submitters markers to the bar view")

	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level)

	if *dimension == "" {
		log.Error("please provide a dimension with -dimension")
		flag.PrintDefaults()
		os.Exit(1)
	}

	store := loader.NewCachedStore(loader.NewFileStore(cfg))
	builder := pipeline.NewBuilder(cfg, store, log)

	start := time.Now()

	var table models.Table

	switch *view {
	case "map":
		table, err = builder.BuildMapData(*dimension, *orgLevel, *year)
	case "bar":
		table, err = builder.BuildBarChartData(*dimension, *orgLevel, *location, *year)
		if err == nil && *compare {
			var national models.Table

			national, err = builder.BuildBarChartData(*dimension, pipeline.NationalLevel, pipeline.AllSubmitters, *year)
			if err == nil {
				table = pipeline.MergeAllSubmitters(table, national)
			}
		}
	case "region-bar":
		table, err = builder.BuildRegionBarChartData(*dimension, *year)
	case "timeseries":
		table, err = builder.BuildTimeSeriesData(*dimension, *orgLevel, *location)
	default:
		log.Error("unknown view", "view", *view)
		os.Exit(1)
	}

	if err != nil {
		log.Error("build failed", "view", *view, "error", err)
		os.Exit(1)
	}

	log.Info("built view", "view", *view, "rows", len(table), "elapsed", time.Since(start))

	if len(table) == 0 {
		log.Warn("no rows matched the requested filters")
		return
	}

	fmt.Print(formatter.FormatTable(table))
}
