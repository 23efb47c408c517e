package main

import (
	"fmt"
	"io"
	"time"

	"github.com/YuminosukeSato/fastmrmr/dataset"
	"github.com/YuminosukeSato/fastmrmr/info"
	"github.com/YuminosukeSato/fastmrmr/mrmr"
	"github.com/YuminosukeSato/fastmrmr/pkg/config"
	"github.com/YuminosukeSato/fastmrmr/pkg/errors"
	"github.com/YuminosukeSato/fastmrmr/pkg/instrument"
	"github.com/YuminosukeSato/fastmrmr/pkg/log"
	"github.com/YuminosukeSato/fastmrmr/report"
)

type runOpts struct {
	legacyRanges bool
	cache        bool
	plotFile     string
	metricsFile  string
}

func run(cfg config.Config, opts runOpts, stdout io.Writer) error {
	logger := log.GetLoggerWithName("cli")

	var metrics *instrument.Metrics
	if opts.metricsFile != "" {
		metrics = instrument.New()
	}

	dsOpts := []dataset.Option{dataset.WithMetrics(metrics)}
	if opts.legacyRanges {
		dsOpts = append(dsOpts, dataset.WithLegacyValueRange())
	}
	ds, err := dataset.Load(cfg.File, dsOpts...)
	if err != nil {
		return err
	}

	// Timing starts once the dataset is in memory.
	start := time.Now()

	engineOpts := []info.EngineOption{info.WithMetrics(metrics)}
	if opts.cache {
		engineOpts = append(engineOpts, info.WithPairCache())
	}
	engine, err := info.NewEngine(ds, engineOpts...)
	if err != nil {
		return err
	}

	selector, err := mrmr.NewFromEngine(engine, mrmr.Config{
		ClassIndex: cfg.ClassIndex,
		Count:      cfg.Count,
	}, mrmr.WithMetrics(metrics))
	if err != nil {
		return err
	}

	var writeErr error
	res, err := selector.Run(func(step mrmr.Step) {
		if writeErr != nil {
			return
		}
		if step.Index > 0 {
			_, writeErr = io.WriteString(stdout, ",")
		}
		if writeErr == nil {
			_, writeErr = fmt.Fprint(stdout, step.Feature)
		}
	})
	if err != nil {
		return err
	}
	if writeErr != nil {
		return errors.Wrap(writeErr, "write selection")
	}

	elapsed := time.Since(start)
	if _, err := fmt.Fprintf(stdout, "\nElapsed time: %.6g ms\n", float64(elapsed)/float64(time.Millisecond)); err != nil {
		return errors.Wrap(err, "write elapsed time")
	}
	logger.Info("Run finished",
		log.PathKey, cfg.File,
		log.MIQueriesKey, engine.Queries(),
		log.DurationMsKey, elapsed.Milliseconds(),
	)

	if opts.plotFile != "" && len(res.Selected) > 0 {
		title := fmt.Sprintf("mRMR selection (class %d)", cfg.ClassIndex)
		if err := report.Save(opts.plotFile, res, title); err != nil {
			return err
		}
	}
	return metrics.WriteFile(opts.metricsFile)
}
