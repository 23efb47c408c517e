package main

import (
	"github.com/YuminosukeSato/fastmrmr/pkg/config"
	"github.com/YuminosukeSato/fastmrmr/pkg/errors"
	"github.com/YuminosukeSato/fastmrmr/pkg/log"
	"github.com/spf13/cobra"
)

type rootOpts struct {
	file     string
	class    int
	features int

	configFile   string
	logLevel     string
	legacyRanges bool
	cache        bool
	plotFile     string
	metricsFile  string
}

func newRootCmd() *cobra.Command {
	opts := rootOpts{}

	rootCmd := &cobra.Command{
		Use:   "fast-mrmr",
		Short: "fast-mrmr selects features with the minimum-Redundancy-Maximum-Relevance criterion",
		Long: `fast-mrmr reads a dataset file produced by the mrmr reader (uint32 sample count,
uint32 feature count, then one byte per sample and feature) and greedily picks the
features that share the most information with the class while sharing the least
with each other. Selected 0-based feature indices are printed as they are chosen.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.SafeExecute("fast-mrmr", func() error {
				if err := log.SetupLogger(opts.logLevel, cmd.ErrOrStderr()); err != nil {
					return err
				}
				cfg, err := resolveConfig(cmd, opts)
				if err != nil {
					return err
				}
				err = run(cfg, runOpts{
					legacyRanges: opts.legacyRanges,
					cache:        opts.cache,
					plotFile:     opts.plotFile,
					metricsFile:  opts.metricsFile,
				}, cmd.OutOrStdout())
				if err != nil {
					log.GetLoggerWithName("cli").Error("Selection failed", err, log.PathKey, cfg.File)
				}
				return err
			})
		},
	}

	rootCmd.Flags().StringVarP(&opts.file, "file", "f", config.DefaultFile, "dataset file generated by the mrmr reader")
	rootCmd.Flags().IntVarP(&opts.class, "class", "c", config.DefaultClassIndex+1, "1-based column of the class feature")
	rootCmd.Flags().IntVarP(&opts.features, "features", "a", config.DefaultCount+1, "number of features to select, passed 1-based (the selector uses n-1)")
	rootCmd.Flags().StringVar(&opts.configFile, "config", "", "YAML file with file, class and features; flags take precedence")
	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&opts.legacyRanges, "legacy-ranges", false, "derive value ranges with the legacy counter instead of the true maximum")
	rootCmd.Flags().BoolVar(&opts.cache, "cache", false, "cache mutual information per unordered feature pair")
	rootCmd.Flags().StringVar(&opts.plotFile, "plot", "", "write a relevance/score bar chart to this file (png, svg, pdf)")
	rootCmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file")
	return rootCmd
}

// resolveConfig applies defaults, then the YAML file, then explicitly set
// flags. All 1-based values are converted here and nowhere else.
func resolveConfig(cmd *cobra.Command, opts rootOpts) (config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		var err error
		if cfg, err = config.LoadFile(opts.configFile, cfg); err != nil {
			return cfg, err
		}
	}

	fromFlags := config.FromOneBased(opts.file, opts.class, opts.features)
	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.File = fromFlags.File
	}
	if flags.Changed("class") {
		cfg.ClassIndex = fromFlags.ClassIndex
	}
	if flags.Changed("features") {
		cfg.Count = fromFlags.Count
	}
	return cfg, cfg.Validate()
}
