package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/nspcc-dev/chunkprune/cmd/chunkprune/config"
	loggerconfig "github.com/nspcc-dev/chunkprune/cmd/chunkprune/config/logger"
	metricsconfig "github.com/nspcc-dev/chunkprune/cmd/chunkprune/config/metrics"
	pruneconfig "github.com/nspcc-dev/chunkprune/cmd/chunkprune/config/prune"
	"github.com/nspcc-dev/chunkprune/cmd/internal/cmderr"
	"github.com/nspcc-dev/chunkprune/misc"
	"github.com/nspcc-dev/chunkprune/pkg/metrics"
	"github.com/nspcc-dev/chunkprune/pkg/pruner"
	"github.com/nspcc-dev/chunkprune/pkg/util/grace"
	"github.com/nspcc-dev/chunkprune/pkg/util/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	configFlag          = "config"
	workersFlag         = "workers"
	dryRunFlag          = "dry-run"
	noProgressFlag      = "no-progress"
	metricsTextfileFlag = "metrics-textfile"
	versionFlag         = "version"
)

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunkprune [flags] <world-dir> <threshold>",
		Short: "Remove rarely visited region files of the world",
		Long: `Chunkprune inspects region files of the world directory and removes
the ones whose chunk has been inhabited by players for less than
<threshold> game ticks. Overworld, nether and end regions are
handled in this order.`,
		Args:          cobra.MaximumNArgs(2),
		RunE:          entryPoint,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// use stdout as default output for cmd.Print()
	cmd.SetOut(os.Stdout)
	initFlags(cmd.Flags())

	return cmd
}

func initFlags(ff *pflag.FlagSet) {
	ff.StringP(configFlag, "c", "", "Path to the YAML or JSON configuration file")
	ff.Int(workersFlag, 0, "Number of region files processed concurrently (default number of CPUs)")
	ff.Bool(dryRunFlag, false, "Report removable region files without removing them")
	ff.Bool(noProgressFlag, false, "Don't draw progress bars")
	ff.String(metricsTextfileFlag, "", "Write run metrics in Prometheus text format to the file")
	ff.Bool(versionFlag, false, "Application version")
}

// params are the resolved settings of the run. Flags and arguments take
// precedence over the configuration file.
type params struct {
	world     string
	threshold int64
	workers   int
	dryRun    bool
	progress  bool
	roots     []string
	textfile  string
	logger    logger.Prm
}

func entryPoint(cmd *cobra.Command, args []string) error {
	printVersion, _ := cmd.Flags().GetBool(versionFlag)
	if printVersion {
		cmd.Print(misc.BuildInfo("Chunkprune"))

		return nil
	}

	prm, err := readParams(cmd.Flags(), args)
	if err != nil {
		return cmderr.Usage(err)
	}

	log, err := logger.New(prm.logger)
	if err != nil {
		return cmderr.Usage(err)
	}
	defer func() { _ = log.Sync() }()

	return run(grace.NewGracefulContext(log), cmd, log, prm)
}

func readParams(ff *pflag.FlagSet, args []string) (params, error) {
	var prm params

	if len(args) == 0 {
		return prm, errors.New("missing world directory")
	}

	var opts []config.Option

	cfgPath, _ := ff.GetString(configFlag)
	if cfgPath != "" {
		path, err := homedir.Expand(cfgPath)
		if err != nil {
			return prm, fmt.Errorf("expand config path: %w", err)
		}
		opts = append(opts, config.WithConfigFile(path))
	}

	c, err := config.New(config.Prm{}, opts...)
	if err != nil {
		return prm, err
	}

	prm.world, err = homedir.Expand(args[0])
	if err != nil {
		return prm, fmt.Errorf("expand world path: %w", err)
	}

	if len(args) > 1 {
		prm.threshold, err = strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return prm, fmt.Errorf("invalid threshold %q: %w", args[1], err)
		}
	} else {
		var set bool
		prm.threshold, set, err = pruneconfig.Threshold(c)
		if err != nil {
			return prm, err
		}
		if !set {
			return prm, errors.New("missing threshold")
		}
	}

	prm.workers = pruneconfig.Workers(c)
	if ff.Changed(workersFlag) {
		n, _ := ff.GetInt(workersFlag)
		if n <= 0 {
			return prm, fmt.Errorf("invalid number of workers %d", n)
		}
		prm.workers = n
	}

	prm.dryRun = pruneconfig.DryRun(c)
	if ff.Changed(dryRunFlag) {
		prm.dryRun, _ = ff.GetBool(dryRunFlag)
	}

	noProgress, _ := ff.GetBool(noProgressFlag)
	prm.progress = !noProgress

	prm.roots = pruneconfig.Roots(c)

	prm.textfile = metricsconfig.Textfile(c)
	if ff.Changed(metricsTextfileFlag) {
		prm.textfile, _ = ff.GetString(metricsTextfileFlag)
	}
	if prm.textfile != "" {
		prm.textfile, err = homedir.Expand(prm.textfile)
		if err != nil {
			return prm, fmt.Errorf("expand metrics textfile path: %w", err)
		}
	}

	prm.logger = logger.Prm{
		Level:     loggerconfig.Level(c),
		Encoding:  loggerconfig.Encoding(c),
		Timestamp: loggerconfig.Timestamp(c),
	}

	return prm, nil
}

func run(ctx context.Context, cmd *cobra.Command, log *zap.Logger, prm params) error {
	m := metrics.NewPrunerMetrics(misc.Version)

	opts := []pruner.Option{
		pruner.WithLogger(log),
		pruner.WithThreshold(prm.threshold),
		pruner.WithDryRun(prm.dryRun),
		pruner.WithRoots(prm.roots),
		pruner.WithWorkers(prm.workers),
		pruner.WithMetrics(m),
	}
	if prm.progress {
		opts = append(opts, pruner.WithProgress(cmd.ErrOrStderr()))
	}

	log.Info("pruning world",
		zap.String("world", prm.world),
		zap.Int64("threshold", prm.threshold),
		zap.Int("workers", prm.workers),
		zap.Bool("dry_run", prm.dryRun),
	)

	start := time.Now()
	scanErr := pruner.New(opts...).Scan(ctx, prm.world)
	took := time.Since(start)

	m.SetLastRun(time.Now(), took)

	if prm.textfile != "" {
		if err := m.WriteTextfile(prm.textfile); err != nil {
			log.Error("could not export metrics", zap.Error(err))
		}
	}

	summary, err := m.Summary()
	if err != nil {
		log.Error("could not collect run summary", zap.Error(err))
	} else {
		printSummary(cmd.OutOrStdout(), prm.roots, summary)
	}

	if scanErr != nil {
		return cmderr.ExitErr{Code: cmderr.CodeFailure, Cause: scanErr}
	}

	log.Info("world pruned", zap.Duration("took", took))

	return nil
}
