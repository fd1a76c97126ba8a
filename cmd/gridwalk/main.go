// Command gridwalk walks the grids of the compacts described in a TOML file
// and prints every visited point.
//
// Usage:
//
//	gridwalk -config gridwalk.toml [-debug]
//
// Each point is printed as "name<TAB>index<TAB>(x, y, ...)".
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/KoT9R/UI-lab/internal/config"
	"github.com/KoT9R/UI-lab/internal/walker"
	"github.com/KoT9R/UI-lab/logging"
	"github.com/KoT9R/UI-lab/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gridwalk", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "gridwalk.toml", "Path to the TOML configuration")
	isDebug := fs.Bool("debug", false, "Enable debug log output")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.NewText(stderr, 0).Error("Read config fail", "path", *configPath, "error", err)
		return 1
	}

	logger := cfg.Logger(stderr, *isDebug)
	logger.Info("gridwalk start", "walks", len(cfg.Walks), "max-parallel", cfg.MaxParallel)
	printBuildInfo(logger)

	m := &metrics.BasicCollector{}
	r := walker.FromConfig(cfg, walker.WithLogger(logger), walker.WithMetricsCollector(m))
	results, err := r.Run(ctx, cfg)

	out := bufio.NewWriter(stdout)
	for _, res := range results {
		for i, p := range res.Points {
			fmt.Fprintf(out, "%s\t%d\t%s\n", res.Name, i, formatPoint(p))
		}
	}
	if ferr := out.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	if err != nil {
		logger.Error("walk failed", "error", err)
		return 1
	}

	if hull, err := walker.Hull(results); err != nil {
		logger.Warn("no common hull", "error", err)
	} else {
		logger.Info("hull", "compact", hull.String(), "volume", hull.Volume())
	}

	stats := m.GetStats()
	logger.Info("gridwalk exit", "points", r.Emitted(), "steps", stats.Steps, "exhausted", stats.Exhaustions)
	return 0
}

func formatPoint(p []float64) string {
	parts := make([]string, len(p))
	for i, x := range p {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func printBuildInfo(logger *logging.Logger) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	logger.Debug("build info", "go", info.GoVersion, "path", info.Path)
}
