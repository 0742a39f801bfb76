// Command salesinsight analyses a retail transactions CSV and writes the
// report, charts, summary PDF and optional exports.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/paveg/salesinsight/internal/config"
	"github.com/paveg/salesinsight/internal/logger"
	"github.com/paveg/salesinsight/internal/pipeline"
	"github.com/paveg/salesinsight/internal/version"
)

const (
	exitOK    = 0
	exitError = 1
)

func usage(fs *flag.FlagSet, w io.Writer) func() {
	return func() {
		fmt.Fprintf(w, "salesinsight (version %s)\n\n", version.Version)
		fmt.Fprintf(w, "Usage: salesinsight [options]\n\n")
		fmt.Fprintf(w, "Settings resolve from defaults, then -config, then %s_* environment variables, then flags.\n\n", config.EnvPrefix)
		fmt.Fprintf(w, "Options:\n")
		fs.SetOutput(w)
		fs.PrintDefaults()
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("salesinsight", flag.ContinueOnError)
	versionFlag := fs.Bool("version", false, "Print version information and exit")
	fs.BoolVar(versionFlag, "v", false, "Print version information and exit (shorthand)")
	configPath := fs.String("config", "", "YAML or JSON configuration file")
	input := fs.String("input", config.DefaultInputPath, "Transactions CSV")
	output := fs.String("output", config.DefaultOutputDir, "Directory for the summary PDF and exports")
	viz := fs.String("viz", config.DefaultVisualizationDir, "Directory for chart PNGs")
	topN := fs.Int("top", config.DefaultTopN, "Number of products in rankings")
	delimiter := fs.String("delimiter", config.DefaultDelimiter, "CSV field delimiter")
	exports := fs.String("export", "", "Comma-separated export formats: "+strings.Join(config.ExportFormats, ","))
	logMode := fs.String("log-mode", config.DefaultLogMode, "Log encoding: development or production")
	metrics := fs.Bool("metrics", false, "Log per-stage timings")
	fs.Usage = usage(fs, stderr)
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitError
	}

	if *versionFlag {
		fmt.Fprint(stdout, version.Info().String())
		return exitOK
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	// Flags only override what was set explicitly on the command line.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputPath = *input
		case "output":
			cfg.OutputDir = *output
		case "viz":
			cfg.VisualizationDir = *viz
		case "top":
			cfg.TopN = *topN
		case "delimiter":
			cfg.Delimiter = *delimiter
		case "export":
			cfg.Exports = splitList(*exports)
		case "log-mode":
			cfg.LogMode = *logMode
		case "metrics":
			cfg.Metrics = *metrics
		}
	})

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(stderr, "Error: creating logger: %v\n", err)
		return exitError
	}
	defer log.Sync()

	res, err := pipeline.Run(ctx, cfg, log, stdout)
	if err != nil {
		log.Error("analysis failed", "error", err)
		return exitError
	}
	log.Info("analysis complete", "run_id", res.RunID, "artifacts", len(res.Artifacts))
	return exitOK
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
