// Command plcoord converts files of coordinate records between geodetic,
// Cartesian and Polish grid coordinates.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tzneal/plcoord"
	"github.com/tzneal/plcoord/internal/batch"
	"github.com/tzneal/plcoord/internal/logging"
	"github.com/tzneal/plcoord/internal/observability"
)

type config struct {
	batch       batch.Config
	outSuffix   string
	metricsFile string
	trace       bool
	files       []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) int {
	cfg, err := parseConfig(args, stderr, getenv)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "plcoord:", err)
		return 2
	}

	log := logging.New(logging.Config{
		Level:  getenv("LOG_LEVEL"),
		Format: getenv("LOG_FORMAT"),
		Output: stderr,
	})

	tracing := observability.TracingConfigFromEnv(getenv)
	tracing.Enabled = tracing.Enabled || cfg.trace
	tracing.Writer = stderr
	shutdown, err := observability.InitTracing(ctx, tracing, log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.Err(err))
		return 1
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdown, log)

	reg := prometheus.NewRegistry()
	metrics, err := observability.NewBatchMetrics(reg)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics", logging.Err(err))
		return 1
	}

	p, err := batch.NewProcessor(cfg.batch, batch.WithLogger(log), batch.WithMetrics(metrics))
	if err != nil {
		log.Error(ctx, "invalid configuration", logging.Err(err))
		return 2
	}

	status := 0
	if len(cfg.files) == 0 {
		start := time.Now()
		err := p.Process(ctx, stdin, stdout)
		metrics.ObserveFile(time.Since(start).Seconds(), err)
		if err != nil {
			log.Error(ctx, "conversion failed", logging.String("input", "stdin"), logging.Err(err))
			status = 1
		}
	}
	for _, in := range cfg.files {
		if err := p.ProcessFile(ctx, in, in+cfg.outSuffix); err != nil {
			status = 1
		}
	}

	if cfg.metricsFile != "" {
		if err := metrics.WriteToTextfile(cfg.metricsFile); err != nil {
			log.Warn(ctx, "failed to write metrics", logging.Err(err))
		}
	}
	return status
}

// parseConfig reads flags from args. Environment variables supply the
// defaults so flags always win.
func parseConfig(args []string, stderr io.Writer, getenv func(string) string) (config, error) {
	fs := flag.NewFlagSet("plcoord", flag.ContinueOnError)
	fs.SetOutput(stderr)

	ellipsoid := fs.String("ellipsoid", envOr(getenv, "PLCOORD_ELLIPSOID", plcoord.GRS80.Name()),
		"reference ellipsoid: "+ellipsoidNames())
	op := fs.String("op", envOr(getenv, "PLCOORD_OP", ""),
		"operation: "+strings.Join(batch.OperationNames(), ", "))
	l0 := fs.String("l0", getenv("PLCOORD_L0"),
		"central meridian in degrees for fl2gk, fl2000 and fl1992 (fl1992 defaults to 19)")
	dms := fs.Bool("dms", false, "format angles as degrees, minutes and seconds")
	format := fs.String("format", batch.FormatText, "output format: text or geojson")
	outSuffix := fs.String("out-suffix", ".out", "suffix appended to each input file name for its output")
	metricsFile := fs.String("metrics-file", "", "write Prometheus metrics to this file on exit")
	trace := fs.Bool("trace", false, "export trace spans to stderr")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: plcoord -op OPERATION [flags] [files...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if *op == "" {
		return config{}, errors.New("-op is required")
	}
	e, err := plcoord.ParseEllipsoid(*ellipsoid)
	if err != nil {
		return config{}, err
	}
	if *outSuffix == "" {
		return config{}, errors.New("-out-suffix must not be empty")
	}

	centralMeridian, err := parseCentralMeridian(strings.ToLower(*op), *l0)
	if err != nil {
		return config{}, err
	}

	return config{
		batch: batch.Config{
			Ellipsoid:       e,
			Operation:       *op,
			CentralMeridian: centralMeridian,
			DMS:             *dms,
			Format:          *format,
		},
		outSuffix:   *outSuffix,
		metricsFile: *metricsFile,
		trace:       *trace,
		files:       fs.Args(),
	}, nil
}

func parseCentralMeridian(op, raw string) (float64, error) {
	if raw == "" {
		switch op {
		case "fl1992":
			return plcoord.PL1992CentralMeridian, nil
		case "fl2gk", "fl2000":
			return 0, fmt.Errorf("-l0 is required for %s", op)
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid -l0 %q: %w", raw, err)
	}
	return v, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func ellipsoidNames() string {
	var names []string
	for _, e := range plcoord.Ellipsoids() {
		names = append(names, e.Name())
	}
	return strings.Join(names, ", ")
}
