package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/aerocats/massprops/internal/aircraft"
	"github.com/aerocats/massprops/internal/config"
	"github.com/aerocats/massprops/internal/logging"
	"github.com/aerocats/massprops/internal/mass"
	intOtel "github.com/aerocats/massprops/internal/otel"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	ToolName string = "massprops"
)

const usage = `usage: massprops [flags] <command> [args]

commands:
  report                 weight breakdown table
  json                   full report as JSON
  subtotal <label>       total weight of one weight group
  cg <path>              center of gravity of a subtree, e.g. Wing/Right
  moi <x,y,z> <dx,dy,dz> moment of inertia about an axis (display length units)
  save                   store the report and publish the run summary
  history [label]        stored runs of this aircraft, or one group's weights

flags:
`

// errUsage marks command line mistakes; main prints usage for them.
var errUsage = errors.New("usage error")

// app is one invocation of the tool.
type app struct {
	stdout io.Writer
	stderr io.Writer

	slogManager *logging.SlogManager
	logger      *slog.Logger
	zlog        zerolog.Logger
	otel        *intOtel.Provider
	metrics     *intOtel.RunMetrics

	agg   *mass.Aggregator
	built *aircraft.Built
	depth int
	limit int
	start time.Time
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet(ToolName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	configDir := fs.String("config-dir", ".", "directory holding "+config.FileName)
	aircraftPath := fs.String("aircraft", "", "aircraft definition file (YAML or JSON)")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("storage", "", "storage backend: memory, sqlite, postgres")
	depth := fs.Int("depth", -1, "deepest breakdown level in the report, -1 for all")
	limit := fs.Int("limit", 10, "number of stored runs listed by history")
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *showVersion {
		fmt.Fprintf(stdout, "%s %s (built %s)\n", ToolName, CurrentVersion, BuildDate)
		return nil
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("%w: no command given", errUsage)
	}
	if *aircraftPath == "" {
		return fmt.Errorf("%w: --aircraft is required", errUsage)
	}

	if err := config.Load(*configDir); err != nil {
		return err
	}
	if err := config.BindFlags(fs); err != nil {
		return err
	}

	a := &app{stdout: stdout, stderr: stderr, depth: *depth, limit: *limit, start: time.Now()}
	if err := a.setupLogging(); err != nil {
		return err
	}
	defer a.shutdown()

	if err := a.loadAircraft(*aircraftPath); err != nil {
		a.logger.Error("Failed to build aircraft", "path", *aircraftPath, "error", err)
		return err
	}
	return a.dispatch(ctx, rest[0], rest[1:])
}

// setupLogging wires slog to stderr, plus the OTel log pipeline when enabled.
func (a *app) setupLogging() error {
	level := config.GetString("logLevel")
	a.slogManager = logging.NewSlogManager()

	oc := config.GetOTelConfig()
	otelCfg := intOtel.Config{
		Enabled:        oc.Enabled,
		ServiceName:    oc.ServiceName,
		ServiceVersion: CurrentVersion,
		BatchTimeout:   oc.BatchTimeout,
		Endpoint:       oc.Endpoint,
		Insecure:       oc.Insecure,
	}
	if oc.Enabled {
		otelCfg.LogPath = logging.LogFilePath(config.GetString("logsDir"), ToolName+".otel", a.start)
	}

	provider, err := intOtel.New(otelCfg)
	if err != nil {
		return fmt.Errorf("failed to set up OTel: %w", err)
	}
	a.otel = provider

	a.slogManager.Setup(a.stderr, level, provider.LoggerProvider())
	a.logger = a.slogManager.Logger()
	a.zlog = logging.NewZerolog(a.stderr, level)

	a.metrics, err = intOtel.NewRunMetrics(provider)
	if err != nil {
		return err
	}
	return nil
}

func (a *app) loadAircraft(path string) error {
	var cfg aircraft.Config
	if err := config.LoadAircraft(path, &cfg); err != nil {
		return err
	}

	agg, err := mass.New(config.GetGravity())
	if err != nil {
		return err
	}
	built, err := aircraft.Build(cfg, agg)
	if err != nil {
		return err
	}
	a.agg, a.built = agg, built

	a.slogManager.SetAircraft(built.Aircraft.Name)
	a.slogManager.LogWarnings("aircraft", built.Warnings)
	a.logger.Debug("Aircraft built", "path", path, "subsystems", built.Aircraft.Root.Len())
	return nil
}

func (a *app) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.slogManager.Flush(ctx); err != nil {
		fmt.Fprintln(a.stderr, "failed to flush logs:", err)
	}
	if a.otel != nil {
		if err := a.otel.Shutdown(ctx); err != nil {
			fmt.Fprintln(a.stderr, "failed to shut down OTel:", err)
		}
	}
}
