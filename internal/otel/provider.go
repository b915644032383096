// Package otel exports massprops logs through the OpenTelemetry log SDK and
// hands out the meter used for run metrics.
package otel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ErrNoExporter is returned when OTel is enabled with neither a log file
// nor an OTLP endpoint.
var ErrNoExporter = errors.New("otel enabled but no log file or endpoint configured")

// Config selects the exporters for one run of the tool.
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	BatchTimeout   time.Duration
	// LogPath is the file the JSON exporter appends to. The provider opens it
	// and closes it on Shutdown.
	LogPath string
	// LogWriter replaces LogPath when set; the caller owns it.
	LogWriter io.Writer
	Endpoint  string
	Insecure  bool
}

// Provider owns the log pipeline of one run. A disabled provider is valid
// and all of its methods are no-ops.
type Provider struct {
	enabled     bool
	logProvider *sdklog.LoggerProvider
	logFile     *os.File
}

// New builds the log pipeline described by cfg.
func New(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{}, nil
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	p := &Provider{enabled: true}
	opts := []sdklog.LoggerProviderOption{sdklog.WithResource(res)}

	w := cfg.LogWriter
	if w == nil && cfg.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create OTel log dir: %w", err)
		}
		f, err := os.OpenFile(filepath.Clean(cfg.LogPath), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open OTel log file: %w", err)
		}
		p.logFile, w = f, f
	}
	if w != nil {
		proc, err := fileProcessor(w, cfg.BatchTimeout)
		if err != nil {
			p.closeFile()
			return nil, err
		}
		opts = append(opts, sdklog.WithProcessor(proc))
	}

	if cfg.Endpoint != "" {
		proc, err := otlpProcessor(cfg.Endpoint, cfg.Insecure, cfg.BatchTimeout)
		if err != nil {
			p.closeFile()
			return nil, err
		}
		opts = append(opts, sdklog.WithProcessor(proc))
	}

	if len(opts) == 1 {
		return nil, ErrNoExporter
	}
	p.logProvider = sdklog.NewLoggerProvider(opts...)
	return p, nil
}

func fileProcessor(w io.Writer, timeout time.Duration) (sdklog.Processor, error) {
	exp, err := stdoutlog.New(stdoutlog.WithWriter(w), stdoutlog.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create file log exporter: %w", err)
	}
	return sdklog.NewBatchProcessor(exp, sdklog.WithExportTimeout(timeout)), nil
}

func otlpProcessor(endpoint string, insecure bool, timeout time.Duration) (sdklog.Processor, error) {
	opts := []otlploghttp.Option{otlploghttp.WithEndpoint(endpoint)}
	if insecure {
		opts = append(opts, otlploghttp.WithInsecure())
	}
	exp, err := otlploghttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}
	return sdklog.NewBatchProcessor(exp, sdklog.WithExportTimeout(timeout)), nil
}

// LoggerProvider returns the log provider for the otelslog bridge, or nil
// when disabled.
func (p *Provider) LoggerProvider() *sdklog.LoggerProvider {
	return p.logProvider
}

// Meter returns a meter for run metrics. Disabled providers hand out a no-op
// meter; enabled ones use the global meter provider.
func (p *Provider) Meter(name string) metric.Meter {
	if !p.enabled {
		return noop.Meter{}
	}
	return otel.GetMeterProvider().Meter(name)
}

// Flush exports pending log records.
func (p *Provider) Flush(ctx context.Context) error {
	if p.logProvider == nil {
		return nil
	}
	if err := p.logProvider.ForceFlush(ctx); err != nil {
		return fmt.Errorf("log flush failed: %w", err)
	}
	return nil
}

// Shutdown flushes and stops the log pipeline, then closes the log file it
// opened. Call it once before the tool exits.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.logProvider != nil {
		if err := p.logProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("log shutdown failed: %w", err))
		}
	}
	if err := p.closeFile(); err != nil {
		errs = append(errs, fmt.Errorf("close OTel log file: %w", err))
	}
	return errors.Join(errs...)
}

func (p *Provider) closeFile() error {
	if p.logFile == nil {
		return nil
	}
	err := p.logFile.Close()
	p.logFile = nil
	return err
}

// Enabled reports whether the log pipeline is running.
func (p *Provider) Enabled() bool {
	return p.enabled
}
