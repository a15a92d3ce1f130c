package observability

import (
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/config"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/observability/logger"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/observability/metrics"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/observability/tracing"
	"go.opentelemetry.io/otel"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const serviceName = "makeinspires-dashboard"

// Module wires the logger, tracer provider, and metric instruments.
var Module = fx.Module("observability",
	fx.Provide(func(cfg config.Config) (*zap.Logger, error) {
		return logger.New(cfg.Environment)
	}),
	fx.Provide(func(cfg config.Config) tracing.Config {
		return tracing.Config{
			Enabled:          cfg.Tracing.Enabled,
			ServiceName:      serviceName,
			Environment:      cfg.Environment,
			ExporterEndpoint: cfg.Tracing.ExporterEndpoint,
			ExporterProtocol: cfg.Tracing.ExporterProtocol,
			SamplingRatio:    cfg.Tracing.SamplingRatio,
		}
	}),
	fx.Provide(func(cfg config.Config) metrics.Config {
		return metrics.Config{
			ServiceName: serviceName,
			Environment: cfg.Environment,
		}
	}),
	fx.Provide(func(cfg metrics.Config) (*metrics.HTTPMetrics, error) {
		return metrics.NewHTTPMetrics(cfg, otel.GetMeterProvider())
	}),
	fx.Provide(func(cfg metrics.Config) *metrics.PipelineMetrics {
		return metrics.PipelineWithConfig(cfg)
	}),
	fx.Invoke(tracing.NewProvider),
)
