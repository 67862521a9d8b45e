package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/shell"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/shell/config"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/shell/observable"
	"github.com/AntonStoeckl/bookstore/bookstore/transport/httpapi"
	"github.com/AntonStoeckl/bookstore/store/oteladapters"
	"github.com/AntonStoeckl/bookstore/store/postgresengine"
	"github.com/AntonStoeckl/bookstore/store/promadapters"
)

const (
	instrumentationName = "github.com/AntonStoeckl/bookstore"
	metricsNamespace    = "bookstore"
	otelShutdownTimeout = 5 * time.Second
)

// observability holds the collectors shared by the store and the handler wrappers.
// With OpenTelemetry disabled, metrics go to Prometheus and there is no tracing.
type observability struct {
	metrics          shell.MetricsCollector
	tracing          shell.TracingCollector
	contextualLogger shell.ContextualLogger
}

func newObservability(
	ctx context.Context,
	cfg config.AppConfig,
	logger *slog.Logger,
	registry *prometheus.Registry,
) (observability, func(), error) {
	if !cfg.OTelEnabled {
		return observability{
			metrics:          promadapters.NewMetricsCollector(registry, metricsNamespace),
			contextualLogger: logger,
		}, func() {}, nil
	}

	providers, err := config.NewObservabilityProviders(ctx, cfg.OTelCollectorEndpoint)
	if err != nil {
		return observability{}, nil, err
	}

	shutdown := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()

		if shutdownErr := providers.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Warn("opentelemetry shutdown failed", slog.String("error", shutdownErr.Error()))
		}
	}

	logger.Info("opentelemetry enabled", slog.String("collector", cfg.OTelCollectorEndpoint))

	return observability{
		metrics:          oteladapters.NewMetricsCollector(otel.Meter(instrumentationName)),
		tracing:          oteladapters.NewTracingCollector(otel.Tracer(instrumentationName)),
		contextualLogger: oteladapters.NewSlogBridgeLoggerWithHandler(logger.Handler()),
	}, shutdown, nil
}

func (o observability) storeOptions() []postgresengine.Option {
	options := []postgresengine.Option{
		postgresengine.WithMetrics(o.metrics),
		postgresengine.WithContextualLogger(o.contextualLogger),
	}

	if o.tracing != nil {
		options = append(options, postgresengine.WithTracing(o.tracing))
	}

	return options
}

func (o observability) wrapHandlers(h httpapi.Handlers) (httpapi.Handlers, error) {
	var (
		wrapped httpapi.Handlers
		err     error
	)

	if wrapped.RegisterUser, err = wrapCommand(o, h.RegisterUser); err != nil {
		return httpapi.Handlers{}, err
	}

	if wrapped.UpdateProfile, err = wrapCommand(o, h.UpdateProfile); err != nil {
		return httpapi.Handlers{}, err
	}

	if wrapped.CreateBook, err = wrapCommand(o, h.CreateBook); err != nil {
		return httpapi.Handlers{}, err
	}

	if wrapped.UpdateBook, err = wrapCommand(o, h.UpdateBook); err != nil {
		return httpapi.Handlers{}, err
	}

	if wrapped.CreateOrder, err = wrapCommand(o, h.CreateOrder); err != nil {
		return httpapi.Handlers{}, err
	}

	if wrapped.ClearUserOrders, err = wrapCommand(o, h.ClearUserOrders); err != nil {
		return httpapi.Handlers{}, err
	}

	if wrapped.GetProfile, err = wrapQuery(o, h.GetProfile); err != nil {
		return httpapi.Handlers{}, err
	}

	if wrapped.ListBooks, err = wrapQuery(o, h.ListBooks); err != nil {
		return httpapi.Handlers{}, err
	}

	if wrapped.RetrieveBook, err = wrapQuery(o, h.RetrieveBook); err != nil {
		return httpapi.Handlers{}, err
	}

	if wrapped.ListUserBooks, err = wrapQuery(o, h.ListUserBooks); err != nil {
		return httpapi.Handlers{}, err
	}

	if wrapped.RetrieveOrder, err = wrapQuery(o, h.RetrieveOrder); err != nil {
		return httpapi.Handlers{}, err
	}

	if wrapped.ListUserOrders, err = wrapQuery(o, h.ListUserOrders); err != nil {
		return httpapi.Handlers{}, err
	}

	return wrapped, nil
}

func wrapCommand[C shell.Command](o observability, h shell.CoreCommandHandler[C]) (shell.CoreCommandHandler[C], error) {
	options := []observable.CommandOption[C]{
		observable.WithCommandMetrics[C](o.metrics),
		observable.WithCommandContextualLogging[C](o.contextualLogger),
	}

	if o.tracing != nil {
		options = append(options, observable.WithCommandTracing[C](o.tracing))
	}

	return observable.NewCommandWrapper(h, options...)
}

func wrapQuery[Q shell.Query, R any](o observability, h shell.QueryHandler[Q, R]) (shell.QueryHandler[Q, R], error) {
	options := []observable.QueryOption[Q, R]{
		observable.WithQueryMetrics[Q, R](o.metrics),
		observable.WithQueryContextualLogging[Q, R](o.contextualLogger),
	}

	if o.tracing != nil {
		options = append(options, observable.WithQueryTracing[Q, R](o.tracing))
	}

	return observable.NewQueryWrapper(h, options...)
}
