package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gariflow/backend-gari/internal/booking"
	"github.com/gariflow/backend-gari/internal/config"
	"github.com/gariflow/backend-gari/internal/events"
	"github.com/gariflow/backend-gari/internal/fleet"
	"github.com/gariflow/backend-gari/internal/health"
	"github.com/gariflow/backend-gari/internal/obs"
	"github.com/gariflow/backend-gari/internal/ratelimit"
	"github.com/gariflow/backend-gari/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "gari")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)
	// Pre-initialise the per-topic series so they scrape as zero before the
	// first event.
	for _, topic := range events.DefaultTopics() {
		obs.ReservationEventsTotal.WithLabelValues(topic)
	}

	tracingEnabled := envBool("OBS_ENABLE_TRACING", false)
	if tracingEnabled {
		sampling := envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0)
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "gari-api",
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			SamplingRatio: sampling,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	// Separate random sources: the registry and the code generator run behind
	// different locks, and math/rand sources are not safe to share.
	fleetRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	codeRand := rand.New(rand.NewSource(time.Now().UnixNano() + 1))

	registry := fleet.NewRegistry(fleetRand)
	codes := booking.NewCodeGenerator(booking.SystemClock{}, codeRand)

	var ledger *booking.Ledger
	bus := events.NewBus(cfg.EventHistoryLimit,
		events.LogNotifier{Logger: logger},
		events.MetricsNotifier{
			Revenue: revenueProxy{ledger: &ledger},
			Fleet:   func() int { return registry.Stats().Total },
		},
	)
	ledger = booking.NewLedger(registry, codes, booking.SystemClock{}, bus)

	if cfg.SeedDemoData {
		seed.Demo(registry, ledger)
		logger.Info().
			Int("vehicles", registry.Stats().Total).
			Float64("revenue", ledger.TotalRevenue()).
			Msg("demo data seeded")
	}
	obs.FleetVehicles.Set(float64(registry.Stats().Total))
	obs.SystemRevenue.Set(ledger.TotalRevenue())

	validate := validator.New()
	fleetHandler := &fleet.Handler{Registry: registry, Revenue: ledger, Validate: validate, Bus: bus}
	bookingHandler := &booking.Handler{Ledger: ledger, Validate: validate}
	eventsHandler := &events.Handler{Bus: bus}
	healthHandler := health.Handler{Checker: readinessChecker{registry: registry, ledger: ledger}}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	limit := ratelimit.New(cfg.RateLimitMax, cfg.RateLimitWindow)
	limit.OnError = func(err error) {
		logger.Error().Err(err).Msg("rate limiter")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(cfg),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Use(limit.Middleware)

		v.Get("/vehicles", fleetHandler.List)
		v.Get("/vehicles/available", fleetHandler.ListAvailable)
		v.Get("/vehicles/{id}", fleetHandler.Get)
		v.Post("/vehicles", fleetHandler.Add)

		v.Get("/reservations", bookingHandler.List)
		v.Post("/reservations", bookingHandler.Create)
		v.Post("/reservations/{code}/confirm", bookingHandler.Confirm)
		v.Delete("/reservations/{code}", bookingHandler.Cancel)

		v.Get("/stats", fleetHandler.Stats)
		v.Get("/events", eventsHandler.Recent)
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	logger.Info().Str("addr", srv.Addr).Str("currency", cfg.CurrencyCode).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
}

// revenueProxy lets the bus observe the ledger even though the ledger is
// constructed after the bus (they reference each other).
type revenueProxy struct {
	ledger **booking.Ledger
}

func (p revenueProxy) TotalRevenue() float64 {
	if p.ledger == nil || *p.ledger == nil {
		return 0
	}
	return (*p.ledger).TotalRevenue()
}

type readinessChecker struct {
	registry *fleet.Registry
	ledger   *booking.Ledger
}

func (c readinessChecker) CheckFleet() error {
	if c.registry == nil {
		return errors.New("fleet registry not configured")
	}
	return nil
}

func (c readinessChecker) CheckLedger() error {
	if c.ledger == nil {
		return errors.New("reservation ledger not configured")
	}
	return nil
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return parsed
		}
	}
	return fallback
}
