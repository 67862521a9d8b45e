package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ErrEmptyJWTSecret is returned when the router is created without a token secret.
var ErrEmptyJWTSecret = errors.New("jwt secret must not be empty")

type api struct {
	handlers    Handlers
	jwtSecret   []byte
	rateLimiter RateLimiter
	registerer  prometheus.Registerer
	gatherer    prometheus.Gatherer
	logger      *slog.Logger
	now         func() time.Time
	newID       func() (uuid.UUID, error)
}

// Option defines a functional option for configuring the router.
type Option func(*api)

// WithRateLimiter limits requests per client IP. Without it no limit applies.
func WithRateLimiter(limiter RateLimiter) Option {
	return func(a *api) {
		a.rateLimiter = limiter
	}
}

// WithPrometheus registers the HTTP metrics with registerer and serves gatherer at /metrics.
// Without it a private registry is used.
func WithPrometheus(registerer prometheus.Registerer, gatherer prometheus.Gatherer) Option {
	return func(a *api) {
		a.registerer = registerer
		a.gatherer = gatherer
	}
}

// WithLogger sets the logger for request logs and unexpected errors.
func WithLogger(logger *slog.Logger) Option {
	return func(a *api) {
		a.logger = logger
	}
}

// WithClock sets the source of creation and update timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *api) {
		a.now = now
	}
}

// WithIDGenerator sets the source of IDs for new books and orders.
func WithIDGenerator(newID func() (uuid.UUID, error)) Option {
	return func(a *api) {
		a.newID = newID
	}
}

// NewRouter creates the gin engine serving the bookstore API.
func NewRouter(handlers Handlers, jwtSecret []byte, opts ...Option) (*gin.Engine, error) {
	if len(jwtSecret) == 0 {
		return nil, ErrEmptyJWTSecret
	}

	registry := prometheus.NewRegistry()

	a := &api{
		handlers:   handlers,
		jwtSecret:  jwtSecret,
		registerer: registry,
		gatherer:   registry,
		logger:     slog.Default(),
		now:        time.Now,
		newID:      uuid.NewV7,
	}

	for _, opt := range opts {
		opt(a)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(a.logger), newHTTPMetrics(a.registerer).middleware())

	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, "route not found")
	})

	router.GET("/healthz", func(c *gin.Context) {
		writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.gatherer, promhttp.HandlerOpts{})))

	public := router.Group("/api")
	if a.rateLimiter != nil {
		public.Use(rateLimit(a.rateLimiter))
	}

	public.GET("/books", a.listBooks)

	protected := public.Group("", authenticate(a.jwtSecret))

	protected.POST("/users", a.registerUser)

	protected.POST("/books", a.createBook)
	protected.GET("/books/:id", a.retrieveBook)
	protected.PUT("/books/:id", a.updateBook)

	protected.POST("/orders", a.createOrder)
	protected.GET("/orders/:id", a.retrieveOrder)

	protected.GET("/profile", a.getProfile)
	protected.PUT("/profile", a.updateProfile)
	protected.GET("/profile/books", a.listUserBooks)
	protected.GET("/profile/orders", a.listUserOrders)
	protected.DELETE("/profile/orders", a.clearUserOrders)

	return router, nil
}
