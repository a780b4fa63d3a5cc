package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-clinic-visits/docs"
	"pet-clinic-visits/internal/adapters/storage/cached"
	mem "pet-clinic-visits/internal/adapters/storage/memory"
	pg "pet-clinic-visits/internal/adapters/storage/postgres"
	"pet-clinic-visits/internal/domain/visits"
	"pet-clinic-visits/internal/middleware"
	"pet-clinic-visits/internal/platform/logger"
	"pet-clinic-visits/internal/platform/validation"
	"pet-clinic-visits/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: cache read-through delante del store.
	Cache    cached.Cache
	CacheTTL time.Duration

	Logger logger.Logger

	// RateLimitRPS <= 0 desactiva el limiter.
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	// Registry propio: varios routers (tests) no chocan en el default.
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{validation.HeaderName, "Content-Type", "Location"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestLogger(log, metrics))
	r.Use(middleware.Recover(log))
	r.Use(middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst, log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var visitRepo visits.Repository
	if opts.DB != nil {
		visitRepo = pg.NewVisitsRepo(opts.DB)
	} else {
		visitRepo = mem.NewVisitRepo()
	}
	if opts.Cache != nil {
		visitRepo = cached.NewVisitRepo(visitRepo, opts.Cache, opts.CacheTTL, log)
	}

	visitsSvc := visits.NewService(visitRepo, log)
	visits.RegisterRoutes(r, visitsSvc, log)

	return r
}
