package main

import (
	"database/sql"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/vpalhares/gamestock-backend/internal/httpmid"
	"github.com/vpalhares/gamestock-backend/internal/logging"
	"github.com/vpalhares/gamestock-backend/internal/modules/catalog"
	"github.com/vpalhares/gamestock-backend/internal/modules/sales"
	"github.com/vpalhares/gamestock-backend/internal/observability"
)

func main() {
	// Optional in containerized deploys where env comes from the runtime.
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger := logging.MustNew("gamestock-api", env)
	defer logger.Sync()

	// Prices and sale values serialize as JSON numbers, matching the
	// public API shape.
	decimal.MarshalJSONWithoutQuotes = true

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("ping database", zap.Error(err))
	}
	logger.Info("connected to database")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(observability.RequestLogger(logger))
	router.Use(httpmid.RateLimit(rate.NewLimiter(rate.Limit(envInt("RATE_LIMIT_RPS", 100)), envInt("RATE_LIMIT_BURST", 200))))

	// ── Catalog ─────────────────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Sales ───────────────────────────────────────────────
	salesRepo := sales.NewPostgresRepository(db)
	salesService := sales.NewService(salesRepo, logger)
	sales.NewHandler(salesService).RegisterRoutes(router)

	// ── Operational endpoints ───────────────────────────────
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// ── Start server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("gamestock api listening", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
