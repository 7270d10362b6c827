package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	apiConfig "trade_planning/pkg/api/config"
	"trade_planning/pkg/api/httpx"
	"trade_planning/pkg/api/portfolio"
	"trade_planning/pkg/api/pricing"
	"trade_planning/pkg/api/scenario"
	"trade_planning/pkg/api/tam"
	"trade_planning/pkg/core/assumption"
	"trade_planning/pkg/core/catalog"
	"trade_planning/pkg/core/config"
	"trade_planning/pkg/core/geo"
	"trade_planning/pkg/core/observability"
	"trade_planning/pkg/core/projection"
	coreScenario "trade_planning/pkg/core/scenario"
	"trade_planning/pkg/core/store"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	set := assumption.Defaults()
	if cfg.AssumptionsPath != "" {
		loaded, err := assumption.Load(cfg.AssumptionsPath)
		if err != nil {
			return err
		}
		set = loaded
		logger.Info("assumptions loaded", zap.String("path", cfg.AssumptionsPath))
	}

	cat, source, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("catalog ready",
		zap.String("source", source),
		zap.Int("products", len(cat.Products())),
		zap.Int("retailers", len(cat.Retailers())),
		zap.Int("stores", len(cat.Stores())))

	// Session-scoped state: scenarios and the TAM selection live until shutdown
	repo := coreScenario.NewMemoryRepository()
	analyzer := geo.NewAnalyzer(cat.Stores, set.TAMRadiusMiles, set.TAMUnitPrice)

	engine := projection.NewEngine(cat)
	engine.Margin = set.MarginCalculator()
	engine.DefaultVelocity = set.DefaultVelocity

	router := newRouter(routerDeps{
		config:    apiConfig.NewHandler(set, source),
		pricing:   pricing.NewHandler(set, cat, logger),
		portfolio: portfolio.NewHandler(cat, logger),
		scenario:  scenario.NewHandler(engine, repo, cat, logger),
		tam:       tam.NewHandler(analyzer, cat, logger),
		logger:    logger,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loadCatalog picks the catalog source: a file, Postgres, or the built-in
// reference data.
func loadCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*catalog.Catalog, string, error) {
	switch {
	case cfg.CatalogPath != "":
		cat, err := catalog.LoadFile(cfg.CatalogPath)
		return cat, "file:" + cfg.CatalogPath, err

	case cfg.DatabaseURL != "":
		pool, err := store.InitDB(ctx, cfg.DatabaseURL, cfg.DBConnectTimeout, logger)
		if err != nil {
			return nil, "", err
		}
		// The catalog is read once; the pool is not needed afterwards
		defer store.Close()

		d, err := store.NewCatalogRepo(pool).Load(ctx)
		if err != nil {
			return nil, "", err
		}
		return catalog.New(d), "postgres", nil

	default:
		return catalog.Default(), "builtin", nil
	}
}

type routerDeps struct {
	config    *apiConfig.Handler
	pricing   *pricing.Handler
	portfolio *portfolio.Handler
	scenario  *scenario.Handler
	tam       *tam.Handler
	logger    *zap.Logger
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httpx.RequestLogger(d.logger))
	r.Use(httpx.CORS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", d.config.HandleHealth)
		r.Get("/config", d.config.HandleConfig)

		r.Post("/royalty", d.pricing.HandleRoyalty)
		r.Post("/royalty/rollup", d.pricing.HandleRoyaltyRollup)
		r.Post("/margin", d.pricing.HandleMargin)

		r.Get("/catalog/products", d.portfolio.HandleProducts)
		r.Get("/catalog/retailers", d.portfolio.HandleRetailers)
		r.Get("/catalog/states", d.portfolio.HandleStates)
		r.Get("/stores", d.portfolio.HandleStores)
		r.Patch("/stores/{id}/sku-count", d.portfolio.HandleUpdateSkuCount)
		r.Get("/stores/{id}/financials", d.portfolio.HandleStoreFinancials)
		r.Get("/portfolio/financials", d.portfolio.HandlePortfolio)

		r.Post("/scenarios/project", d.scenario.HandleProject)
		r.Post("/scenarios", d.scenario.HandleSave)
		r.Get("/scenarios", d.scenario.HandleList)
		r.Get("/scenarios/{id}", d.scenario.HandleGet)
		r.Get("/scenarios/{id}/brief", d.scenario.HandleBrief)

		r.Post("/tam", d.tam.HandleSelect)
		r.Get("/tam/latest", d.tam.HandleLatest)
	})
	return r
}
