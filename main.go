package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"biascope/adapters/fairness"
	"biascope/adapters/memory"
	"biascope/adapters/postgres"
	"biascope/adapters/tabular"
	"biascope/app"
	"biascope/internal"
	"biascope/internal/config"
	"biascope/internal/profiling"
	"biascope/ports"
	"biascope/ui"
)

func main() {
	// .env is optional; environment variables win
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	logger := internal.NewDefaultLogger()

	gin.SetMode(cfg.Server.GinMode)

	store, err := buildStore(cfg, logger)
	if err != nil {
		log.Fatalf("Store initialization failed: %v", err)
	}

	svc := app.NewAnalysisService(
		store,
		tabular.NewReader(logger),
		fairness.NewAnalyzer(),
		profiling.NewProfiler(4),
		logger,
	)

	server, err := ui.NewServer(svc, cfg.Upload, logger)
	if err != nil {
		log.Fatalf("Server initialization failed: %v", err)
	}
	if err := server.Start(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// buildStore picks the postgres registry when DATABASE_URL is set,
// otherwise falls back to the in-memory registry.
func buildStore(cfg *config.Config, logger *internal.Logger) (ports.DatasetStorePort, error) {
	if cfg.Database.URL == "" {
		logger.Info("DATABASE_URL not set, using in-memory dataset registry")
		return memory.NewCatalogStore(), nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	logger.Info("using postgres dataset registry")
	return postgres.NewCatalogRepository(db)
}
