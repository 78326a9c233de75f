package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"biascope/adapters/fairness"
	"biascope/adapters/memory"
	"biascope/adapters/postgres"
	"biascope/adapters/tabular"
	"biascope/app"
	"biascope/internal"
	"biascope/internal/api"
	"biascope/internal/config"
	"biascope/internal/profiling"
	"biascope/ports"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	logger := internal.NewDefaultLogger()

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

	server := api.NewServer(svc, logger)
	if err := server.Start(":" + cfg.API.Port); err != nil {
		log.Fatalf("API server failed: %v", err)
	}
}

func buildStore(cfg *config.Config, logger *internal.Logger) (ports.DatasetStorePort, error) {
	if cfg.Database.URL == "" {
		logger.Info("DATABASE_URL not set, using in-memory dataset registry")
		return memory.NewCatalogStore(), nil
	}
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	return postgres.NewCatalogRepository(db)
}
