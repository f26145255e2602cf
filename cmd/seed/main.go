package main

import (
	"context"
	"fmt"
	"os"

	"go-portfolio-app/internal/config"
	"go-portfolio-app/internal/data"
	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/seed"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg.Log.Service = "portfolio-seed"
	log := logger.New(cfg.Log, os.Stderr)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error(err, "Seeding failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("no database configured: set DATABASE_URL")
	}
	db, err := data.NewDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := data.ApplyMigrations(db, cfg.DB.Driver); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	loader, err := seed.NewLoader(db, cfg.DB.Driver, log)
	if err != nil {
		return err
	}
	counts, err := loader.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Projects: %d\n", counts.Projects)
	fmt.Printf("Blog posts: %d\n", counts.BlogPosts)
	return nil
}
