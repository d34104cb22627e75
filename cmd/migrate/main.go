package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/SkShizan/clg-project/internal/config"
	"github.com/SkShizan/clg-project/internal/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal("Error applying migrations: ", err)
	}
	slog.Info("Schema up to date", "database", cfg.Database.Name)
}
