package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/atelierhq/atelier/internal/config"
	"github.com/atelierhq/atelier/internal/database"
)

func main() {
	var (
		path = flag.String("path", "migrations", "directory holding migration files")
		down = flag.Bool("down", false, "roll back all migrations instead of applying them")
	)

	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpen:     cfg.DB.MaxOpenConns,
		MaxIdle:     cfg.DB.MaxIdleConns,
		MaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db, *path)
	if err != nil {
		slog.Error("failed to create migrator", "error", err)
		os.Exit(1)
	}
	defer migrator.Close()

	if *down {
		err = migrator.Down()
	} else {
		err = migrator.Up()
	}

	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}
