package main

import (
	"context"
	"flag"
	"os"

	"github.com/segyhp/fintrack/internal/cache"
	"github.com/segyhp/fintrack/internal/config"
	"github.com/segyhp/fintrack/internal/loader"
	"github.com/segyhp/fintrack/internal/logger"
	"github.com/segyhp/fintrack/internal/repository"
	"github.com/segyhp/fintrack/internal/service"

	"github.com/sirupsen/logrus"
)

func main() {
	dir := flag.String("dir", ".", "directory holding users.csv, dictionary.csv, credits.csv, plans.csv and payments.csv")
	schema := flag.String("schema", "scripts/init.sql", "schema file applied before loading, empty to skip")
	reset := flag.Bool("reset", true, "truncate every table before loading")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Logging)
	ctx := context.Background()

	db, err := repository.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if *schema != "" {
		ddl, err := os.ReadFile(*schema)
		if err != nil {
			log.Fatalf("Failed to read schema: %v", err)
		}
		if _, err := db.ExecContext(ctx, string(ddl)); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
		log.WithField("schema", *schema).Info("Schema applied")
	}

	l := loader.New(db, log)
	if *reset {
		if err := l.Reset(ctx); err != nil {
			log.Fatal(err)
		}
	}

	if err := l.LoadDir(ctx, *dir); err != nil {
		log.Fatal(err)
	}

	// Facts changed underneath every cached report.
	backend, closeCache := cache.Open(cfg)
	defer closeCache()
	store := cache.NewStore(backend, cfg.Cache.TTL, log)
	service.FlushReports(ctx, store)

	log.WithField("dir", *dir).Info("Load complete")
}
