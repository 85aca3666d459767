package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segyhp/fintrack/internal/cache"
	"github.com/segyhp/fintrack/internal/config"
	"github.com/segyhp/fintrack/internal/domain"
	"github.com/segyhp/fintrack/internal/handler"
	"github.com/segyhp/fintrack/internal/importer"
	"github.com/segyhp/fintrack/internal/logger"
	"github.com/segyhp/fintrack/internal/repository"
	"github.com/segyhp/fintrack/internal/service"
	"github.com/segyhp/fintrack/pkg/response"

	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Logging)
	response.SetLogger(log)

	// Initialize database
	db, err := repository.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize cache
	backend, closeCache := cache.Open(cfg)
	defer closeCache()
	store := cache.NewStore(backend, cfg.Cache.TTL, log)

	// Initialize repositories
	creditRepo := repository.NewCreditRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	planRepo := repository.NewPlanRepository(db)
	dictionaryRepo := repository.NewDictionaryRepository(db)

	categories, err := loadCategories(dictionaryRepo, cfg.Health.Timeout)
	if err != nil {
		log.Fatalf("Failed to resolve categories: %v", err)
	}

	// Initialize services
	reportService := service.NewReportService(creditRepo, paymentRepo, planRepo, store, categories, log)
	planService := service.NewPlanService(planRepo, store, log)

	router := handler.NewRouter(
		handler.NewReportHandler(reportService),
		handler.NewPlanHandler(planService, importer.NewParser()),
		handler.NewHealthHandler(db, store, cfg.Health.Timeout),
		log,
	)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.WithFields(logrus.Fields{"addr": server.Addr, "cache": cfg.Cache.Driver}).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

func loadCategories(repo repository.DictionaryRepository, timeout time.Duration) (domain.Categories, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	entries, err := repo.List(ctx)
	if err != nil {
		return domain.Categories{}, err
	}
	return domain.NewCategories(entries)
}
