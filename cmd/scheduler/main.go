package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segyhp/fintrack/internal/cache"
	"github.com/segyhp/fintrack/internal/config"
	"github.com/segyhp/fintrack/internal/domain"
	"github.com/segyhp/fintrack/internal/logger"
	"github.com/segyhp/fintrack/internal/repository"
	"github.com/segyhp/fintrack/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// warmTimeout bounds one run of the warm-up job.
const warmTimeout = 5 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Logging)
	log.Info("Starting report scheduler...")

	db, err := repository.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if cfg.Cache.Driver == config.CacheDriverMemory {
		log.Warn("CACHE_DRIVER=memory keeps a cache private to this process; warming it has no effect on the server")
	}
	backend, closeCache := cache.Open(cfg)
	defer closeCache()
	store := cache.NewStore(backend, cfg.Cache.TTL, log)

	dictionaryRepo := repository.NewDictionaryRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Health.Timeout)
	entries, err := dictionaryRepo.List(ctx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	categories, err := domain.NewCategories(entries)
	if err != nil {
		log.Fatalf("Failed to resolve categories: %v", err)
	}

	reports := service.NewReportService(
		repository.NewCreditRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewPlanRepository(db),
		store,
		categories,
		log,
	)
	warmer := service.NewCacheWarmer(reports, store, cfg.SchedulerLocation(), log)

	// Initialize cron scheduler
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.SchedulerLocation()),
		cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(log))),
	)

	// Schedule tasks
	if err := setupCronJobs(c, cfg, warmer, log); err != nil {
		log.Fatalf("Failed to schedule jobs: %v", err)
	}

	// Start the scheduler
	c.Start()
	log.Info("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Info("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, warmer *service.CacheWarmer, log logrus.FieldLogger) error {
	// Daily job to drop ledgers and prime today's reports
	_, err := c.AddFunc(cfg.Scheduler.WarmSpec, func() {
		log.Info("Running daily cache warm-up job...")

		ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
		defer cancel()

		if err := warmer.Run(ctx); err != nil {
			log.WithError(err).Error("Cache warm-up job failed")
		}
	})
	if err != nil {
		return err
	}

	log.WithField("spec", cfg.Scheduler.WarmSpec).Info("Cron jobs scheduled successfully")
	return nil
}
