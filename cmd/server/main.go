package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rvanleeuwen/investment-tracker/internal/api"
	"github.com/rvanleeuwen/investment-tracker/internal/config"
	"github.com/rvanleeuwen/investment-tracker/internal/database"
	"github.com/rvanleeuwen/investment-tracker/internal/logger"
	"github.com/rvanleeuwen/investment-tracker/internal/repository"
	"github.com/rvanleeuwen/investment-tracker/internal/scheduler"
	"github.com/rvanleeuwen/investment-tracker/internal/service"
	"github.com/rvanleeuwen/investment-tracker/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{})
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})

	// Open database connection and apply pending migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	log.Info().Str("path", cfg.Database.Path).Msg("connected to database")

	// Session manager; an ephemeral key means sessions do not survive restarts
	if cfg.Session.Key == "" {
		log.Warn().Msg("SESSION_KEY not set, generating ephemeral key; sessions will not survive restarts")
	}
	sessions, err := session.NewManager(cfg.Session.Key, cfg.Session.TTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session manager")
	}

	// Create repositories
	userRepo := repository.NewUserRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	userService := service.NewUserService(userRepo, sessions)
	investmentService := service.NewInvestmentService(db, investmentRepo, transactionRepo)
	transactionService := service.NewTransactionService(transactionRepo)
	saleService := service.NewSaleService(db, saleRepo, investmentRepo, transactionRepo)
	summaryService := service.NewSummaryService(investmentRepo, saleRepo)

	// Seed the store when empty
	seedService := service.NewSeedService(userRepo, investmentService, cfg.Seed.AdminPassword, log)
	if err := seedService.EnsureSeedData(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	// Nightly store maintenance
	sched := scheduler.New(log)
	if err := sched.AddJob("0 3 * * *", scheduler.NewIntegrityJob(db)); err != nil {
		log.Fatal().Err(err).Msg("failed to register integrity job")
	}
	sched.Start()
	defer sched.Stop()

	// Create router
	router := api.NewRouter(api.Dependencies{
		SystemService:      systemService,
		UserService:        userService,
		InvestmentService:  investmentService,
		TransactionService: transactionService,
		SaleService:        saleService,
		SummaryService:     summaryService,
		Sessions:           sessions,
		SessionTTL:         cfg.Session.TTL,
		Log:                log,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
