package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rvanleeuwen/investment-tracker/internal/api/handlers"
	custommiddleware "github.com/rvanleeuwen/investment-tracker/internal/api/middleware"
	"github.com/rvanleeuwen/investment-tracker/internal/config"
	"github.com/rvanleeuwen/investment-tracker/internal/service"
	"github.com/rvanleeuwen/investment-tracker/internal/session"
)

// Dependencies bundles everything the router needs.
type Dependencies struct {
	SystemService      *service.SystemService
	UserService        *service.UserService
	InvestmentService  *service.InvestmentService
	TransactionService *service.TransactionService
	SaleService        *service.SaleService
	SummaryService     *service.SummaryService
	Sessions           *session.Manager
	SessionTTL         time.Duration
	Log                zerolog.Logger
}

// NewRouter creates and configures the HTTP router. Read endpoints are
// open; mutating endpoints require a session token whose role has the
// write capability.
func NewRouter(deps Dependencies, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.NewLogger(deps.Log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	auth := custommiddleware.NewAuthenticator(deps.Sessions)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			authHandler := handlers.NewAuthHandler(deps.UserService, deps.SessionTTL)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/users", func(r chi.Router) {
			userHandler := handlers.NewUserHandler(deps.UserService)
			r.Get("/", userHandler.ListUsers)
		})

		r.Route("/investments", func(r chi.Router) {
			investmentHandler := handlers.NewInvestmentHandler(deps.InvestmentService)
			r.Get("/", investmentHandler.ListInvestments)
			r.With(auth.RequireWriter).Post("/", investmentHandler.CreateInvestment)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", investmentHandler.GetInvestment)
				r.With(auth.RequireWriter).Put("/", investmentHandler.UpdateInvestment)
				r.With(auth.RequireWriter).Delete("/", investmentHandler.DeleteInvestment)
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(deps.TransactionService)
			r.Get("/", transactionHandler.ListTransactions)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
			})
		})

		r.Route("/sales", func(r chi.Router) {
			saleHandler := handlers.NewSaleHandler(deps.SaleService)
			r.Get("/", saleHandler.ListSales)
			r.With(auth.RequireWriter).Post("/", saleHandler.CreateSale)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", saleHandler.GetSale)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			summaryHandler := handlers.NewSummaryHandler(deps.SummaryService)
			r.Get("/summary", summaryHandler.PortfolioSummary)
		})

		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(deps.SystemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})
	})

	return r
}
