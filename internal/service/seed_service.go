package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rvanleeuwen/investment-tracker/internal/api/request"
	"github.com/rvanleeuwen/investment-tracker/internal/model"
	"github.com/rvanleeuwen/investment-tracker/internal/repository"
)

// SeedService installs the bootstrap fixture on an empty store: the two
// participants (admin with the configured shared password, viewer without)
// and three sample investments. Investments go through the investment
// service so each is immediately followed by its synthesized Purchase
// transaction. Seeding is conditional on the user table being empty and is
// a no-op otherwise.
type SeedService struct {
	userRepo          *repository.UserRepository
	investmentService *InvestmentService
	adminPassword     string
	log               zerolog.Logger
}

// NewSeedService creates a new SeedService with the provided dependencies.
func NewSeedService(
	userRepo *repository.UserRepository,
	investmentService *InvestmentService,
	adminPassword string,
	log zerolog.Logger,
) *SeedService {
	return &SeedService{
		userRepo:          userRepo,
		investmentService: investmentService,
		adminPassword:     adminPassword,
		log:               log.With().Str("component", "seed").Logger(),
	}
}

// EnsureSeedData seeds the store if and only if it is empty.
func (s *SeedService) EnsureSeedData(ctx context.Context) error {
	count, err := s.userRepo.CountUsers()
	if err != nil {
		return fmt.Errorf("failed to check for existing users: %w", err)
	}
	if count > 0 {
		s.log.Debug().Int("users", count).Msg("store already seeded, skipping")
		return nil
	}

	admin := model.User{
		Username:    "alle",
		DisplayName: "Alle",
		Role:        model.RoleAdmin,
		Password:    &s.adminPassword,
	}
	if err := s.userRepo.InsertUser(ctx, &admin); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	viewer := model.User{
		Username:    "ali",
		DisplayName: "Ali",
		Role:        model.RoleViewer,
	}
	if err := s.userRepo.InsertUser(ctx, &viewer); err != nil {
		return fmt.Errorf("failed to seed viewer user: %w", err)
	}

	samples := []request.CreateInvestmentRequest{
		{
			Name:           "Global Equity ETF",
			Symbol:         "VWCE",
			Type:           "ETF",
			InitialValue:   decimal.NewFromInt(10000),
			AllePercentage: 60,
			AliPercentage:  40,
			PurchaseDate:   "2023-01-15",
			CreatedBy:      admin.ID,
		},
		{
			Name:           "Tech Growth Stock",
			Symbol:         "AAPL",
			Type:           "Stock",
			InitialValue:   decimal.NewFromInt(5000),
			AllePercentage: 50,
			AliPercentage:  50,
			PurchaseDate:   "2023-06-01",
			CreatedBy:      admin.ID,
		},
		{
			Name:           "Euro Government Bonds",
			Type:           "Bond",
			InitialValue:   decimal.NewFromInt(7500),
			AllePercentage: 70,
			AliPercentage:  30,
			PurchaseDate:   "2024-02-20",
			CreatedBy:      admin.ID,
		},
	}

	for _, sample := range samples {
		if _, err := s.investmentService.CreateInvestment(ctx, sample); err != nil {
			return fmt.Errorf("failed to seed investment %q: %w", sample.Name, err)
		}
	}

	s.log.Info().
		Int("users", 2).
		Int("investments", len(samples)).
		Msg("seeded empty store with bootstrap data")

	return nil
}
