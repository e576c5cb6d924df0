package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rvanleeuwen/investment-tracker/internal/model"
)

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	// Simple creation with defaults (admin with password)
//	user := testutil.NewUser().Build(t, db)
//
//	// Customized user
//	user := testutil.NewUser().
//	    WithUsername("ali").
//	    AsViewer().
//	    Build(t, db)
type UserBuilder struct {
	ID          string
	Username    string
	DisplayName string
	Role        model.Role
	Password    *string
}

// NewUser creates a UserBuilder with sensible defaults: an admin with
// password "secret".
func NewUser() *UserBuilder {
	password := "secret"
	return &UserBuilder{
		ID:          MakeID(),
		Username:    MakeUsername("user"),
		DisplayName: "Test User",
		Role:        model.RoleAdmin,
		Password:    &password,
	}
}

// WithID sets a custom ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.ID = id
	return b
}

// WithUsername sets a custom username.
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.Username = username
	return b
}

// WithDisplayName sets a custom display name.
func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.DisplayName = name
	return b
}

// WithRole sets the role.
func (b *UserBuilder) WithRole(role model.Role) *UserBuilder {
	b.Role = role
	return b
}

// WithPassword sets the password.
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.Password = &password
	return b
}

// AsViewer marks the user as a passwordless viewer.
func (b *UserBuilder) AsViewer() *UserBuilder {
	b.Role = model.RoleViewer
	b.Password = nil
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	createdAt := time.Now().UTC()

	query := `
		INSERT INTO user (id, username, display_name, role, password, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Username, b.DisplayName, string(b.Role), b.Password, createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return model.User{
		ID:          b.ID,
		Username:    b.Username,
		DisplayName: b.DisplayName,
		Role:        b.Role,
		Password:    b.Password,
		CreatedAt:   createdAt,
	}
}

// CreateAdmin creates an admin user with the given username and password.
//
// Example usage:
//
//	admin := testutil.CreateAdmin(t, db, "alle", "hunter2")
func CreateAdmin(t *testing.T, db *sql.DB, username, password string) model.User {
	t.Helper()
	return NewUser().WithUsername(username).WithPassword(password).Build(t, db)
}

// CreateViewer creates a passwordless viewer user with the given username.
//
// Example usage:
//
//	viewer := testutil.CreateViewer(t, db, "ali")
func CreateViewer(t *testing.T, db *sql.DB, username string) model.User {
	t.Helper()
	return NewUser().WithUsername(username).AsViewer().Build(t, db)
}

// InvestmentBuilder provides a fluent interface for creating test investments.
//
// Example usage:
//
//	investment := testutil.NewInvestment().
//	    WithName("Global Equity ETF").
//	    WithCurrentValue(decimal.NewFromInt(800)).
//	    WithPercentages(60, 40).
//	    Build(t, db)
type InvestmentBuilder struct {
	ID             string
	Name           string
	Symbol         string
	Type           string
	InitialValue   decimal.Decimal
	CurrentValue   decimal.Decimal
	AllePercentage int
	AliPercentage  int
	PurchaseDate   model.Date
	CreatedBy      string
}

// NewInvestment creates an InvestmentBuilder with sensible defaults:
// an ETF worth 1000 split 50/50.
func NewInvestment() *InvestmentBuilder {
	value := decimal.NewFromInt(1000)
	return &InvestmentBuilder{
		ID:             MakeID(),
		Name:           MakeInvestmentName("Test Investment"),
		Symbol:         "TEST",
		Type:           "ETF",
		InitialValue:   value,
		CurrentValue:   value,
		AllePercentage: 50,
		AliPercentage:  50,
		PurchaseDate:   model.NewDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
		CreatedBy:      MakeID(),
	}
}

// WithID sets a custom ID.
func (b *InvestmentBuilder) WithID(id string) *InvestmentBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *InvestmentBuilder) WithName(name string) *InvestmentBuilder {
	b.Name = name
	return b
}

// WithSymbol sets a custom symbol.
func (b *InvestmentBuilder) WithSymbol(symbol string) *InvestmentBuilder {
	b.Symbol = symbol
	return b
}

// WithType sets the investment type.
func (b *InvestmentBuilder) WithType(investmentType string) *InvestmentBuilder {
	b.Type = investmentType
	return b
}

// WithInitialValue sets the initial value. The current value follows unless
// WithCurrentValue is called afterwards.
func (b *InvestmentBuilder) WithInitialValue(value decimal.Decimal) *InvestmentBuilder {
	b.InitialValue = value
	b.CurrentValue = value
	return b
}

// WithCurrentValue sets the current value independently of the initial value.
func (b *InvestmentBuilder) WithCurrentValue(value decimal.Decimal) *InvestmentBuilder {
	b.CurrentValue = value
	return b
}

// WithPercentages sets the ownership split.
func (b *InvestmentBuilder) WithPercentages(alle, ali int) *InvestmentBuilder {
	b.AllePercentage = alle
	b.AliPercentage = ali
	return b
}

// WithPurchaseDate sets the purchase date.
func (b *InvestmentBuilder) WithPurchaseDate(date model.Date) *InvestmentBuilder {
	b.PurchaseDate = date
	return b
}

// WithCreatedBy sets the creating user's ID.
func (b *InvestmentBuilder) WithCreatedBy(userID string) *InvestmentBuilder {
	b.CreatedBy = userID
	return b
}

// Build creates the investment in the database and returns it.
func (b *InvestmentBuilder) Build(t *testing.T, db *sql.DB) model.Investment {
	t.Helper()

	createdAt := time.Now().UTC()

	query := `
		INSERT INTO investment (id, name, symbol, type, initial_value, current_value,
		                        alle_percentage, ali_percentage, purchase_date, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.Name, b.Symbol, b.Type,
		b.InitialValue.String(), b.CurrentValue.String(),
		b.AllePercentage, b.AliPercentage,
		b.PurchaseDate.String(), b.CreatedBy, createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test investment: %v", err)
	}

	return model.Investment{
		ID:             b.ID,
		Name:           b.Name,
		Symbol:         b.Symbol,
		Type:           b.Type,
		InitialValue:   b.InitialValue,
		CurrentValue:   b.CurrentValue,
		AllePercentage: b.AllePercentage,
		AliPercentage:  b.AliPercentage,
		PurchaseDate:   b.PurchaseDate,
		CreatedBy:      b.CreatedBy,
		CreatedAt:      createdAt,
	}
}

// CreateInvestment creates an investment with the given name and default values.
//
// Example usage:
//
//	investment := testutil.CreateInvestment(t, db, "Tech Stock")
func CreateInvestment(t *testing.T, db *sql.DB, name string) model.Investment {
	t.Helper()
	return NewInvestment().WithName(name).Build(t, db)
}

// CreateInvestments creates multiple investments with unique names.
func CreateInvestments(t *testing.T, db *sql.DB, count int) []model.Investment {
	t.Helper()

	investments := make([]model.Investment, count)
	for i := 0; i < count; i++ {
		investments[i] = NewInvestment().Build(t, db)
	}
	return investments
}

// TransactionBuilder provides a fluent interface for creating audit-log
// transactions directly, bypassing the services that normally synthesize
// them. Useful for testing listing and ordering behavior.
type TransactionBuilder struct {
	ID             string
	Action         string
	InvestmentID   string
	InvestmentName string
	Amount         decimal.Decimal
	Date           model.Date
	UserID         string
	CreatedAt      time.Time
}

// NewTransaction creates a TransactionBuilder with defaults.
func NewTransaction(investmentID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:             MakeID(),
		Action:         model.ActionPurchase,
		InvestmentID:   investmentID,
		InvestmentName: "Test Investment",
		Amount:         decimal.NewFromInt(1000),
		Date:           model.Today(),
		UserID:         MakeID(),
		CreatedAt:      time.Now().UTC(),
	}
}

// WithAction sets the transaction action.
func (b *TransactionBuilder) WithAction(action string) *TransactionBuilder {
	b.Action = action
	return b
}

// WithInvestmentName sets the denormalized investment name.
func (b *TransactionBuilder) WithInvestmentName(name string) *TransactionBuilder {
	b.InvestmentName = name
	return b
}

// WithAmount sets the transaction amount.
func (b *TransactionBuilder) WithAmount(amount decimal.Decimal) *TransactionBuilder {
	b.Amount = amount
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date model.Date) *TransactionBuilder {
	b.Date = date
	return b
}

// WithCreatedAt sets the record creation timestamp. Useful for exercising
// the same-day ordering tiebreak.
func (b *TransactionBuilder) WithCreatedAt(ts time.Time) *TransactionBuilder {
	b.CreatedAt = ts
	return b
}

// WithUserID sets the acting user's ID.
func (b *TransactionBuilder) WithUserID(userID string) *TransactionBuilder {
	b.UserID = userID
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, action, investment_id, investment_name, amount, date, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.Action, b.InvestmentID, b.InvestmentName,
		b.Amount.String(), b.Date.String(), b.UserID, b.CreatedAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:             b.ID,
		Action:         b.Action,
		InvestmentID:   b.InvestmentID,
		InvestmentName: b.InvestmentName,
		Amount:         b.Amount,
		Date:           b.Date,
		UserID:         b.UserID,
		CreatedAt:      b.CreatedAt,
	}
}

// SaleBuilder provides a fluent interface for creating sale records
// directly, bypassing the sale service.
type SaleBuilder struct {
	ID             string
	InvestmentID   string
	InvestmentName string
	SaleAmount     decimal.Decimal
	SalePrice      decimal.Decimal
	AllePercentage int
	AliPercentage  int
	SaleDate       model.Date
	CreatedBy      string
	CreatedAt      time.Time
}

// NewSale creates a SaleBuilder with defaults.
func NewSale(investmentID string) *SaleBuilder {
	return &SaleBuilder{
		ID:             MakeID(),
		InvestmentID:   investmentID,
		InvestmentName: "Test Investment",
		SaleAmount:     decimal.NewFromInt(100),
		SalePrice:      decimal.NewFromInt(110),
		AllePercentage: 50,
		AliPercentage:  50,
		SaleDate:       model.Today(),
		CreatedBy:      MakeID(),
		CreatedAt:      time.Now().UTC(),
	}
}

// WithSaleAmount sets the liquidated amount.
func (b *SaleBuilder) WithSaleAmount(amount decimal.Decimal) *SaleBuilder {
	b.SaleAmount = amount
	return b
}

// WithSalePrice sets the proceeds.
func (b *SaleBuilder) WithSalePrice(price decimal.Decimal) *SaleBuilder {
	b.SalePrice = price
	return b
}

// WithPercentages sets the proceeds split.
func (b *SaleBuilder) WithPercentages(alle, ali int) *SaleBuilder {
	b.AllePercentage = alle
	b.AliPercentage = ali
	return b
}

// WithSaleDate sets the sale date.
func (b *SaleBuilder) WithSaleDate(date model.Date) *SaleBuilder {
	b.SaleDate = date
	return b
}

// WithInvestmentName sets the denormalized investment name.
func (b *SaleBuilder) WithInvestmentName(name string) *SaleBuilder {
	b.InvestmentName = name
	return b
}

// Build creates the sale in the database and returns it.
func (b *SaleBuilder) Build(t *testing.T, db *sql.DB) model.Sale {
	t.Helper()

	query := `
		INSERT INTO sale (id, investment_id, investment_name, sale_amount, sale_price,
		                  alle_percentage, ali_percentage, sale_date, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.InvestmentID, b.InvestmentName,
		b.SaleAmount.String(), b.SalePrice.String(),
		b.AllePercentage, b.AliPercentage,
		b.SaleDate.String(), b.CreatedBy, b.CreatedAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test sale: %v", err)
	}

	return model.Sale{
		ID:             b.ID,
		InvestmentID:   b.InvestmentID,
		InvestmentName: b.InvestmentName,
		SaleAmount:     b.SaleAmount,
		SalePrice:      b.SalePrice,
		AllePercentage: b.AllePercentage,
		AliPercentage:  b.AliPercentage,
		SaleDate:       b.SaleDate,
		CreatedBy:      b.CreatedBy,
		CreatedAt:      b.CreatedAt,
	}
}
