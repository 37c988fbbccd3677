package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/spendperks/rewards-api/internal/core/domain"
	"github.com/spendperks/rewards-api/internal/core/ports"
)

// LedgerService owns balance and transaction operations for app users.
type LedgerService struct {
	repo   ports.LedgerRepository
	logger zerolog.Logger
}

func NewLedgerService(repo ports.LedgerRepository, logger zerolog.Logger) *LedgerService {
	return &LedgerService{repo: repo, logger: logger}
}

func (s *LedgerService) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	return s.repo.Balance(userID), nil
}

func (s *LedgerService) Transactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return s.repo.Transactions(userID), nil
}

// Record validates and stores a payment, crediting cashback at the current
// rate. Credits are frozen on the stored transaction.
func (s *LedgerService) Record(ctx context.Context, userID string, in ports.RecordTransactionInput) (*domain.Transaction, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description", domain.ErrMissingField)
	}

	txType := in.Type
	if txType == "" {
		txType = domain.TypePayment
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	merchant := in.Merchant
	if merchant == "" {
		merchant = in.Description
	}

	txn := domain.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      in.Amount,
		Description: in.Description,
		Type:        txType,
		Credits:     domain.CreditsFor(in.Amount),
		Date:        date,
		Merchant:    merchant,
	}
	s.repo.Append(userID, txn, true)

	s.logger.Info().
		Str("user_id", userID).
		Str("transaction_id", txn.ID).
		Str("amount", txn.Amount.String()).
		Str("credits", txn.Credits.String()).
		Msg("transaction recorded")

	return &txn, nil
}

// RedeemPerk atomically checks affordability and debits the balance. The
// per-partner redemption counters are untouched by this flow.
func (s *LedgerService) RedeemPerk(ctx context.Context, userID string, perkID int, perkName string, cost decimal.Decimal) (*ports.RedeemPerkResult, error) {
	if cost.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	prev, next, err := s.repo.Debit(userID, cost)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Int("perk_id", perkID).
		Str("perk_name", perkName).
		Str("cost", cost.String()).
		Str("new_balance", next.String()).
		Msg("perk redeemed")

	return &ports.RedeemPerkResult{
		PerkName:        perkName,
		Cost:            cost,
		PreviousBalance: prev,
		NewBalance:      next,
	}, nil
}

// demo starter history, shared by the wallet seed and the simulator.
var transactionDescriptions = map[domain.TransactionType][]string{
	domain.TypeRent:      {"Rent Payment", "Monthly Rent", "Housing Payment"},
	domain.TypeUtilities: {"Electricity Bill", "Gas & Water Bill", "Energy Bill", "Heating"},
	domain.TypeBills:     {"Internet & Subscriptions", "Mobile Phone", "Gym Membership", "Streaming Services", "Shopping"},
	domain.TypePayment:   {"Groceries", "Food Delivery", "Transport", "Entertainment"},
}

var transactionTypes = []domain.TransactionType{
	domain.TypeRent, domain.TypeUtilities, domain.TypeBills, domain.TypePayment,
}

// DemoWalletSeed generates the synthetic starter history a fresh account is
// provisioned with: five payments within the last 30 days. Seeded history is
// initial state; it does not credit the balance.
func DemoWalletSeed(userID string) []domain.Transaction {
	now := time.Now().UTC()
	txns := make([]domain.Transaction, 0, 5)
	for i := 0; i < 5; i++ {
		daysAgo := rand.IntN(30)
		date := now.AddDate(0, 0, -daysAgo)

		txType := transactionTypes[rand.IntN(len(transactionTypes))]
		descriptions := transactionDescriptions[txType]
		description := descriptions[rand.IntN(len(descriptions))]
		amount := decimal.NewFromInt(int64(rand.IntN(200) + 20))

		txns = append(txns, domain.Transaction{
			ID:          uuid.NewString(),
			UserID:      userID,
			Amount:      amount,
			Description: description,
			Type:        txType,
			Credits:     domain.CreditsFor(amount),
			Date:        date,
			Merchant:    description,
		})
	}
	return txns
}
