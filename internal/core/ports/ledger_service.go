package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendperks/rewards-api/internal/core/domain"
)

// RecordTransactionInput carries a user-submitted payment. Type, Date and
// Merchant are optional; the service applies the documented fallbacks.
type RecordTransactionInput struct {
	Amount      decimal.Decimal
	Description string
	Type        domain.TransactionType
	Date        time.Time
	Merchant    string
}

// RedeemPerkResult reports the balance movement of a generic-perk redemption.
type RedeemPerkResult struct {
	PerkName        string
	Cost            decimal.Decimal
	PreviousBalance decimal.Decimal
	NewBalance      decimal.Decimal
}

// LedgerService owns per-user balances and transaction logs.
type LedgerService interface {
	// Balance returns the user's credit balance, provisioning the account on
	// first access.
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)

	// Transactions returns the user's full log sorted by date descending.
	Transactions(ctx context.Context, userID string) ([]domain.Transaction, error)

	// Record validates and appends a payment, crediting 5% cashback.
	Record(ctx context.Context, userID string, in RecordTransactionInput) (*domain.Transaction, error)

	// RedeemPerk atomically checks affordability and debits the balance.
	RedeemPerk(ctx context.Context, userID string, perkID int, perkName string, cost decimal.Decimal) (*RedeemPerkResult, error)
}

// LedgerRepository is the in-memory account store. Every method provisions the
// account on first touch and serializes mutations per user.
type LedgerRepository interface {
	Balance(userID string) decimal.Decimal
	Transactions(userID string) []domain.Transaction

	// Append stores a transaction and, when credit is true, adds its credits
	// to the balance.
	Append(userID string, txn domain.Transaction, credit bool)

	// AppendBatch stores a batch, credits each transaction, and re-sorts the
	// log by date descending as a single serialized operation.
	AppendBatch(userID string, txns []domain.Transaction)

	// Debit subtracts cost if affordable; returns the balance before and
	// after, or an *domain.InsufficientFundsError without mutating.
	Debit(userID string, cost decimal.Decimal) (prev, next decimal.Decimal, err error)

	// Reset clears the transaction log and restores the provisioning balance.
	Reset(userID string)
}
