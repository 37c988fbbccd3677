package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/spendperks/rewards-api/internal/core/domain"
	"github.com/spendperks/rewards-api/internal/core/ports"
)

// stubLedgerRepo is an unsynchronized LedgerRepository for single-goroutine
// service tests.
type stubLedgerRepo struct {
	balance decimal.Decimal
	txns    []domain.Transaction
	resets  int
}

func newStubLedgerRepo(balance string) *stubLedgerRepo {
	return &stubLedgerRepo{balance: decimal.RequireFromString(balance)}
}

func (r *stubLedgerRepo) Balance(userID string) decimal.Decimal { return r.balance }

func (r *stubLedgerRepo) Transactions(userID string) []domain.Transaction { return r.txns }

func (r *stubLedgerRepo) Append(userID string, txn domain.Transaction, credit bool) {
	r.txns = append(r.txns, txn)
	if credit {
		r.balance = r.balance.Add(txn.Credits)
	}
}

func (r *stubLedgerRepo) AppendBatch(userID string, txns []domain.Transaction) {
	for _, txn := range txns {
		r.Append(userID, txn, true)
	}
	sort.Slice(r.txns, func(i, j int) bool { return r.txns[i].Date.After(r.txns[j].Date) })
}

func (r *stubLedgerRepo) Debit(userID string, cost decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if r.balance.LessThan(cost) {
		return decimal.Zero, decimal.Zero, &domain.InsufficientFundsError{
			CurrentBalance: r.balance,
			Required:       cost,
		}
	}
	prev := r.balance
	r.balance = r.balance.Sub(cost)
	return prev, r.balance, nil
}

func (r *stubLedgerRepo) Reset(userID string) {
	r.resets++
	r.txns = nil
}

func TestLedgerService_Record_CreditsCashback(t *testing.T) {
	repo := newStubLedgerRepo("56.75")
	svc := NewLedgerService(repo, zerolog.Nop())

	when := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	txn, err := svc.Record(context.Background(), "user", ports.RecordTransactionInput{
		Amount:      decimal.NewFromInt(100),
		Description: "Groceries",
		Type:        domain.TypePayment,
		Date:        when,
		Merchant:    "Aldi",
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if txn.ID == "" {
		t.Fatalf("expected generated transaction id")
	}
	if !txn.Credits.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected 5 credits on a 100 payment, got %s", txn.Credits)
	}
	if !repo.balance.Equal(decimal.RequireFromString("61.75")) {
		t.Fatalf("expected balance 61.75, got %s", repo.balance)
	}
	if !txn.Date.Equal(when) || txn.Merchant != "Aldi" {
		t.Fatalf("explicit fields not preserved: %+v", txn)
	}
}

func TestLedgerService_Record_Defaults(t *testing.T) {
	repo := newStubLedgerRepo("0")
	svc := NewLedgerService(repo, zerolog.Nop())

	before := time.Now().UTC()
	txn, err := svc.Record(context.Background(), "user", ports.RecordTransactionInput{
		Amount:      decimal.RequireFromString("12.50"),
		Description: "Coffee",
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if txn.Type != domain.TypePayment {
		t.Fatalf("expected default type payment, got %s", txn.Type)
	}
	if txn.Merchant != "Coffee" {
		t.Fatalf("expected merchant to fall back to description, got %q", txn.Merchant)
	}
	if txn.Date.Before(before) || txn.Date.After(time.Now().UTC()) {
		t.Fatalf("expected date to default to now, got %s", txn.Date)
	}
}

func TestLedgerService_Record_Validation(t *testing.T) {
	svc := NewLedgerService(newStubLedgerRepo("0"), zerolog.Nop())

	_, err := svc.Record(context.Background(), "user", ports.RecordTransactionInput{
		Amount:      decimal.Zero,
		Description: "Groceries",
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero amount, got %v", err)
	}

	_, err = svc.Record(context.Background(), "user", ports.RecordTransactionInput{
		Amount:      decimal.NewFromInt(-5),
		Description: "Groceries",
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative amount, got %v", err)
	}

	_, err = svc.Record(context.Background(), "user", ports.RecordTransactionInput{
		Amount: decimal.NewFromInt(10),
	})
	if !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField for empty description, got %v", err)
	}
}

func TestLedgerService_RedeemPerk(t *testing.T) {
	repo := newStubLedgerRepo("50")
	svc := NewLedgerService(repo, zerolog.Nop())

	res, err := svc.RedeemPerk(context.Background(), "user", 3, "Free Coffee", decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("RedeemPerk returned error: %v", err)
	}
	if !res.PreviousBalance.Equal(decimal.NewFromInt(50)) || !res.NewBalance.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("unexpected balance movement: %+v", res)
	}
	if res.PerkName != "Free Coffee" {
		t.Fatalf("unexpected perk name: %q", res.PerkName)
	}
}

func TestLedgerService_RedeemPerk_InsufficientFunds(t *testing.T) {
	repo := newStubLedgerRepo("5")
	svc := NewLedgerService(repo, zerolog.Nop())

	_, err := svc.RedeemPerk(context.Background(), "user", 1, "Big Perk", decimal.NewFromInt(25))
	var insufficientErr *domain.InsufficientFundsError
	if !errors.As(err, &insufficientErr) {
		t.Fatalf("expected *InsufficientFundsError, got %v", err)
	}
	if !insufficientErr.CurrentBalance.Equal(decimal.NewFromInt(5)) || !insufficientErr.Required.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("unexpected error detail: %+v", insufficientErr)
	}
	if !repo.balance.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("failed redemption must not move the balance, got %s", repo.balance)
	}
}

func TestLedgerService_RedeemPerk_NegativeCost(t *testing.T) {
	svc := NewLedgerService(newStubLedgerRepo("50"), zerolog.Nop())

	if _, err := svc.RedeemPerk(context.Background(), "user", 1, "Refund", decimal.NewFromInt(-10)); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative cost, got %v", err)
	}
}

func TestDemoWalletSeed_Shape(t *testing.T) {
	txns := DemoWalletSeed("user")
	if len(txns) != 5 {
		t.Fatalf("expected 5 seeded transactions, got %d", len(txns))
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -30)
	for _, txn := range txns {
		if txn.UserID != "user" {
			t.Fatalf("wrong user id: %q", txn.UserID)
		}
		if txn.Date.Before(cutoff) {
			t.Fatalf("seeded transaction older than 30 days: %s", txn.Date)
		}
		if txn.Amount.LessThan(decimal.NewFromInt(20)) || txn.Amount.GreaterThan(decimal.NewFromInt(219)) {
			t.Fatalf("amount out of range: %s", txn.Amount)
		}
		if !txn.Credits.Equal(domain.CreditsFor(txn.Amount)) {
			t.Fatalf("credits not derived from amount: %+v", txn)
		}
	}
}
