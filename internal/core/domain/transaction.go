package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType categorises a payment for the wallet UI.
type TransactionType string

const (
	TypeRent      TransactionType = "rent"
	TypeUtilities TransactionType = "utilities"
	TypeBills     TransactionType = "bills"
	TypePayment   TransactionType = "payment"
)

// CashbackRate is the reward rate applied to every payment. Credits are
// computed once at creation time and frozen; changing the rate later must not
// rewrite historical transactions.
var CashbackRate = decimal.NewFromFloat(0.05)

// Transaction is a single immutable payment record.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
	Credits     decimal.Decimal `json:"credits"`
	Date        time.Time       `json:"date"`
	Merchant    string          `json:"merchant"`
}

// CreditsFor returns the reward credits earned by spending amount.
func CreditsFor(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(CashbackRate)
}
