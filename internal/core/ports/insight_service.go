package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/spendperks/rewards-api/internal/core/domain"
)

// RecentPayment is the slice of a transaction the roast prompt needs.
type RecentPayment struct {
	Merchant string          `json:"merchant"`
	Amount   decimal.Decimal `json:"amount"`
}

// RoastInput carries the spending snapshot the roast is generated from.
type RoastInput struct {
	Balance        decimal.Decimal
	MonthlyEarned  decimal.Decimal
	RecentPayments []RecentPayment
}

// WellbeingResource is a support resource surfaced with every analysis.
type WellbeingResource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// WellbeingReport is the structured result of a wellbeing analysis. Resources
// is guaranteed non-empty even when the upstream call fails.
type WellbeingReport struct {
	Summary   string              `json:"summary"`
	Concerns  []string            `json:"concerns"`
	Resources []WellbeingResource `json:"resources"`
	RiskLevel string              `json:"riskLevel"`
}

// InsightService proxies the two AI text-generation features. It holds no
// state and never touches ledger or catalog locks while awaiting upstream.
type InsightService interface {
	GenerateRoast(ctx context.Context, in RoastInput) (string, error)
	AnalyzeWellbeing(ctx context.Context, txns []domain.Transaction) (*WellbeingReport, error)
}
