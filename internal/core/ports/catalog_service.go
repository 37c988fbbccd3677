package ports

import (
	"context"

	"github.com/spendperks/rewards-api/internal/core/domain"
)

// AddDealInput carries a dashboard-submitted deal. FullDescription falls back
// to Description, Icon falls back to "gift".
type AddDealInput struct {
	Title           string
	Description     string
	FullDescription string
	Icon            string
}

// DashboardDeal is the enriched deal shape the partner dashboard renders,
// combining catalog data with engagement counters.
type DashboardDeal struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	FullDescription    string  `json:"fullDescription"`
	Icon               string  `json:"icon"`
	DiscountPercentage int     `json:"discount_percentage"`
	DiscountAmount     *int    `json:"discount_amount"`
	Status             string  `json:"status"`
	ValidFrom          string  `json:"valid_from"`
	ValidTo            *string `json:"valid_to"`
	Category           *string `json:"category"`
	Views              int     `json:"views"`
	Redemptions        int     `json:"redemptions"`
}

// CatalogService owns the perk/deal catalog and its engagement counters.
type CatalogService interface {
	GeneralPerks(ctx context.Context) []domain.Perk
	Partners(ctx context.Context) []domain.Partner

	// Partner returns the partner for a slug (case-insensitive).
	Partner(ctx context.Context, slug string) (*domain.Partner, error)

	// PartnerDeals returns static deals followed by dynamic deals.
	PartnerDeals(ctx context.Context, slug string) (*domain.Partner, []domain.Deal, error)

	// AddDeal appends a dynamic deal with the next monotonically increasing
	// id and initialized counters.
	AddDeal(ctx context.Context, slug string, in AddDealInput) (*domain.Deal, error)

	// RedeemDeal increments a deal's redemption counter and returns the new
	// count. It never touches any balance.
	RedeemDeal(ctx context.Context, slug string, dealID int) (int, error)

	// Redemptions returns the per-deal redemption counts for a partner.
	Redemptions(ctx context.Context, slug string) (map[int]int, error)

	// DashboardDeals returns the dashboard shape for all of a partner's deals.
	DashboardDeals(ctx context.Context, slug string) ([]DashboardDeal, error)

	// Stats aggregates deal, view, and redemption totals for a partner.
	Stats(ctx context.Context, slug string) (*domain.PartnerStats, error)
}

// CatalogRepository is the in-memory catalog store with per-partner
// serialization of counter mutations.
type CatalogRepository interface {
	GeneralPerks() []domain.Perk
	Partners() []domain.Partner
	Partner(slug string) (domain.Partner, bool)

	// Deals returns static deals followed by dynamic deals for the partner.
	Deals(slug string) ([]domain.Deal, bool)

	// AddDeal assigns the next id, stores the deal, zeroes its redemption
	// counter, and rebalances view counters, all under the partner's lock.
	AddDeal(slug string, deal domain.Deal) (domain.Deal, bool)

	// IncrementRedemption bumps a deal's counter (initializing to 0 first if
	// unseen) and returns the new count.
	IncrementRedemption(slug string, dealID int) (int, bool)

	Redemptions(slug string) (map[int]int, bool)
	Views(slug string) (map[int]int, bool)
}
