package domain

import "github.com/shopspring/decimal"

// Perk is a generic reward redeemable against the user's credit balance.
type Perk struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Cost        decimal.Decimal `json:"cost"`
	Icon        string          `json:"icon"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// Deal is a partner offer. Redeeming a deal is a free engagement action: it
// increments the partner's redemption counter and never touches any balance.
type Deal struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	FullDescription string `json:"fullDescription"`
	Icon            string `json:"icon"`
}

// Partner is a merchant offering deals. Static deals are seeded at startup;
// dynamic deals appended via the dashboard live alongside them in the store.
type Partner struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Logo  string `json:"logo"`
	Route string `json:"route"`
	Deals []Deal `json:"deals"`
}

// PartnerStats aggregates engagement numbers for the dashboard.
type PartnerStats struct {
	TotalDeals       int `json:"totalDeals"`
	ActiveDeals      int `json:"activeDeals"`
	TotalViews       int `json:"totalViews"`
	TotalRedemptions int `json:"totalRedemptions"`
}
