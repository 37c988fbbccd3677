package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/spendperks/rewards-api/internal/api/metrics"
	"github.com/spendperks/rewards-api/internal/core/domain"
	"github.com/spendperks/rewards-api/internal/core/ports"
)

// PerkHandler serves the user-facing catalog and both redemption flows.
type PerkHandler struct {
	catalog ports.CatalogService
	ledger  ports.LedgerService
}

func NewPerkHandler(catalog ports.CatalogService, ledger ports.LedgerService) *PerkHandler {
	return &PerkHandler{catalog: catalog, ledger: ledger}
}

// partnerResponse is a partner with the logo expanded to an absolute URL.
type partnerResponse struct {
	domain.Partner
	LogoURL string `json:"logoUrl"`
}

// partnerSummary is the trimmed partner shape on the per-partner perks page.
type partnerSummary struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	LogoURL string `json:"logoUrl"`
	Route   string `json:"route"`
}

type redeemPerkRequest struct {
	PerkID   int              `json:"perkId"`
	PerkName string           `json:"perkName"`
	Cost     *decimal.Decimal `json:"cost"`
}

type redeemPartnerPerkRequest struct {
	PerkID int `json:"perkId"`
}

// GeneralPerks handles GET /api/user/perks.
func (h *PerkHandler) GeneralPerks(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"perks": h.catalog.GeneralPerks(c.Request().Context()),
	})
}

// Partners handles GET /api/user/partners.
func (h *PerkHandler) Partners(c echo.Context) error {
	partners := h.catalog.Partners(c.Request().Context())
	out := make([]partnerResponse, 0, len(partners))
	for _, p := range partners {
		out = append(out, partnerResponse{Partner: p, LogoURL: absoluteLogoURL(c, p.Logo)})
	}
	return c.JSON(http.StatusOK, map[string]any{"partners": out})
}

// PartnerPerks handles GET /api/user/partners/:partnerSlug/perks. Static
// deals come first, dashboard-added deals after.
func (h *PerkHandler) PartnerPerks(c echo.Context) error {
	slug := c.Param("partnerSlug")

	partner, deals, err := h.catalog.PartnerDeals(c.Request().Context(), slug)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"partner": partnerSummary{
			ID:      partner.ID,
			Name:    partner.Name,
			Slug:    partner.Slug,
			LogoURL: absoluteLogoURL(c, partner.Logo),
			Route:   partner.Route,
		},
		"perks": deals,
	})
}

// RedeemPerk handles POST /api/user/redeem-perk, debiting the credit balance.
func (h *PerkHandler) RedeemPerk(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req redeemPerkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.PerkID == 0 || req.PerkName == "" || req.Cost == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "perkId, perkName, and cost are required")
	}

	result, err := h.ledger.RedeemPerk(c.Request().Context(), sess.UserID, req.PerkID, req.PerkName, *req.Cost)
	if err != nil {
		metrics.PerkRedemptionsTotal.WithLabelValues("general", "rejected").Inc()
		return err
	}
	metrics.PerkRedemptionsTotal.WithLabelValues("general", "success").Inc()

	return c.JSON(http.StatusOK, map[string]any{
		"success":         true,
		"perkName":        result.PerkName,
		"cost":            result.Cost,
		"previousBalance": result.PreviousBalance,
		"newBalance":      result.NewBalance,
	})
}

// RedeemPartnerPerk handles POST /api/user/:partner/redeem-perks. This is an
// engagement counter, not a purchase; no balance is involved.
func (h *PerkHandler) RedeemPartnerPerk(c echo.Context) error {
	if _, err := ctxSession(c); err != nil {
		return err
	}
	slug := c.Param("partner")

	var req redeemPartnerPerkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.PerkID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "perkId is required")
	}

	count, err := h.catalog.RedeemDeal(c.Request().Context(), slug, req.PerkID)
	if err != nil {
		metrics.PerkRedemptionsTotal.WithLabelValues("partner", "rejected").Inc()
		return err
	}
	metrics.PerkRedemptionsTotal.WithLabelValues("partner", "success").Inc()

	return c.JSON(http.StatusOK, map[string]any{
		"success":         true,
		"partner":         slug,
		"perkId":          req.PerkID,
		"redemptionCount": count,
	})
}

// absoluteLogoURL expands a stored logo path against the requesting host, the
// images are served as static files by this process.
func absoluteLogoURL(c echo.Context, logo string) string {
	return c.Scheme() + "://" + c.Request().Host + logo
}
