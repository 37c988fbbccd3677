package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spendperks/rewards-api/internal/core/ports"
)

// DashHandler serves the partner dashboard. Every route resolves the partner
// from the dashboard session's slug, an operator only ever sees their own
// partner's data.
type DashHandler struct {
	catalog ports.CatalogService
}

func NewDashHandler(catalog ports.CatalogService) *DashHandler {
	return &DashHandler{catalog: catalog}
}

type addPerkRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	FullDescription string `json:"fullDescription"`
	Icon            string `json:"icon"`
}

// dashPartner is the partner shape the dashboard header renders.
type dashPartner struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Logo string `json:"logo"`
}

// Redeems handles GET /api/dash/redeems.
func (h *DashHandler) Redeems(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	redemptions, err := h.catalog.Redemptions(c.Request().Context(), sess.PartnerSlug)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":     true,
		"partner":     sess.PartnerSlug,
		"redemptions": redemptions,
	})
}

// Partner handles GET /api/dash/partner.
func (h *DashHandler) Partner(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	partner, err := h.catalog.Partner(c.Request().Context(), sess.PartnerSlug)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"partner": dashPartner{
			ID:   partner.ID,
			Name: partner.Name,
			Slug: partner.Slug,
			Logo: partner.Logo,
		},
	})
}

// Deals handles GET /api/dash/deals, the enriched per-deal view.
func (h *DashHandler) Deals(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	deals, err := h.catalog.DashboardDeals(c.Request().Context(), sess.PartnerSlug)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"deals":   deals,
	})
}

// Stats handles GET /api/dash/stats.
func (h *DashHandler) Stats(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	stats, err := h.catalog.Stats(c.Request().Context(), sess.PartnerSlug)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"stats":   stats,
	})
}

// AddPerk handles POST /api/dash/add-perk. A new-deal-added event is
// broadcast so open user catalogs refresh live.
func (h *DashHandler) AddPerk(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req addPerkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	deal, err := h.catalog.AddDeal(c.Request().Context(), sess.PartnerSlug, ports.AddDealInput{
		Title:           req.Title,
		Description:     req.Description,
		FullDescription: req.FullDescription,
		Icon:            req.Icon,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"deal":    deal,
	})
}
