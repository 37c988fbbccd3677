package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/spendperks/rewards-api/internal/api/middleware"
	"github.com/spendperks/rewards-api/internal/core/domain"
	"github.com/spendperks/rewards-api/internal/core/ports"
)

type stubCatalogService struct {
	partner     domain.Partner
	perks       []domain.Perk
	deals       []domain.Deal
	added       []ports.AddDealInput
	redemptions map[int]int
}

func newStubCatalogService() *stubCatalogService {
	return &stubCatalogService{
		partner: domain.Partner{ID: 1, Name: "Aldi", Slug: "aldi", Logo: "/images/aldi.png", Route: "/partners/aldi"},
		perks:   []domain.Perk{{ID: 1, Name: "Free Coffee", Cost: decimal.NewFromInt(5)}},
		deals: []domain.Deal{
			{ID: 1, Title: "10% off"},
			{ID: 2, Title: "Free bag"},
		},
		redemptions: map[int]int{1: 4},
	}
}

func (s *stubCatalogService) GeneralPerks(ctx context.Context) []domain.Perk { return s.perks }

func (s *stubCatalogService) Partners(ctx context.Context) []domain.Partner {
	return []domain.Partner{s.partner}
}

func (s *stubCatalogService) Partner(ctx context.Context, slug string) (*domain.Partner, error) {
	if slug != s.partner.Slug {
		return nil, domain.ErrPartnerNotFound
	}
	p := s.partner
	return &p, nil
}

func (s *stubCatalogService) PartnerDeals(ctx context.Context, slug string) (*domain.Partner, []domain.Deal, error) {
	if slug != s.partner.Slug {
		return nil, nil, domain.ErrPartnerNotFound
	}
	p := s.partner
	return &p, s.deals, nil
}

func (s *stubCatalogService) AddDeal(ctx context.Context, slug string, in ports.AddDealInput) (*domain.Deal, error) {
	if slug != s.partner.Slug {
		return nil, domain.ErrPartnerNotFound
	}
	s.added = append(s.added, in)
	return &domain.Deal{ID: 3, Title: in.Title, Description: in.Description}, nil
}

func (s *stubCatalogService) RedeemDeal(ctx context.Context, slug string, dealID int) (int, error) {
	if slug != s.partner.Slug {
		return 0, domain.ErrPartnerNotFound
	}
	s.redemptions[dealID]++
	return s.redemptions[dealID], nil
}

func (s *stubCatalogService) Redemptions(ctx context.Context, slug string) (map[int]int, error) {
	if slug != s.partner.Slug {
		return nil, domain.ErrPartnerNotFound
	}
	return s.redemptions, nil
}

func (s *stubCatalogService) DashboardDeals(ctx context.Context, slug string) ([]ports.DashboardDeal, error) {
	if slug != s.partner.Slug {
		return nil, domain.ErrPartnerNotFound
	}
	return []ports.DashboardDeal{}, nil
}

func (s *stubCatalogService) Stats(ctx context.Context, slug string) (*domain.PartnerStats, error) {
	if slug != s.partner.Slug {
		return nil, domain.ErrPartnerNotFound
	}
	return &domain.PartnerStats{TotalDeals: 2, ActiveDeals: 2, TotalViews: 200, TotalRedemptions: 4}, nil
}

func TestPerkHandler_Partners_AbsoluteLogoURL(t *testing.T) {
	h := NewPerkHandler(newStubCatalogService(), &stubLedgerService{})

	req := jsonRequest(http.MethodGet, "/api/user/partners", "")
	req.Host = "api.example.com"
	c, rec := newHandlerContext(req)

	if err := h.Partners(c); err != nil {
		t.Fatalf("Partners returned error: %v", err)
	}

	body := decodeBody(t, rec)
	partners := body["partners"].([]any)
	if len(partners) != 1 {
		t.Fatalf("expected 1 partner, got %d", len(partners))
	}
	logo := partners[0].(map[string]any)["logoUrl"]
	if logo != "http://api.example.com/images/aldi.png" {
		t.Fatalf("unexpected logo url: %v", logo)
	}
}

func TestPerkHandler_PartnerPerks(t *testing.T) {
	h := NewPerkHandler(newStubCatalogService(), &stubLedgerService{})

	c, rec := newHandlerContext(jsonRequest(http.MethodGet, "/api/user/partners/aldi/perks", ""))
	c.SetParamNames("partnerSlug")
	c.SetParamValues("aldi")

	if err := h.PartnerPerks(c); err != nil {
		t.Fatalf("PartnerPerks returned error: %v", err)
	}

	body := decodeBody(t, rec)
	partner := body["partner"].(map[string]any)
	if partner["slug"] != "aldi" {
		t.Fatalf("unexpected partner: %#v", partner)
	}
	if len(body["perks"].([]any)) != 2 {
		t.Fatalf("unexpected perks: %#v", body["perks"])
	}
}

func TestPerkHandler_PartnerPerks_UnknownPartner(t *testing.T) {
	h := NewPerkHandler(newStubCatalogService(), &stubLedgerService{})

	c, _ := newHandlerContext(jsonRequest(http.MethodGet, "/api/user/partners/nope/perks", ""))
	c.SetParamNames("partnerSlug")
	c.SetParamValues("nope")

	if err := h.PartnerPerks(c); !errors.Is(err, domain.ErrPartnerNotFound) {
		t.Fatalf("expected ErrPartnerNotFound, got %v", err)
	}
}

func TestPerkHandler_RedeemPerk(t *testing.T) {
	ledger := &stubLedgerService{balance: decimal.NewFromInt(50)}
	h := NewPerkHandler(newStubCatalogService(), ledger)

	c, rec := newHandlerContext(jsonRequest(http.MethodPost, "/api/user/redeem-perk",
		`{"perkId":1,"perkName":"Free Coffee","cost":5}`))
	c.Set(middleware.SessionContextKey, userSession())

	if err := h.RedeemPerk(c); err != nil {
		t.Fatalf("RedeemPerk returned error: %v", err)
	}

	body := decodeBody(t, rec)
	if body["success"] != true || body["perkName"] != "Free Coffee" {
		t.Fatalf("unexpected body: %#v", body)
	}
	if body["previousBalance"] != "50" || body["newBalance"] != "45" {
		t.Fatalf("unexpected balance movement: %#v", body)
	}
}

func TestPerkHandler_RedeemPerk_MissingFields(t *testing.T) {
	h := NewPerkHandler(newStubCatalogService(), &stubLedgerService{})

	for _, payload := range []string{
		`{}`,
		`{"perkId":1}`,
		`{"perkId":1,"perkName":"Free Coffee"}`,
		`{"perkName":"Free Coffee","cost":5}`,
	} {
		c, _ := newHandlerContext(jsonRequest(http.MethodPost, "/api/user/redeem-perk", payload))
		c.Set(middleware.SessionContextKey, userSession())

		err := h.RedeemPerk(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("payload %s: expected 400, got %v", payload, err)
		}
	}
}

func TestPerkHandler_RedeemPartnerPerk(t *testing.T) {
	catalog := newStubCatalogService()
	h := NewPerkHandler(catalog, &stubLedgerService{})

	c, rec := newHandlerContext(jsonRequest(http.MethodPost, "/api/user/aldi/redeem-perks", `{"perkId":1}`))
	c.SetParamNames("partner")
	c.SetParamValues("aldi")
	c.Set(middleware.SessionContextKey, userSession())

	if err := h.RedeemPartnerPerk(c); err != nil {
		t.Fatalf("RedeemPartnerPerk returned error: %v", err)
	}

	body := decodeBody(t, rec)
	if body["partner"] != "aldi" || body["perkId"] != 1.0 || body["redemptionCount"] != 5.0 {
		t.Fatalf("unexpected body: %#v", body)
	}
}

func TestPerkHandler_RedeemPartnerPerk_MissingPerkID(t *testing.T) {
	h := NewPerkHandler(newStubCatalogService(), &stubLedgerService{})

	c, _ := newHandlerContext(jsonRequest(http.MethodPost, "/api/user/aldi/redeem-perks", `{}`))
	c.SetParamNames("partner")
	c.SetParamValues("aldi")
	c.Set(middleware.SessionContextKey, userSession())

	err := h.RedeemPartnerPerk(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
