package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/spendperks/rewards-api/internal/core/domain"
	"github.com/spendperks/rewards-api/internal/core/ports"
)

// recordingBroadcaster captures published events for assertion.
type recordingBroadcaster struct {
	events   []string
	payloads []any
}

func (b *recordingBroadcaster) Publish(event string, payload any) {
	b.events = append(b.events, event)
	b.payloads = append(b.payloads, payload)
}

func (b *recordingBroadcaster) last() (string, any) {
	if len(b.events) == 0 {
		return "", nil
	}
	return b.events[len(b.events)-1], b.payloads[len(b.payloads)-1]
}

// stubCatalogRepo holds one partner with two static deals.
type stubCatalogRepo struct {
	partner     domain.Partner
	dynamic     []domain.Deal
	nextID      int
	redemptions map[int]int
	views       map[int]int
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{
		partner: domain.Partner{
			ID:   1,
			Name: "Aldi",
			Slug: "aldi",
			Deals: []domain.Deal{
				{ID: 1, Title: "10% off", Description: "Ten percent off shopping"},
				{ID: 2, Title: "Free bag", Description: "Free bag with any shop"},
			},
		},
		nextID:      3,
		redemptions: map[int]int{1: 4, 2: 7},
		views:       map[int]int{1: 120, 2: 80},
	}
}

func (r *stubCatalogRepo) GeneralPerks() []domain.Perk { return nil }

func (r *stubCatalogRepo) Partners() []domain.Partner { return []domain.Partner{r.partner} }

func (r *stubCatalogRepo) Partner(slug string) (domain.Partner, bool) {
	if slug != r.partner.Slug {
		return domain.Partner{}, false
	}
	return r.partner, true
}

func (r *stubCatalogRepo) Deals(slug string) ([]domain.Deal, bool) {
	if slug != r.partner.Slug {
		return nil, false
	}
	return append(append([]domain.Deal{}, r.partner.Deals...), r.dynamic...), true
}

func (r *stubCatalogRepo) AddDeal(slug string, deal domain.Deal) (domain.Deal, bool) {
	if slug != r.partner.Slug {
		return domain.Deal{}, false
	}
	deal.ID = r.nextID
	r.nextID++
	r.dynamic = append(r.dynamic, deal)
	r.redemptions[deal.ID] = 0
	return deal, true
}

func (r *stubCatalogRepo) IncrementRedemption(slug string, dealID int) (int, bool) {
	if slug != r.partner.Slug {
		return 0, false
	}
	r.redemptions[dealID]++
	return r.redemptions[dealID], true
}

func (r *stubCatalogRepo) Redemptions(slug string) (map[int]int, bool) {
	if slug != r.partner.Slug {
		return nil, false
	}
	return r.redemptions, true
}

func (r *stubCatalogRepo) Views(slug string) (map[int]int, bool) {
	if slug != r.partner.Slug {
		return nil, false
	}
	return r.views, true
}

func TestCatalogService_AddDeal_Fallbacks(t *testing.T) {
	repo := newStubCatalogRepo()
	events := &recordingBroadcaster{}
	svc := NewCatalogService(repo, events, zerolog.Nop())

	deal, err := svc.AddDeal(context.Background(), "aldi", ports.AddDealInput{
		Title:       "2 for 1 pizza",
		Description: "Buy one get one free",
	})
	if err != nil {
		t.Fatalf("AddDeal returned error: %v", err)
	}
	if deal.ID != 3 {
		t.Fatalf("expected next id 3, got %d", deal.ID)
	}
	if deal.FullDescription != "Buy one get one free" {
		t.Fatalf("fullDescription should fall back to description, got %q", deal.FullDescription)
	}
	if deal.Icon != "gift" {
		t.Fatalf("icon should fall back to gift, got %q", deal.Icon)
	}

	event, payload := events.last()
	if event != ports.EventNewDealAdded {
		t.Fatalf("expected %s event, got %s", ports.EventNewDealAdded, event)
	}
	body, ok := payload.(map[string]any)
	if !ok || body["partner"] != "aldi" {
		t.Fatalf("unexpected event payload: %#v", payload)
	}
}

func TestCatalogService_AddDeal_Validation(t *testing.T) {
	svc := NewCatalogService(newStubCatalogRepo(), &recordingBroadcaster{}, zerolog.Nop())

	if _, err := svc.AddDeal(context.Background(), "aldi", ports.AddDealInput{Description: "no title"}); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField for empty title, got %v", err)
	}
	if _, err := svc.AddDeal(context.Background(), "aldi", ports.AddDealInput{Title: "no description"}); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField for empty description, got %v", err)
	}
	if _, err := svc.AddDeal(context.Background(), "nope", ports.AddDealInput{Title: "t", Description: "d"}); !errors.Is(err, domain.ErrPartnerNotFound) {
		t.Fatalf("expected ErrPartnerNotFound, got %v", err)
	}
}

func TestCatalogService_RedeemDeal_PublishesCount(t *testing.T) {
	repo := newStubCatalogRepo()
	events := &recordingBroadcaster{}
	svc := NewCatalogService(repo, events, zerolog.Nop())

	count, err := svc.RedeemDeal(context.Background(), "aldi", 1)
	if err != nil {
		t.Fatalf("RedeemDeal returned error: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected count 5, got %d", count)
	}

	event, payload := events.last()
	if event != ports.EventPerkRedeemed {
		t.Fatalf("expected %s event, got %s", ports.EventPerkRedeemed, event)
	}
	body := payload.(map[string]any)
	if body["perkId"] != 1 || body["redemptionCount"] != 5 {
		t.Fatalf("unexpected event payload: %#v", body)
	}

	if _, err := svc.RedeemDeal(context.Background(), "nope", 1); !errors.Is(err, domain.ErrPartnerNotFound) {
		t.Fatalf("expected ErrPartnerNotFound, got %v", err)
	}
}

func TestCatalogService_DashboardDeals(t *testing.T) {
	repo := newStubCatalogRepo()
	svc := NewCatalogService(repo, &recordingBroadcaster{}, zerolog.Nop())

	deals, err := svc.DashboardDeals(context.Background(), "aldi")
	if err != nil {
		t.Fatalf("DashboardDeals returned error: %v", err)
	}
	if len(deals) != 2 {
		t.Fatalf("expected 2 deals, got %d", len(deals))
	}

	first := deals[0]
	if first.ID != "1" {
		t.Fatalf("dashboard id must be a string, got %q", first.ID)
	}
	if first.Status != "active" {
		t.Fatalf("expected status active, got %q", first.Status)
	}
	if first.ValidFrom != time.Now().UTC().Format("2006-01-02") {
		t.Fatalf("expected valid_from today, got %q", first.ValidFrom)
	}
	if first.Views != 120 || first.Redemptions != 4 {
		t.Fatalf("counters not merged: %+v", first)
	}
}

func TestCatalogService_DashboardDeals_DefaultViews(t *testing.T) {
	repo := newStubCatalogRepo()
	delete(repo.views, 2)
	svc := NewCatalogService(repo, &recordingBroadcaster{}, zerolog.Nop())

	deals, _ := svc.DashboardDeals(context.Background(), "aldi")
	if deals[1].Views != 100 {
		t.Fatalf("expected default views 100 for uncounted deal, got %d", deals[1].Views)
	}
}

func TestCatalogService_Stats(t *testing.T) {
	repo := newStubCatalogRepo()
	svc := NewCatalogService(repo, &recordingBroadcaster{}, zerolog.Nop())

	stats, err := svc.Stats(context.Background(), "aldi")
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.TotalDeals != 2 || stats.ActiveDeals != 2 {
		t.Fatalf("unexpected deal totals: %+v", stats)
	}
	if stats.TotalViews != 200 || stats.TotalRedemptions != 11 {
		t.Fatalf("unexpected engagement totals: %+v", stats)
	}

	if _, err := svc.Stats(context.Background(), "nope"); !errors.Is(err, domain.ErrPartnerNotFound) {
		t.Fatalf("expected ErrPartnerNotFound, got %v", err)
	}
}
