package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/spendperks/rewards-api/internal/core/domain"
	"github.com/spendperks/rewards-api/internal/core/ports"
)

const defaultDealIcon = "gift"

// CatalogService serves the perk/deal catalog, dashboard aggregates, and the
// partner-deal redemption flow.
type CatalogService struct {
	repo   ports.CatalogRepository
	events ports.Broadcaster
	logger zerolog.Logger
}

func NewCatalogService(repo ports.CatalogRepository, events ports.Broadcaster, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, events: events, logger: logger}
}

func (s *CatalogService) GeneralPerks(ctx context.Context) []domain.Perk {
	return s.repo.GeneralPerks()
}

func (s *CatalogService) Partners(ctx context.Context) []domain.Partner {
	return s.repo.Partners()
}

func (s *CatalogService) Partner(ctx context.Context, slug string) (*domain.Partner, error) {
	p, ok := s.repo.Partner(slug)
	if !ok {
		return nil, domain.ErrPartnerNotFound
	}
	return &p, nil
}

func (s *CatalogService) PartnerDeals(ctx context.Context, slug string) (*domain.Partner, []domain.Deal, error) {
	p, ok := s.repo.Partner(slug)
	if !ok {
		return nil, nil, domain.ErrPartnerNotFound
	}
	deals, _ := s.repo.Deals(slug)
	return &p, deals, nil
}

// AddDeal validates and appends a dynamic deal, then notifies listeners.
func (s *CatalogService) AddDeal(ctx context.Context, slug string, in ports.AddDealInput) (*domain.Deal, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title", domain.ErrMissingField)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description", domain.ErrMissingField)
	}

	deal := domain.Deal{
		Title:           in.Title,
		Description:     in.Description,
		FullDescription: in.FullDescription,
		Icon:            in.Icon,
	}
	if deal.FullDescription == "" {
		deal.FullDescription = in.Description
	}
	if deal.Icon == "" {
		deal.Icon = defaultDealIcon
	}

	stored, ok := s.repo.AddDeal(slug, deal)
	if !ok {
		return nil, domain.ErrPartnerNotFound
	}

	s.logger.Info().Str("partner", slug).Int("deal_id", stored.ID).Str("title", stored.Title).Msg("deal added")
	s.events.Publish(ports.EventNewDealAdded, map[string]any{
		"partner": slug,
		"deal":    stored,
	})
	return &stored, nil
}

// RedeemDeal bumps the engagement counter for a partner deal and notifies
// listeners with the new count. No balance is involved.
func (s *CatalogService) RedeemDeal(ctx context.Context, slug string, dealID int) (int, error) {
	count, ok := s.repo.IncrementRedemption(slug, dealID)
	if !ok {
		return 0, domain.ErrPartnerNotFound
	}

	s.logger.Info().Str("partner", slug).Int("deal_id", dealID).Int("count", count).Msg("partner deal redeemed")
	s.events.Publish(ports.EventPerkRedeemed, map[string]any{
		"partner":         slug,
		"perkId":          dealID,
		"redemptionCount": count,
	})
	return count, nil
}

func (s *CatalogService) Redemptions(ctx context.Context, slug string) (map[int]int, error) {
	counts, ok := s.repo.Redemptions(slug)
	if !ok {
		return nil, domain.ErrPartnerNotFound
	}
	return counts, nil
}

// DashboardDeals merges catalog deals with their engagement counters into the
// shape the dashboard renders.
func (s *CatalogService) DashboardDeals(ctx context.Context, slug string) ([]ports.DashboardDeal, error) {
	deals, ok := s.repo.Deals(slug)
	if !ok {
		return nil, domain.ErrPartnerNotFound
	}
	redemptions, _ := s.repo.Redemptions(slug)
	views, _ := s.repo.Views(slug)

	validFrom := time.Now().UTC().Format("2006-01-02")
	out := make([]ports.DashboardDeal, 0, len(deals))
	for _, d := range deals {
		viewCount, seen := views[d.ID]
		if !seen {
			viewCount = 100
		}
		out = append(out, ports.DashboardDeal{
			ID:              strconv.Itoa(d.ID),
			Title:           d.Title,
			Description:     d.Description,
			FullDescription: d.FullDescription,
			Icon:            d.Icon,
			Status:          "active",
			ValidFrom:       validFrom,
			Views:           viewCount,
			Redemptions:     redemptions[d.ID],
		})
	}
	return out, nil
}

// Stats aggregates deal, view, and redemption totals for a partner.
func (s *CatalogService) Stats(ctx context.Context, slug string) (*domain.PartnerStats, error) {
	deals, ok := s.repo.Deals(slug)
	if !ok {
		return nil, domain.ErrPartnerNotFound
	}
	redemptions, _ := s.repo.Redemptions(slug)
	views, _ := s.repo.Views(slug)

	stats := &domain.PartnerStats{
		TotalDeals:  len(deals),
		ActiveDeals: len(deals),
	}
	for _, d := range deals {
		stats.TotalRedemptions += redemptions[d.ID]
		viewCount, seen := views[d.ID]
		if !seen {
			viewCount = 100
		}
		stats.TotalViews += viewCount
	}
	return stats, nil
}
