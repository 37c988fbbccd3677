package memory

import (
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/spendperks/rewards-api/internal/core/domain"
)

const (
	// Aldi's deal views always sum to this total; adding a deal rebalances
	// the per-deal counts instead of growing the sum.
	fixedViewsTotal = 10000
	fixedViewsSlug  = "aldi"
)

// partnerState is everything mutable about one partner, under its own mutex
// so counter updates for different partners never contend.
type partnerState struct {
	mu          sync.Mutex
	partner     domain.Partner
	dynamic     []domain.Deal
	redemptions map[int]int
	views       map[int]int
}

// CatalogStore holds the perk/deal catalog. The static catalog is immutable;
// dashboard-added deals and engagement counters are the only moving parts.
type CatalogStore struct {
	perks  []domain.Perk
	order  []string
	states map[string]*partnerState
}

// NewCatalogStore seeds the static catalog, random redemption counters
// (10..500 per deal, demo dressing), and deterministic view counters.
func NewCatalogStore() *CatalogStore {
	s := &CatalogStore{
		perks:  seedGeneralPerks(),
		states: make(map[string]*partnerState),
	}
	for _, p := range seedPartners() {
		st := &partnerState{
			partner:     p,
			redemptions: make(map[int]int),
			views:       make(map[int]int),
		}
		for _, d := range p.Deals {
			st.redemptions[d.ID] = rand.IntN(491) + 10
		}
		st.recomputeViews()
		key := strings.ToLower(p.Slug)
		s.states[key] = st
		s.order = append(s.order, key)
	}
	return s
}

// GeneralPerks returns the static generic-perk list.
func (s *CatalogStore) GeneralPerks() []domain.Perk {
	out := make([]domain.Perk, len(s.perks))
	copy(out, s.perks)
	return out
}

// Partners returns all partners with their static deals.
func (s *CatalogStore) Partners() []domain.Partner {
	out := make([]domain.Partner, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.states[key].partner)
	}
	return out
}

// Partner returns the partner for a slug, case-insensitively.
func (s *CatalogStore) Partner(slug string) (domain.Partner, bool) {
	st, ok := s.state(slug)
	if !ok {
		return domain.Partner{}, false
	}
	return st.partner, true
}

// Deals returns static deals followed by dynamic deals.
func (s *CatalogStore) Deals(slug string) ([]domain.Deal, bool) {
	st, ok := s.state(slug)
	if !ok {
		return nil, false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.allDealsLocked(), true
}

// AddDeal assigns the next id above every existing static and dynamic id,
// stores the deal, zeroes its redemption counter, and rebalances views.
func (s *CatalogStore) AddDeal(slug string, deal domain.Deal) (domain.Deal, bool) {
	st, ok := s.state(slug)
	if !ok {
		return domain.Deal{}, false
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	maxID := 0
	for _, d := range st.allDealsLocked() {
		if d.ID > maxID {
			maxID = d.ID
		}
	}
	deal.ID = maxID + 1

	st.dynamic = append(st.dynamic, deal)
	st.redemptions[deal.ID] = 0
	st.recomputeViews()
	return deal, true
}

// IncrementRedemption bumps a deal's counter and returns the new count. The
// counter is keyed by id alone; unseen ids start at zero.
func (s *CatalogStore) IncrementRedemption(slug string, dealID int) (int, bool) {
	st, ok := s.state(slug)
	if !ok {
		return 0, false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.redemptions[dealID]++
	return st.redemptions[dealID], true
}

// Redemptions returns a copy of the partner's per-deal redemption counts.
func (s *CatalogStore) Redemptions(slug string) (map[int]int, bool) {
	st, ok := s.state(slug)
	if !ok {
		return nil, false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return copyCounts(st.redemptions), true
}

// Views returns a copy of the partner's per-deal view counts.
func (s *CatalogStore) Views(slug string) (map[int]int, bool) {
	st, ok := s.state(slug)
	if !ok {
		return nil, false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return copyCounts(st.views), true
}

func (s *CatalogStore) state(slug string) (*partnerState, bool) {
	st, ok := s.states[strings.ToLower(slug)]
	return st, ok
}

// allDealsLocked returns static ++ dynamic. Caller holds st.mu.
func (st *partnerState) allDealsLocked() []domain.Deal {
	out := make([]domain.Deal, 0, len(st.partner.Deals)+len(st.dynamic))
	out = append(out, st.partner.Deals...)
	out = append(out, st.dynamic...)
	return out
}

// recomputeViews assigns view counters for every deal. The fixed-total
// partner gets an even split of fixedViewsTotal (earlier deals absorb the
// remainder); everyone else gets a stable value derived from partner and
// deal ids. Caller holds st.mu (or has exclusive access during seeding).
func (st *partnerState) recomputeViews() {
	deals := st.allDealsLocked()
	if strings.ToLower(st.partner.Slug) == fixedViewsSlug {
		base := fixedViewsTotal / len(deals)
		remainder := fixedViewsTotal % len(deals)
		for i, d := range deals {
			views := base
			if i < remainder {
				views++
			}
			st.views[d.ID] = views
		}
		return
	}
	for _, d := range deals {
		seed := st.partner.ID*1000 + d.ID
		st.views[d.ID] = 100 + seed%900
	}
}

func copyCounts(in map[int]int) map[int]int {
	out := make(map[int]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
