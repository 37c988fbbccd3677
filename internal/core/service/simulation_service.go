package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/spendperks/rewards-api/internal/api/metrics"
	"github.com/spendperks/rewards-api/internal/core/domain"
	"github.com/spendperks/rewards-api/internal/core/ports"
)

const (
	rentAmount              = 450
	roastThreshold          = 1300 // monthly spend that triggers a regular roast
	emergencyRoastThreshold = 1500 // monthly spend that triggers an emergency roast
	monthsInYear            = 12
	transactionsPerMonth    = 10
	simulationYear          = 2025

	// DefaultSimulationInterval is the wall-clock gap between simulated
	// months. The UI animates on this cadence; do not change it lightly.
	DefaultSimulationInterval = 4 * time.Second
)

// run tracks one active simulation. monthIndex and the stop flag are only
// touched under SimulationService.mu; the timer handle lets Stop cancel the
// pending tick.
type run struct {
	monthIndex    int
	stopRequested bool
	timer         *time.Timer
}

// SimulationService synthesizes a year of transactions for a user, one month
// per interval, emitting progress and threshold events as it goes. At most
// one run per user.
type SimulationService struct {
	mu       sync.Mutex
	runs     map[string]*run
	ledger   ports.LedgerRepository
	events   ports.Broadcaster
	interval time.Duration
	logger   zerolog.Logger
}

func NewSimulationService(ledger ports.LedgerRepository, events ports.Broadcaster, interval time.Duration, logger zerolog.Logger) *SimulationService {
	if interval <= 0 {
		interval = DefaultSimulationInterval
	}
	return &SimulationService{
		runs:     make(map[string]*run),
		ledger:   ledger,
		events:   events,
		interval: interval,
		logger:   logger,
	}
}

// Start begins a run for the user: the ledger is wiped back to its
// provisioning state, month 0 executes immediately, and subsequent months
// are scheduled on the interval. A second Start while running fails without
// touching the ledger.
func (s *SimulationService) Start(ctx context.Context, userID string) (*ports.StartSimulationResult, error) {
	s.mu.Lock()
	if _, active := s.runs[userID]; active {
		s.mu.Unlock()
		return nil, domain.ErrSimulationRunning
	}
	s.runs[userID] = &run{}
	s.mu.Unlock()

	s.ledger.Reset(userID)
	s.logger.Info().Str("user_id", userID).Msg("simulation started")

	s.tick(userID)

	return &ports.StartSimulationResult{
		Months:               monthsInYear,
		TransactionsPerMonth: transactionsPerMonth,
		IntervalSeconds:      s.interval.Seconds(),
	}, nil
}

// Stop cancels the user's run: flag set, pending timer cancelled, stop event
// emitted. An in-flight tick finishes its month and then observes the
// cancellation instead of scheduling another.
func (s *SimulationService) Stop(ctx context.Context, userID string) error {
	s.mu.Lock()
	r, active := s.runs[userID]
	if !active {
		s.mu.Unlock()
		return domain.ErrSimulationNotRunning
	}
	r.stopRequested = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	delete(s.runs, userID)
	s.mu.Unlock()

	s.events.Publish(ports.EventTestStopped, map[string]any{"userId": userID})
	s.logger.Info().Str("user_id", userID).Msg("simulation stopped")
	return nil
}

// Running reports whether a run is active for the user.
func (s *SimulationService) Running(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, active := s.runs[userID]
	return active
}

// tick executes one simulated month, then either schedules the next tick or
// finishes the run. A panic inside a tick kills only that run, never the
// process.
func (s *SimulationService) tick(userID string) {
	defer func() {
		if rec := recover(); rec != nil {
			s.mu.Lock()
			delete(s.runs, userID)
			s.mu.Unlock()
			s.events.Publish(ports.EventTestStopped, map[string]any{"userId": userID})
			s.logger.Error().Str("user_id", userID).Any("panic", rec).Msg("simulation tick panicked, run aborted")
		}
	}()

	s.mu.Lock()
	r, active := s.runs[userID]
	if !active || r.stopRequested {
		// Stop already emitted the event and removed the run.
		s.mu.Unlock()
		return
	}
	if r.monthIndex >= monthsInYear {
		delete(s.runs, userID)
		s.mu.Unlock()
		metrics.SimulationRunsTotal.WithLabelValues("completed").Inc()
		s.events.Publish(ports.EventTestComplete, map[string]any{"userId": userID})
		return
	}
	monthIndex := r.monthIndex
	s.mu.Unlock()

	target := monthlySpendingTarget(monthIndex)
	label := monthLabel(monthIndex)

	s.events.Publish(ports.EventMonthUpdate, map[string]any{
		"userId":      userID,
		"month":       label,
		"monthIndex":  monthIndex + 1,
		"totalMonths": monthsInYear,
	})

	txns := synthesizeMonth(userID, monthIndex, target)
	s.ledger.AppendBatch(userID, txns)
	metrics.TransactionsRecordedTotal.WithLabelValues("simulation").Add(float64(len(txns)))

	s.events.Publish(ports.EventRefreshWallet, map[string]any{"userId": userID})
	s.events.Publish(ports.EventRefreshBalance, map[string]any{"userId": userID})

	s.logger.Debug().
		Str("user_id", userID).
		Str("month", label).
		Int("target", target).
		Int("transactions", len(txns)).
		Msg("simulated month applied")

	switch {
	case target >= emergencyRoastThreshold:
		s.publishRoastTrigger(userID, label, target, "emergency", emergencyRoastThreshold)
	case target >= roastThreshold:
		s.publishRoastTrigger(userID, label, target, "regular", roastThreshold)
	}

	s.mu.Lock()
	r, active = s.runs[userID]
	if !active || r.stopRequested {
		s.mu.Unlock()
		return
	}
	r.monthIndex++
	if r.monthIndex >= monthsInYear {
		delete(s.runs, userID)
		s.mu.Unlock()
		metrics.SimulationRunsTotal.WithLabelValues("completed").Inc()
		s.events.Publish(ports.EventTestComplete, map[string]any{"userId": userID})
		s.logger.Info().Str("user_id", userID).Msg("simulation complete")
		return
	}
	r.timer = time.AfterFunc(s.interval, func() { s.tick(userID) })
	s.mu.Unlock()
}

func (s *SimulationService) publishRoastTrigger(userID, month string, spending int, kind string, threshold int) {
	s.events.Publish(ports.EventRoastTrigger, map[string]any{
		"userId":          userID,
		"month":           month,
		"monthlySpending": spending,
		"thresholdType":   kind,
		"threshold":       threshold,
	})
}

// monthlySpendingTarget follows the scripted shape: a gentle ramp, a snap to
// each roast threshold, then a noisy high plateau.
func monthlySpendingTarget(monthIndex int) int {
	switch {
	case monthIndex < 3:
		return 200 + monthIndex*50
	case monthIndex == 3:
		return roastThreshold
	case monthIndex == 4:
		return emergencyRoastThreshold
	default:
		return emergencyRoastThreshold + rand.IntN(500)
	}
}

// monthLabel renders e.g. "January 2025".
func monthLabel(monthIndex int) string {
	return time.Date(simulationYear, time.Month(monthIndex+1), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// synthesizeMonth builds the month's 10 transactions: fixed rent on the 15th
// plus nine generated payments whose sum stays within the spending target.
func synthesizeMonth(userID string, monthIndex, target int) []domain.Transaction {
	month := time.Month(monthIndex + 1)
	txns := make([]domain.Transaction, 0, transactionsPerMonth)

	rentDate := time.Date(simulationYear, month, 15, 0, 0, 0, 0, time.UTC)
	rent := decimal.NewFromInt(rentAmount)
	txns = append(txns, domain.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      rent,
		Description: "Rent Payment",
		Type:        domain.TypeRent,
		Credits:     domain.CreditsFor(rent),
		Date:        rentDate,
		Merchant:    "Rent Payment",
	})

	amounts := monthlyAmounts(monthIndex, target-rentAmount)
	for _, amount := range amounts {
		day := rand.IntN(28) + 1
		date := time.Date(simulationYear, month, day, 0, 0, 0, 0, time.UTC)
		txType := weightedType()
		descriptions := simulationDescriptions[txType]
		description := descriptions[rand.IntN(len(descriptions))]
		amt := decimal.NewFromInt(int64(amount))

		txns = append(txns, domain.Transaction{
			ID:          uuid.NewString(),
			UserID:      userID,
			Amount:      amt,
			Description: description,
			Type:        txType,
			Credits:     domain.CreditsFor(amt),
			Date:        date,
			Merchant:    description,
		})
	}
	return txns
}

// monthlyAmounts generates the nine non-rent amounts: 2-3 high values in
// [200,300], the rest biased toward small values in [10,300], shuffled, then
// adjusted so the sum stays within budget. Values are clamped to [10,300]
// and nudged apart to avoid exact duplicates.
func monthlyAmounts(monthIndex, budget int) []int {
	const count = transactionsPerMonth - 1
	amounts := make([]int, 0, count)
	used := make(map[int]bool)

	highCount := rand.IntN(2) + 2
	for i := 0; i < highCount; i++ {
		value := 0
		for attempts := 0; attempts < 20; attempts++ {
			value = rand.IntN(101) + 200
			if !used[value] {
				break
			}
		}
		used[value] = true
		amounts = append(amounts, value)
	}

	for i := 0; i < count-highCount; i++ {
		amount := 0
		for attempts := 0; attempts < 30; attempts++ {
			// Squaring biases the draw toward small amounts.
			r := rand.Float64()
			amount = int(r*r*290) + 10
			if !used[amount] {
				break
			}
		}
		if used[amount] {
			amount = clampAmount(amount + rand.IntN(20) - 10)
		}
		used[amount] = true
		amounts = append(amounts, amount)
	}

	rand.Shuffle(len(amounts), func(i, j int) {
		amounts[i], amounts[j] = amounts[j], amounts[i]
	})

	total := sum(amounts)
	if total > budget {
		scaleToBudget(amounts, budget, total)
		spreadNearDuplicates(amounts)
	} else if total < budget && monthIndex < 4 {
		// Ramp-up months may be topped up toward the target.
		boost := (budget - total) / 3
		for _, idx := range rand.Perm(len(amounts))[:3] {
			amounts[idx] = clampAmount(amounts[idx] + boost)
		}
	}

	if total = sum(amounts); total > budget {
		scaleToBudget(amounts, budget, total)
	}
	for i := range amounts {
		amounts[i] = clampAmount(amounts[i])
	}
	return amounts
}

func weightedType() domain.TransactionType {
	r := rand.Float64()
	switch {
	case r < 0.4:
		return domain.TypePayment
	case r < 0.7:
		return domain.TypeBills
	case r < 0.9:
		return domain.TypeUtilities
	default:
		return domain.TypePayment
	}
}

var simulationDescriptions = map[domain.TransactionType][]string{
	domain.TypeRent:      {"Rent Payment", "Monthly Rent", "Housing Payment"},
	domain.TypeUtilities: {"Electricity Bill", "Gas & Water Bill", "Energy Bill", "Heating"},
	domain.TypeBills:     {"Internet & Subscriptions", "Mobile Phone", "Gym Membership", "Streaming Services"},
	domain.TypePayment:   {"Groceries", "Food Delivery", "Transport", "Entertainment", "Shopping", "Takeaway", "Coffee & Snacks"},
}

func scaleToBudget(amounts []int, budget, total int) {
	for i, amt := range amounts {
		amounts[i] = clampAmount(amt * budget / total)
	}
}

// spreadNearDuplicates nudges pairs that landed within 5 of each other after
// scaling so the month still looks organic.
func spreadNearDuplicates(amounts []int) {
	for i := 0; i < len(amounts); i++ {
		for j := i + 1; j < len(amounts); j++ {
			if abs(amounts[i]-amounts[j]) < 5 && amounts[i] > 10 {
				amounts[i] = clampAmount(amounts[i] - rand.IntN(5))
				amounts[j] = clampAmount(amounts[j] + rand.IntN(5))
			}
		}
	}
}

func clampAmount(v int) int {
	if v < 10 {
		return 10
	}
	if v > 300 {
		return 300
	}
	return v
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
