package ports

import "context"

// StartSimulationResult describes a freshly started run so the handler can
// echo the contract back to the client.
type StartSimulationResult struct {
	Months               int
	TransactionsPerMonth int
	IntervalSeconds      float64
}

// SimulationService runs the scripted year-long transaction generator, one
// cancellable run per user.
type SimulationService interface {
	// Start begins a run, resetting the user's ledger first. Fails with
	// domain.ErrSimulationRunning if a run is already active for the user.
	Start(ctx context.Context, userID string) (*StartSimulationResult, error)

	// Stop cancels the active run. Fails with domain.ErrSimulationNotRunning
	// when there is none.
	Stop(ctx context.Context, userID string) error

	// Running reports whether a run is active for the user.
	Running(userID string) bool
}
