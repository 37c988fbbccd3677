package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")
	ErrPartnerNotFound      = errors.New("partner not found")
	ErrMissingField         = errors.New("missing required field")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrSimulationRunning    = errors.New("simulation already running")
	ErrSimulationNotRunning = errors.New("no simulation running")

	// Upstream AI failures, mapped from the provider's status codes.
	ErrUpstreamRateLimited = errors.New("upstream rate limit exceeded")
	ErrUpstreamQuota       = errors.New("upstream quota exceeded or key invalid")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// InsufficientFundsError carries the balance context a client needs to render
// a useful rejection. It unwraps to ErrInsufficientFunds so callers can match
// with errors.Is.
type InsufficientFundsError struct {
	CurrentBalance decimal.Decimal
	Required       decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: balance %s, required %s", e.CurrentBalance, e.Required)
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }
