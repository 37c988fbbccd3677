package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/spendperks/rewards-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// insufficientFundsResponse extends the envelope with the balance context a
// client needs to render a useful rejection.
type insufficientFundsResponse struct {
	Error          string  `json:"error"`
	CurrentBalance float64 `json:"currentBalance"`
	Required       float64 `json:"required"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		// Insufficient funds gets an extended envelope with the amounts.
		var ife *domain.InsufficientFundsError
		if errors.As(err, &ife) {
			_ = c.JSON(http.StatusBadRequest, insufficientFundsResponse{
				Error:          "Insufficient balance",
				CurrentBalance: ife.CurrentBalance.InexactFloat64(),
				Required:       ife.Required.InexactFloat64(),
			})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic HTTP codes. Unknown and expired
	// sessions both return 401 so the API does not leak whether a token ever
	// existed.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, "Not authenticated"
	case errors.Is(err, domain.ErrPartnerNotFound):
		return http.StatusNotFound, "Partner not found"
	case errors.Is(err, domain.ErrMissingField):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, "Insufficient balance"
	case errors.Is(err, domain.ErrSimulationRunning):
		return http.StatusBadRequest, "Test transaction generator is already running"
	case errors.Is(err, domain.ErrSimulationNotRunning):
		return http.StatusBadRequest, "No test transaction generator is running"
	case errors.Is(err, domain.ErrUpstreamRateLimited):
		return http.StatusTooManyRequests, "Rate limit exceeded. Please try again in a moment!"
	case errors.Is(err, domain.ErrUpstreamQuota):
		return http.StatusForbidden, "API key invalid or quota exceeded"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "AI service unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
