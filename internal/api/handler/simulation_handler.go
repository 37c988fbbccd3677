package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spendperks/rewards-api/internal/api/metrics"
	"github.com/spendperks/rewards-api/internal/core/domain"
	"github.com/spendperks/rewards-api/internal/core/ports"
)

// SimulationHandler starts and stops the scripted transaction generator.
type SimulationHandler struct {
	simulation ports.SimulationService
}

func NewSimulationHandler(simulation ports.SimulationService) *SimulationHandler {
	return &SimulationHandler{simulation: simulation}
}

// StartTest handles GET /api/user/start-test. The response returns
// immediately; months play out in the background on the run's interval.
func (h *SimulationHandler) StartTest(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	result, err := h.simulation.Start(c.Request().Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrSimulationRunning) {
			return c.JSON(http.StatusBadRequest, map[string]any{
				"error":     "Test simulation is already running for this user",
				"isRunning": true,
			})
		}
		return err
	}
	metrics.SimulationRunsTotal.WithLabelValues("started").Inc()

	return c.JSON(http.StatusOK, map[string]any{
		"success":              true,
		"message":              "Test simulation started",
		"duration":             fmt.Sprintf("%d seconds", int(float64(result.Months)*result.IntervalSeconds)),
		"transactionsPerMonth": result.TransactionsPerMonth,
	})
}

// EndTest handles GET /api/user/end-test. Stopping when nothing runs is not
// an error, the reply just says so.
func (h *SimulationHandler) EndTest(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.simulation.Stop(c.Request().Context(), sess.UserID); err != nil {
		if errors.Is(err, domain.ErrSimulationNotRunning) {
			return c.JSON(http.StatusOK, map[string]any{
				"success":   false,
				"message":   "No test simulation is currently running for this user",
				"isRunning": false,
			})
		}
		return err
	}
	metrics.SimulationRunsTotal.WithLabelValues("stopped").Inc()

	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Test simulation stopped successfully",
		"isRunning": false,
	})
}
