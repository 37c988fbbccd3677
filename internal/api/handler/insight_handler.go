package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/spendperks/rewards-api/internal/api/metrics"
	"github.com/spendperks/rewards-api/internal/core/domain"
	"github.com/spendperks/rewards-api/internal/core/ports"
)

// InsightHandler proxies the AI features. Both routes take their input from
// the request body, the UI sends the snapshot it is currently rendering.
type InsightHandler struct {
	insights ports.InsightService
}

func NewInsightHandler(insights ports.InsightService) *InsightHandler {
	return &InsightHandler{insights: insights}
}

type generateRoastRequest struct {
	Balance        float64               `json:"balance"`
	MonthlyEarned  float64               `json:"monthlyEarned"`
	RecentPayments []ports.RecentPayment `json:"recentPayments"`
}

type analyzeWellbeingRequest struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// GenerateRoast handles POST /api/user/generate-roast.
func (h *InsightHandler) GenerateRoast(c echo.Context) error {
	var req generateRoastRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	start := time.Now()
	roast, err := h.insights.GenerateRoast(c.Request().Context(), ports.RoastInput{
		Balance:        decimal.NewFromFloat(req.Balance),
		MonthlyEarned:  decimal.NewFromFloat(req.MonthlyEarned),
		RecentPayments: req.RecentPayments,
	})
	metrics.AIRequestDuration.WithLabelValues("roast", resultLabel(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"roast": roast})
}

// AnalyzeWellbeing handles POST /api/user/analyze-wellbeing.
func (h *InsightHandler) AnalyzeWellbeing(c echo.Context) error {
	var req analyzeWellbeingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	start := time.Now()
	report, err := h.insights.AnalyzeWellbeing(c.Request().Context(), req.Transactions)
	metrics.AIRequestDuration.WithLabelValues("wellbeing", resultLabel(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, report)
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
