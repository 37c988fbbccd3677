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

// WalletHandler exposes the user's balance and transaction log.
type WalletHandler struct {
	ledger ports.LedgerService
}

func NewWalletHandler(ledger ports.LedgerService) *WalletHandler {
	return &WalletHandler{ledger: ledger}
}

type createTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Date        *time.Time      `json:"date"`
	Merchant    string          `json:"merchant"`
}

// Balance handles GET /api/user/balance.
func (h *WalletHandler) Balance(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	balance, err := h.ledger.Balance(c.Request().Context(), sess.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"balance": balance,
	})
}

// Wallet handles GET /api/user/wallet, newest transaction first.
func (h *WalletHandler) Wallet(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	txns, err := h.ledger.Transactions(c.Request().Context(), sess.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":      true,
		"transactions": txns,
	})
}

// CreateTransaction handles POST /api/user/transactions. The stored
// transaction comes back with its frozen cashback credits.
func (h *WalletHandler) CreateTransaction(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := ports.RecordTransactionInput{
		Amount:      req.Amount,
		Description: req.Description,
		Type:        domain.TransactionType(req.Type),
		Merchant:    req.Merchant,
	}
	if req.Date != nil {
		in.Date = *req.Date
	}

	txn, err := h.ledger.Record(c.Request().Context(), sess.UserID, in)
	if err != nil {
		return err
	}
	metrics.TransactionsRecordedTotal.WithLabelValues("api").Inc()

	return c.JSON(http.StatusCreated, map[string]any{
		"success":     true,
		"transaction": txn,
	})
}
