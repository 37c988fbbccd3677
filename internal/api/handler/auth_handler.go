package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spendperks/rewards-api/internal/api/metrics"
	"github.com/spendperks/rewards-api/internal/api/middleware"
	"github.com/spendperks/rewards-api/internal/core/domain"
	"github.com/spendperks/rewards-api/internal/core/ports"
)

// AuthHandler handles login and logout for both session kinds.
type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type userLoginRequest struct {
	UserID   string `json:"userid" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type dashboardLoginRequest struct {
	DashID   string `json:"dashid" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginUser struct {
	UserID string `json:"userId,omitempty"`
	DashID string `json:"dashId,omitempty"`
	Name   string `json:"name"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	Cookie  string    `json:"cookie"`
	User    loginUser `json:"user"`
}

// UserLogin handles POST /api/user/login.
//
// @Summary      Authenticate an app user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      userLoginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/user/login [post]
func (h *AuthHandler) UserLogin(c echo.Context) error {
	var req userLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := h.sessions.LoginUser(c.Request().Context(), req.UserID, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("user", "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("user", "success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Cookie:  sess.Token,
		User:    loginUser{UserID: sess.UserID, Name: sess.Name},
	})
}

// DashboardLogin handles POST /api/dash/login.
//
// @Summary      Authenticate a partner-dashboard operator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dashboardLoginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/dash/login [post]
func (h *AuthHandler) DashboardLogin(c echo.Context) error {
	var req dashboardLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := h.sessions.LoginDashboard(c.Request().Context(), req.DashID, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("dashboard", "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("dashboard", "success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Cookie:  sess.Token,
		User:    loginUser{DashID: sess.DashID, Name: sess.Name},
	})
}

// UserLogout handles POST /api/user/logout. The token is revoked; further
// requests with it fail with 401. Revoking an already revoked token is a 401
// as well, the middleware rejects it before the handler runs.
func (h *AuthHandler) UserLogout(c echo.Context) error {
	token := middleware.ExtractToken(c)
	if err := h.sessions.Logout(c.Request().Context(), domain.SessionKindUser, token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}
