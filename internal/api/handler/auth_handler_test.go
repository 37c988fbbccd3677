package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/spendperks/rewards-api/internal/core/domain"
)

// stubSessionService serves one fixed user and one fixed dashboard identity.
type stubSessionService struct {
	loggedOut []string
}

func (s *stubSessionService) LoginUser(ctx context.Context, userID, password string) (*domain.Session, error) {
	if userID != "user" || password != "password" {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.Session{Token: "user-token", Kind: domain.SessionKindUser, UserID: "user", Name: "Jack"}, nil
}

func (s *stubSessionService) LoginDashboard(ctx context.Context, dashID, password string) (*domain.Session, error) {
	if dashID != "admin" || password != "admin" {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.Session{Token: "dash-token", Kind: domain.SessionKindDashboard, DashID: "admin", Name: "aldi", PartnerSlug: "aldi"}, nil
}

func (s *stubSessionService) Resolve(ctx context.Context, kind domain.SessionKind, token string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}

func (s *stubSessionService) Logout(ctx context.Context, kind domain.SessionKind, token string) error {
	s.loggedOut = append(s.loggedOut, token)
	return nil
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func newHandlerContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %q", rec.Body.String())
	}
	return body
}

func TestAuthHandler_UserLogin(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{})
	c, rec := newHandlerContext(jsonRequest(http.MethodPost, "/api/user/login", `{"userid":"user","password":"password"}`))

	if err := h.UserLogin(c); err != nil {
		t.Fatalf("UserLogin returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["success"] != true || body["cookie"] != "user-token" {
		t.Fatalf("unexpected body: %#v", body)
	}
	user := body["user"].(map[string]any)
	if user["userId"] != "user" || user["name"] != "Jack" {
		t.Fatalf("unexpected user block: %#v", user)
	}
	if _, present := user["dashId"]; present {
		t.Fatalf("user login must not carry a dashId")
	}
}

func TestAuthHandler_UserLogin_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{})

	for _, body := range []string{`{}`, `{"userid":"user"}`, `{"password":"password"}`} {
		c, _ := newHandlerContext(jsonRequest(http.MethodPost, "/api/user/login", body))
		err := h.UserLogin(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestAuthHandler_UserLogin_BadCredentials(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{})
	c, _ := newHandlerContext(jsonRequest(http.MethodPost, "/api/user/login", `{"userid":"user","password":"wrong"}`))

	if err := h.UserLogin(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_DashboardLogin(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{})
	c, rec := newHandlerContext(jsonRequest(http.MethodPost, "/api/dash/login", `{"dashid":"admin","password":"admin"}`))

	if err := h.DashboardLogin(c); err != nil {
		t.Fatalf("DashboardLogin returned error: %v", err)
	}

	body := decodeBody(t, rec)
	if body["cookie"] != "dash-token" {
		t.Fatalf("unexpected body: %#v", body)
	}
	user := body["user"].(map[string]any)
	if user["dashId"] != "admin" || user["name"] != "aldi" {
		t.Fatalf("unexpected user block: %#v", user)
	}
}

func TestAuthHandler_UserLogout(t *testing.T) {
	sessions := &stubSessionService{}
	h := NewAuthHandler(sessions)

	req := jsonRequest(http.MethodPost, "/api/user/logout", `{"cookie":"user-token"}`)
	c, rec := newHandlerContext(req)

	if err := h.UserLogout(c); err != nil {
		t.Fatalf("UserLogout returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(sessions.loggedOut) != 1 || sessions.loggedOut[0] != "user-token" {
		t.Fatalf("logout not forwarded: %v", sessions.loggedOut)
	}
}
