package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionKind separates the two disjoint identity spaces. App users and
// dashboard users live in different directories and their tokens are never
// interchangeable.
type SessionKind string

const (
	SessionKindUser      SessionKind = "user"
	SessionKindDashboard SessionKind = "dashboard"
)

// UserIdentity is an end user of the rewards app.
type UserIdentity struct {
	UserID          string
	Name            string
	PasswordHash    string
	StartingBalance decimal.Decimal
}

// DashboardIdentity is a partner-dashboard operator, mapped 1:1 to a partner
// slug (the original maps the dashboard display name to the slug).
type DashboardIdentity struct {
	DashID       string
	Name         string
	PartnerSlug  string
	PasswordHash string
}

// Session is an authenticated bearer session. Exactly one of UserID/DashID is
// set, depending on Kind. Sessions are immutable once created.
type Session struct {
	Token       string
	Kind        SessionKind
	UserID      string
	DashID      string
	Name        string
	PartnerSlug string // dashboard sessions only
	CreatedAt   time.Time
}
