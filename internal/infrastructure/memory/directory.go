package memory

import (
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/spendperks/rewards-api/internal/core/domain"
)

// Directory is the fixed, hard-coded identity directory: one demo app user
// and one partner-dashboard operator. It is shaped so a real user table can
// replace it without changing any contract.
type Directory struct {
	users      map[string]domain.UserIdentity
	dashboards map[string]domain.DashboardIdentity
}

// NewDirectory builds the demo directory. Secrets are bcrypt-hashed at
// construction so login always goes through a hash comparison.
func NewDirectory() *Directory {
	return &Directory{
		users: map[string]domain.UserIdentity{
			"user": {
				UserID:          "user",
				Name:            "Jack",
				PasswordHash:    mustHash("password"),
				StartingBalance: decimal.NewFromFloat(56.75),
			},
		},
		dashboards: map[string]domain.DashboardIdentity{
			"admin": {
				DashID:       "admin",
				Name:         "aldi",
				PartnerSlug:  "aldi",
				PasswordHash: mustHash("admin"),
			},
		},
	}
}

// User looks up an app user by id.
func (d *Directory) User(id string) (domain.UserIdentity, bool) {
	u, ok := d.users[id]
	return u, ok
}

// Dashboard looks up a dashboard operator by id.
func (d *Directory) Dashboard(id string) (domain.DashboardIdentity, bool) {
	u, ok := d.dashboards[id]
	return u, ok
}

// StartingBalance returns the provisioning balance for a user id; unknown
// users start at zero.
func (d *Directory) StartingBalance(userID string) decimal.Decimal {
	if u, ok := d.users[userID]; ok {
		return u.StartingBalance
	}
	return decimal.Zero
}

func mustHash(secret string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}
