package memory

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/spendperks/rewards-api/internal/core/domain"
)

// account bundles a user's balance and transaction log under one mutex so
// every mutation for a user is serialized, whatever goroutine drives it.
type account struct {
	mu      sync.Mutex
	balance decimal.Decimal
	txns    []domain.Transaction
}

// SeedFunc produces the synthetic starter history for a freshly provisioned
// account. May be nil.
type SeedFunc func(userID string) []domain.Transaction

// LedgerStore is the in-memory ledger. Accounts are provisioned explicitly on
// first touch: starting balance from the directory, plus an optional seeded
// demo history. Seeded transactions do not credit the balance; they are part
// of the account's initial state.
type LedgerStore struct {
	mu       sync.RWMutex
	accounts map[string]*account
	starting func(userID string) decimal.Decimal
	seed     SeedFunc
}

// NewLedgerStore creates a LedgerStore. starting must not be nil.
func NewLedgerStore(starting func(userID string) decimal.Decimal, seed SeedFunc) *LedgerStore {
	return &LedgerStore{
		accounts: make(map[string]*account),
		starting: starting,
		seed:     seed,
	}
}

// acquire returns the user's account with its mutex held, provisioning it
// first if unseen. The caller must call the returned release func.
func (s *LedgerStore) acquire(userID string) (*account, func()) {
	s.mu.RLock()
	a, ok := s.accounts[userID]
	s.mu.RUnlock()
	if !ok {
		s.mu.Lock()
		if a, ok = s.accounts[userID]; !ok {
			a = &account{balance: s.starting(userID)}
			if s.seed != nil {
				a.txns = s.seed(userID)
				sortByDateDesc(a.txns)
			}
			s.accounts[userID] = a
		}
		s.mu.Unlock()
	}
	a.mu.Lock()
	return a, a.mu.Unlock
}

// Balance returns the user's current balance.
func (s *LedgerStore) Balance(userID string) decimal.Decimal {
	a, release := s.acquire(userID)
	defer release()
	return a.balance
}

// Transactions returns a copy of the user's log, date descending.
func (s *LedgerStore) Transactions(userID string) []domain.Transaction {
	a, release := s.acquire(userID)
	defer release()
	out := make([]domain.Transaction, len(a.txns))
	copy(out, a.txns)
	return out
}

// Append stores one transaction, crediting its reward credits when credit is
// true, and keeps the log sorted by date descending.
func (s *LedgerStore) Append(userID string, txn domain.Transaction, credit bool) {
	a, release := s.acquire(userID)
	defer release()
	a.txns = append(a.txns, txn)
	sortByDateDesc(a.txns)
	if credit {
		a.balance = a.balance.Add(txn.Credits)
	}
}

// AppendBatch stores a batch, credits every transaction, and re-sorts, as a
// single serialized operation.
func (s *LedgerStore) AppendBatch(userID string, txns []domain.Transaction) {
	a, release := s.acquire(userID)
	defer release()
	a.txns = append(a.txns, txns...)
	sortByDateDesc(a.txns)
	for _, t := range txns {
		a.balance = a.balance.Add(t.Credits)
	}
}

// Debit atomically checks affordability and subtracts cost. On insufficient
// funds the balance is left untouched.
func (s *LedgerStore) Debit(userID string, cost decimal.Decimal) (prev, next decimal.Decimal, err error) {
	a, release := s.acquire(userID)
	defer release()
	if a.balance.LessThan(cost) {
		return a.balance, a.balance, &domain.InsufficientFundsError{
			CurrentBalance: a.balance,
			Required:       cost,
		}
	}
	prev = a.balance
	a.balance = a.balance.Sub(cost)
	return prev, a.balance, nil
}

// Reset clears the log and restores the provisioning balance. Seeded history
// is not re-created; the caller wants a clean slate.
func (s *LedgerStore) Reset(userID string) {
	a, release := s.acquire(userID)
	defer release()
	a.txns = nil
	a.balance = s.starting(userID)
}

// sortByDateDesc orders newest first; the sort is stable so same-date
// transactions keep their insertion order.
func sortByDateDesc(txns []domain.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date)
	})
}
