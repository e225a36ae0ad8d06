package stubserver

import (
	"errors"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/domain"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

// Store keeps account balances in memory. It backs the stub account
// service used for local development and tests; the real service owns
// persistent state, so nothing here survives a restart on purpose.
type Store struct {
	mu       sync.RWMutex
	balances map[string]decimal.Decimal
}

func NewStore() *Store {
	return &Store{balances: make(map[string]decimal.Decimal)}
}

// Seed creates or replaces an account with the given balance.
func (s *Store) Seed(accountID string, balance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[accountID] = balance
}

// Exists reports whether the account is known.
func (s *Store) Exists(accountID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.balances[accountID]
	return ok
}

// Balance returns the current balance of the account.
func (s *Store) Balance(accountID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balance, ok := s.balances[accountID]
	if !ok {
		return decimal.Decimal{}, domain.ErrAccountNotFound
	}
	return balance, nil
}

// Transfer atomically debits from and credits to, returning a new
// transaction ID. Unlike the client's two-round-trip protocol, the stub
// holds its lock across check and debit, so it never overdraws.
func (s *Store) Transfer(from, to string, amount decimal.Decimal) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fromBalance, ok := s.balances[from]
	if !ok {
		return "", domain.ErrAccountNotFound
	}
	toBalance, ok := s.balances[to]
	if !ok {
		return "", domain.ErrAccountNotFound
	}

	if amount.GreaterThan(fromBalance) {
		return "", ErrInsufficientFunds
	}

	// a self-transfer is funds-checked but moves nothing
	if from != to {
		s.balances[from] = fromBalance.Sub(amount)
		s.balances[to] = toBalance.Add(amount)
	}

	return ulid.Make().String(), nil
}
