package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/minibank/minibank/pkg/domain/account"
	"github.com/minibank/minibank/pkg/repository"
)

// AccountRepository keeps all accounts in a map guarded by a
// reader/writer lock. Each entry carries its own mutex, so balance
// mutations on the same account are totally ordered while operations on
// different accounts proceed concurrently. Accounts are never deleted, so
// an entry pointer stays valid once fetched under the map lock.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[uint32]*accountEntry
}

type accountEntry struct {
	mu  sync.Mutex
	acc account.Account
}

// NewAccountRepository returns an empty in-memory ledger.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[uint32]*accountEntry),
	}
}

// Create inserts the account, failing with repository.ErrDuplicateID when
// the id is already in use.
func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[a.ID]; exists {
		return fmt.Errorf("%w: account %d", repository.ErrDuplicateID, a.ID)
	}
	r.accounts[a.ID] = &accountEntry{acc: *a}
	return nil
}

// Get returns a copy of the account.
func (r *AccountRepository) Get(ctx context.Context, id uint32) (*account.Account, error) {
	entry, err := r.entry(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	acc := entry.acc
	return &acc, nil
}

// Deposit atomically credits the account and returns the updated copy.
func (r *AccountRepository) Deposit(ctx context.Context, id uint32, amount account.Amount) (*account.Account, error) {
	entry, err := r.entry(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := entry.acc.Credit(amount); err != nil {
		return nil, fmt.Errorf("%w: account %d", err, id)
	}
	acc := entry.acc
	return &acc, nil
}

// Withdraw atomically debits the account and returns the updated copy.
// The balance is left untouched when it cannot cover the amount.
func (r *AccountRepository) Withdraw(ctx context.Context, id uint32, amount account.Amount) (*account.Account, error) {
	entry, err := r.entry(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := entry.acc.Debit(amount); err != nil {
		return nil, fmt.Errorf("%w: account %d", err, id)
	}
	acc := entry.acc
	return &acc, nil
}

func (r *AccountRepository) entry(id uint32) (*accountEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, exists := r.accounts[id]
	if !exists {
		return nil, fmt.Errorf("%w: account %d", account.ErrAccountNotFound, id)
	}
	return entry, nil
}
