// Package repository defines the storage contracts the services depend
// on. The in-memory implementations live under infra/repository/memory; a
// durable backend is a drop-in replacement behind the same interfaces.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minibank/minibank/pkg/domain/account"
	"github.com/minibank/minibank/pkg/domain/user"
)

// ErrDuplicateID is returned by Create when the chosen account id is
// already in use. Callers are expected to retry with a different draw.
var ErrDuplicateID = errors.New("id already in use")

// AccountRepository is the ledger's storage contract. Deposit and
// Withdraw are atomic per account: concurrent calls on the same id are
// totally ordered, calls on different ids may interleave freely. All
// methods return copies; callers never share the stored record.
type AccountRepository interface {
	// Create inserts a new account. Fails with ErrDuplicateID when the id
	// is taken.
	Create(ctx context.Context, a *account.Account) error
	// Get returns the account or account.ErrAccountNotFound.
	Get(ctx context.Context, id uint32) (*account.Account, error)
	// Deposit atomically credits the balance and returns the updated
	// record. Fails with account.ErrAccountNotFound or
	// account.ErrBalanceOverflow; on failure the balance is unchanged.
	Deposit(ctx context.Context, id uint32, amount account.Amount) (*account.Account, error)
	// Withdraw atomically debits the balance and returns the updated
	// record. Fails with account.ErrAccountNotFound or
	// account.ErrInsufficientFunds; on failure the balance is unchanged.
	Withdraw(ctx context.Context, id uint32, amount account.Amount) (*account.Account, error)
}

// UserRepository is the identity store's storage contract.
type UserRepository interface {
	// Create inserts a new user. Fails with user.ErrEmailTaken when the
	// email is already registered.
	Create(ctx context.Context, u *user.User) error
	// GetByEmail returns the user or user.ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	// GetByID returns the user or user.ErrUserNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}
