// Package account contains the ledger's core entities: the Account
// aggregate and the Amount value type, together with the sentinel errors
// every ledger operation reports.
package account

import (
	"errors"
	"math"
)

var (
	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFunds is returned when an account balance cannot
	// cover a withdrawal or transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrBalanceOverflow is returned when a credit would push the balance
	// past the representable range instead of wrapping.
	ErrBalanceOverflow = errors.New("balance overflow")

	// ErrSameAccountTransfer is returned when a transfer names the same
	// account on both sides.
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")

	// ErrInvalidAmount is returned when a transfer amount is zero.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrAccountIDExhausted is returned when no unique account id could be
	// drawn within the allowed number of attempts.
	ErrAccountIDExhausted = errors.New("account id space exhausted")
)

// Amount is a count of minor currency units. It is a distinct type so a
// raw integer (an id, a balance) cannot be passed where an amount is
// expected without an explicit conversion. It marshals as a bare JSON
// integer; negative input fails to decode.
type Amount uint64

// NewAmount wraps a raw minor-unit count.
func NewAmount(v uint64) Amount { return Amount(v) }

// Uint64 unwraps the amount.
func (a Amount) Uint64() uint64 { return uint64(a) }

// IsPositive reports whether the amount is non-zero.
func (a Amount) IsPositive() bool { return a > 0 }

// Account is a single ledger entry. Balance is unsigned and only moves
// through Credit and Debit, so it can never be observed negative.
type Account struct {
	ID      uint32 `json:"id"`
	Name    string `json:"name"`
	Balance uint64 `json:"balance"`
}

// New returns an account with a zero balance.
func New(id uint32, name string) *Account {
	return &Account{ID: id, Name: name}
}

// Credit adds amount to the balance. It fails with ErrBalanceOverflow and
// leaves the balance untouched if the sum is not representable.
func (a *Account) Credit(amount Amount) error {
	if amount.Uint64() > math.MaxUint64-a.Balance {
		return ErrBalanceOverflow
	}
	a.Balance += amount.Uint64()
	return nil
}

// Debit subtracts amount from the balance. It fails with
// ErrInsufficientFunds and leaves the balance untouched if the balance
// does not cover the amount.
func (a *Account) Debit(amount Amount) error {
	if a.Balance < amount.Uint64() {
		return ErrInsufficientFunds
	}
	a.Balance -= amount.Uint64()
	return nil
}
