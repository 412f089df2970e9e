// Package account implements the ledger operations and the transfer
// engine on top of an AccountRepository.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/minibank/minibank/pkg/domain/account"
	"github.com/minibank/minibank/pkg/repository"
)

// openAttempts bounds the random id draws on collision before Open gives
// up with account.ErrAccountIDExhausted.
const openAttempts = 10

// Service provides account opening, lookups, deposits, withdrawals and
// transfers. Per-account atomicity comes from the repository; the service
// adds validation and composition.
type Service struct {
	repo   repository.AccountRepository
	logger *slog.Logger
}

// New creates a ledger service.
func New(repo repository.AccountRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Open allocates a new account with a zero balance. The id is a random
// draw from the full 32-bit space, retried a bounded number of times on
// collision.
func (s *Service) Open(ctx context.Context, name string) (*account.Account, error) {
	log := s.logger.With("name", name)
	for range openAttempts {
		a := account.New(rand.Uint32(), name)
		err := s.repo.Create(ctx, a)
		if errors.Is(err, repository.ErrDuplicateID) {
			log.Warn("account id collision, retrying", "account_id", a.ID)
			continue
		}
		if err != nil {
			return nil, err
		}
		log.Info("account opened", "account_id", a.ID)
		return a, nil
	}
	log.Error("account id draws exhausted", "attempts", openAttempts)
	return nil, account.ErrAccountIDExhausted
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id uint32) (*account.Account, error) {
	return s.repo.Get(ctx, id)
}

// Deposit credits the account and returns the updated record.
func (s *Service) Deposit(ctx context.Context, id uint32, amount account.Amount) (*account.Account, error) {
	a, err := s.repo.Deposit(ctx, id, amount)
	if err != nil {
		s.logger.Warn("deposit failed", "account_id", id, "amount", amount.Uint64(), "error", err)
		return nil, err
	}
	s.logger.Info("deposit completed", "account_id", id, "amount", amount.Uint64(), "balance", a.Balance)
	return a, nil
}

// Withdraw debits the account and returns the updated record. The balance
// is unchanged when it cannot cover the amount.
func (s *Service) Withdraw(ctx context.Context, id uint32, amount account.Amount) (*account.Account, error) {
	a, err := s.repo.Withdraw(ctx, id, amount)
	if err != nil {
		s.logger.Warn("withdrawal failed", "account_id", id, "amount", amount.Uint64(), "error", err)
		return nil, err
	}
	s.logger.Info("withdrawal completed", "account_id", id, "amount", amount.Uint64(), "balance", a.Balance)
	return a, nil
}

// Transfer moves amount from one account to another. All validation runs
// before any mutation: the two ids must differ, the amount must be
// positive and both accounts must exist. Execution then withdraws from
// the source and deposits into the destination as two sequential steps.
// The two steps are not wrapped in a combined lock: if the deposit fails
// after the withdrawal succeeded, the withdrawn funds are lost rather
// than duplicated. That window is accepted for the ephemeral in-memory
// store; a durable backend must close it with a single transaction.
func (s *Service) Transfer(ctx context.Context, fromID, toID uint32, amount account.Amount) error {
	log := s.logger.With("from", fromID, "to", toID, "amount", amount.Uint64())
	if fromID == toID {
		log.Warn("transfer to same account rejected")
		return account.ErrSameAccountTransfer
	}
	if !amount.IsPositive() {
		log.Warn("non-positive transfer amount rejected")
		return account.ErrInvalidAmount
	}
	if _, err := s.repo.Get(ctx, fromID); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if _, err := s.repo.Get(ctx, toID); err != nil {
		return fmt.Errorf("destination: %w", err)
	}

	if _, err := s.repo.Withdraw(ctx, fromID, amount); err != nil {
		log.Warn("transfer withdrawal failed", "error", err)
		return fmt.Errorf("source: %w", err)
	}
	if _, err := s.repo.Deposit(ctx, toID, amount); err != nil {
		// Funds are already withdrawn at this point; see doc comment.
		log.Error("transfer deposit failed after withdrawal", "error", err)
		return fmt.Errorf("destination: %w", err)
	}
	log.Info("transfer completed")
	return nil
}
