package account

import "github.com/minibank/minibank/pkg/domain/account"

// CreateAccountRequest is the body of POST /api/accounts.
type CreateAccountRequest struct {
	Name string `json:"name" validate:"required"`
}

// DepositRequest is the body of POST /api/accounts/:id/deposit. Amount is
// a non-negative integer of minor units; negative or fractional input
// fails to decode before reaching the ledger.
type DepositRequest struct {
	Amount account.Amount `json:"amount"`
}

// WithdrawRequest is the body of POST /api/accounts/:id/withdraw.
type WithdrawRequest struct {
	Amount account.Amount `json:"amount"`
}

// TransferRequest is the body of POST /api/transfers.
type TransferRequest struct {
	FromAccountID uint32         `json:"from_account_id"`
	ToAccountID   uint32         `json:"to_account_id"`
	Amount        account.Amount `json:"amount"`
}
