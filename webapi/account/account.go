// Package account exposes the ledger endpoints. Every route sits behind
// the authentication gate; the authenticated identity is used for audit
// logging only, not for authorization — any valid token may operate on
// any account id.
package account

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/minibank/minibank/pkg/config"
	"github.com/minibank/minibank/pkg/middleware"
	accountsvc "github.com/minibank/minibank/pkg/service/account"
	authsvc "github.com/minibank/minibank/pkg/service/auth"
	"github.com/minibank/minibank/webapi/common"
)

// Routes registers the ledger endpoints.
//
//   - POST /api/accounts               : open a new account
//   - GET  /api/accounts/:id           : fetch an account
//   - POST /api/accounts/:id/deposit   : credit an account
//   - POST /api/accounts/:id/withdraw  : debit an account
//   - POST /api/transfers              : move funds between two accounts
func Routes(app *fiber.App, accountSvc *accountsvc.Service, authSvc *authsvc.Service, cfg *config.AppConfig) {
	app.Post("/api/accounts", middleware.JwtProtected(cfg.Jwt), CreateAccount(accountSvc, authSvc))
	app.Get("/api/accounts/:id", middleware.JwtProtected(cfg.Jwt), GetAccount(accountSvc, authSvc))
	app.Post("/api/accounts/:id/deposit", middleware.JwtProtected(cfg.Jwt), Deposit(accountSvc, authSvc))
	app.Post("/api/accounts/:id/withdraw", middleware.JwtProtected(cfg.Jwt), Withdraw(accountSvc, authSvc))
	app.Post("/api/transfers", middleware.JwtProtected(cfg.Jwt), Transfer(accountSvc, authSvc))
}

// CreateAccount opens an account with a zero balance and responds 201
// with the full record.
func CreateAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.Open(c.Context(), input.Name)
		if err != nil {
			log.Errorf("failed to open account for user %s: %v", userID, err)
			return common.ProblemDetailsJSON(c, "Failed to open account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account opened", a)
	}
}

// GetAccount fetches an account by id.
func GetAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := currentUserID(c, authSvc); err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		id, err := accountID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		a, err := accountSvc.Get(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Account lookup failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account found", a)
	}
}

// Deposit credits an account and responds with the updated record.
func Deposit(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		id, err := accountID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[DepositRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.Deposit(c.Context(), id, input.Amount)
		if err != nil {
			log.Warnf("deposit by user %s into account %d failed: %v", userID, id, err)
			return common.ProblemDetailsJSON(c, "Deposit failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposit successful", a)
	}
}

// Withdraw debits an account and responds with the updated record.
func Withdraw(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		id, err := accountID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[WithdrawRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.Withdraw(c.Context(), id, input.Amount)
		if err != nil {
			log.Warnf("withdrawal by user %s from account %d failed: %v", userID, id, err)
			return common.ProblemDetailsJSON(c, "Withdrawal failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal successful", a)
	}
}

// Transfer moves funds between two accounts and responds with no data on
// success.
func Transfer(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		if err := accountSvc.Transfer(c.Context(), input.FromAccountID, input.ToAccountID, input.Amount); err != nil {
			log.Warnf("transfer by user %s from %d to %d failed: %v", userID, input.FromAccountID, input.ToAccountID, err)
			return common.ProblemDetailsJSON(c, "Transfer failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer successful", nil)
	}
}

func currentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "missing user context")
	}
	return authSvc.CurrentUserID(token)
}

func accountID(c *fiber.Ctx) (uint32, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(id), nil
}
