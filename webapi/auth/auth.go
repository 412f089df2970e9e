// Package auth exposes the public identity endpoints: registration,
// login and raw token issuance. None of them sit behind the
// authentication gate.
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	authsvc "github.com/minibank/minibank/pkg/service/auth"
	"github.com/minibank/minibank/webapi/common"
)

// Routes registers the identity endpoints.
//
//   - POST /api/auth/register : create a user
//   - POST /api/auth/login    : exchange credentials for a token
//   - POST /api/auth/token    : issue a token for an existing user id
func Routes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/api/auth/register", Register(authSvc))
	app.Post("/api/auth/login", Login(authSvc))
	app.Post("/api/auth/token", Token(authSvc))
}

// Register creates a new user and responds 201 with its id and email.
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterRequest](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Register(c.Context(), input.Email, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Registration failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered", RegisterResponse{
			ID:    u.ID.String(),
			Email: u.Email,
		})
	}
}

// Login verifies credentials and responds with a bearer token. The
// failure response does not reveal whether the email or the password was
// wrong.
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginRequest](c)
		if input == nil {
			return err
		}
		token, err := authSvc.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Login failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Login successful", TokenResponse{
			AccessToken: token,
		})
	}
}

// Token issues a bearer token for an existing user id.
func Token(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TokenRequest](c)
		if input == nil {
			return err
		}
		userID, err := uuid.Parse(input.UserID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err, fiber.StatusBadRequest)
		}
		token, err := authSvc.Token(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Token issuance failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Token issued", TokenResponse{
			AccessToken: token,
		})
	}
}
