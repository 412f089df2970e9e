// Package auth implements the identity store: registration, credential
// verification and token issuance. Token verification happens in the
// middleware package, against the same signing secret.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/minibank/minibank/pkg/config"
	"github.com/minibank/minibank/pkg/domain/user"
	"github.com/minibank/minibank/pkg/repository"
	"github.com/minibank/minibank/pkg/utils"
)

// Service provides registration, login and token issuance.
type Service struct {
	repo   repository.UserRepository
	cfg    config.JwtConfig
	logger *slog.Logger
}

// New creates an identity service signing tokens with cfg.Secret.
func New(repo repository.UserRepository, cfg config.JwtConfig, logger *slog.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, logger: logger}
}

// Register creates a user with a hashed password. It fails with
// user.ErrEmailTaken when the email is already registered. The plaintext
// password is neither stored nor logged.
func (s *Service) Register(ctx context.Context, email, password string) (*user.User, error) {
	log := s.logger.With("email", email)
	u, err := user.New(email, password)
	if err != nil {
		log.Error("hashing password failed", "error", err)
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		log.Warn("registration failed", "error", err)
		return nil, err
	}
	log.Info("user registered", "user_id", u.ID)
	return u, nil
}

// Login verifies the credentials and returns a signed token. Unknown
// email and wrong password both yield user.ErrInvalidCredentials so the
// caller cannot tell the cases apart.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	log := s.logger.With("email", email)
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		log.Warn("login failed")
		return "", user.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, u.HashedPassword) {
		log.Warn("login failed")
		return "", user.ErrInvalidCredentials
	}
	token, err := s.generateToken(u.ID)
	if err != nil {
		log.Error("signing token failed", "error", err)
		return "", err
	}
	log.Info("login succeeded", "user_id", u.ID)
	return token, nil
}

// Token issues a signed token for an existing user id. It fails with
// user.ErrUserNotFound for an unknown id.
func (s *Service) Token(ctx context.Context, userID uuid.UUID) (string, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("token request for unknown user", "user_id", userID)
		return "", err
	}
	token, err := s.generateToken(u.ID)
	if err != nil {
		s.logger.Error("signing token failed", "error", err)
		return "", err
	}
	s.logger.Info("token issued", "user_id", u.ID)
	return token, nil
}

// CurrentUserID extracts the authenticated user id from a verified token.
// The claim shape is fixed: a token without a parseable sub claim is
// rejected.
func (s *Service) CurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("unexpected claims type")
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("missing sub claim: %w", err)
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed sub claim: %w", err)
	}
	return id, nil
}

func (s *Service) generateToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.Expiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}
