package auth

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenRequest is the body of POST /api/auth/token.
type TokenRequest struct {
	UserID string `json:"user_id" validate:"required,uuid4"`
}

// RegisterResponse echoes the created identity. The password hash is
// never part of any response.
type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// TokenResponse carries a freshly signed bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}
