package usecase

import (
	"context"
	"errors"

	authdomain "spendtrack-backend/internal/auth/domain"
	authdto "spendtrack-backend/internal/auth/dto"
)

// Sentinel errors surfaced to the delivery layer. Login failures collapse
// to ErrInvalidCredentials regardless of cause so responses never reveal
// whether the email or the password was wrong.
var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrInactiveUser       = errors.New("user account is disabled")
	ErrStateMismatch      = errors.New("invalid state parameter")
	ErrProfileFetch       = errors.New("failed to get user information from Google")
	ErrOAuthUnavailable   = errors.New("Google OAuth is not configured")
)

// AuthUsecase orchestrates registration, login, token refresh, the Google
// OAuth flow and per-request identity resolution.
type AuthUsecase interface {
	Register(req *authdto.RegisterRequest) (*authdomain.User, error)
	Login(req *authdto.LoginRequest) (*authdto.TokenPair, error)
	Refresh(refreshToken string) (*authdto.TokenPair, error)
	GoogleAuthURL() (*authdto.AuthURLResponse, error)
	GoogleCallback(ctx context.Context, code, state string) (*authdto.TokenPair, *authdomain.User, error)

	// ResolveUser verifies an access token and loads the corresponding
	// user. It returns ErrInvalidToken, ErrUserNotFound or ErrInactiveUser
	// on the respective gate.
	ResolveUser(accessToken string) (*authdomain.User, error)
}
