package usecase

import (
	"context"
	"strings"
	"time"

	authdomain "spendtrack-backend/internal/auth/domain"
	authdto "spendtrack-backend/internal/auth/dto"
	"spendtrack-backend/internal/auth/oauth"
	"spendtrack-backend/internal/auth/password"
	"spendtrack-backend/internal/auth/repository"
	"spendtrack-backend/internal/auth/token"
	"spendtrack-backend/pkg/logger"

	"github.com/google/uuid"
)

// authUsecase implements AuthUsecase
type authUsecase struct {
	userRepo repository.UserRepository
	hasher   *password.Hasher
	codec    *token.Codec
	google   *oauth.GoogleClient
	log      *logger.Logger
}

// NewAuthUsecase creates a new instance of authUsecase. The google client
// may be nil when OAuth is not configured; the OAuth operations then
// return ErrOAuthUnavailable.
func NewAuthUsecase(userRepo repository.UserRepository, hasher *password.Hasher, codec *token.Codec, google *oauth.GoogleClient, log *logger.Logger) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		codec:    codec,
		google:   google,
		log:      log.WithComponent("auth"),
	}
}

func (u *authUsecase) Register(req *authdto.RegisterRequest) (*authdomain.User, error) {
	existing, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		u.log.Warn().Str("email", req.Email).Msg("registration rejected: email taken")
		return nil, ErrEmailTaken
	}

	hashed, err := u.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Email:      req.Email,
		Username:   req.Username,
		FullName:   req.FullName,
		Password:   &hashed,
		Provider:   authdomain.ProviderLocal,
		IsActive:   true,
		IsVerified: false,
	}
	if err := u.userRepo.Create(user); err != nil {
		return nil, err
	}

	u.log.Info().Str("email", user.Email).Msg("user registered")
	return user, nil
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenPair, error) {
	user, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	// Unknown email, OAuth-only account and wrong password all collapse to
	// the same generic error.
	if user == nil || user.Password == nil || !u.hasher.Verify(req.Password, *user.Password) {
		u.log.Warn().Str("email", req.Email).Msg("login failed")
		return nil, ErrInvalidCredentials
	}

	if err := u.touchLastLogin(user); err != nil {
		return nil, err
	}

	u.log.Info().Str("email", user.Email).Msg("user logged in")
	return u.codec.IssuePair(user.ID, user.Email)
}

func (u *authUsecase) Refresh(refreshToken string) (*authdto.TokenPair, error) {
	claims, err := u.codec.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		u.log.Warn().Err(err).Msg("refresh rejected")
		return nil, ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// The presented refresh token is not rotated or invalidated; it stays
	// valid until its own expiry.
	u.log.Info().Str("email", user.Email).Msg("token pair refreshed")
	return u.codec.IssuePair(user.ID, user.Email)
}

func (u *authUsecase) GoogleAuthURL() (*authdto.AuthURLResponse, error) {
	if u.google == nil {
		return nil, ErrOAuthUnavailable
	}
	url, state, err := u.google.AuthorizationURL()
	if err != nil {
		return nil, err
	}
	return &authdto.AuthURLResponse{AuthorizationURL: url, State: state}, nil
}

func (u *authUsecase) GoogleCallback(ctx context.Context, code, state string) (*authdto.TokenPair, *authdomain.User, error) {
	if u.google == nil {
		return nil, nil, ErrOAuthUnavailable
	}
	// The state is consumed on the first callback attempt regardless of
	// the validation outcome, so a replay fails closed.
	if !u.google.ConsumeState(state) {
		u.log.Warn().Msg("oauth callback rejected: state mismatch or replay")
		return nil, nil, ErrStateMismatch
	}

	profile := u.google.ExchangeAndFetchProfile(ctx, code)
	if profile == nil {
		return nil, nil, ErrProfileFetch
	}

	user, err := u.userRepo.FindByEmail(profile.Email)
	if err != nil {
		return nil, nil, err
	}

	if user == nil {
		username := usernameFromEmail(profile.Email)
		user = &authdomain.User{
			Email:      profile.Email,
			Username:   &username,
			FullName:   profile.Name,
			GoogleID:   &profile.ID,
			Provider:   authdomain.ProviderGoogle,
			AvatarURL:  profile.Picture,
			IsActive:   true,
			IsVerified: profile.VerifiedEmail,
		}
		if err := u.userRepo.Create(user); err != nil {
			return nil, nil, err
		}
		u.log.Info().Str("email", user.Email).Msg("user provisioned from google profile")
	} else if user.GoogleID == nil {
		// Link the federated identity to the existing local account in
		// place instead of creating a duplicate.
		user.GoogleID = &profile.ID
		user.Provider = authdomain.ProviderGoogle
		user.AvatarURL = profile.Picture
		user.IsVerified = profile.VerifiedEmail
		if err := u.userRepo.Update(user); err != nil {
			return nil, nil, err
		}
		u.log.Info().Str("email", user.Email).Msg("existing account linked to google identity")
	}

	if err := u.touchLastLogin(user); err != nil {
		return nil, nil, err
	}

	pair, err := u.codec.IssuePair(user.ID, user.Email)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

func (u *authUsecase) ResolveUser(accessToken string) (*authdomain.User, error) {
	claims, err := u.codec.Verify(accessToken, token.KindAccess)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Distinguished from the invalid-token case only for diagnostics;
		// both surface as 401.
		u.log.Warn().Uint("user_id", claims.UserID).Msg("token references a deleted user")
		return nil, ErrUserNotFound
	}

	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return user, nil
}

func (u *authUsecase) touchLastLogin(user *authdomain.User) error {
	now := time.Now()
	user.LastLogin = &now
	return u.userRepo.Update(user)
}

// usernameFromEmail derives a username from the email local part with a
// random suffix to avoid collisions.
func usernameFromEmail(email string) string {
	local := email
	if idx := strings.Index(email, "@"); idx > 0 {
		local = email[:idx]
	}
	var b strings.Builder
	for _, r := range local {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String() + "_" + uuid.NewString()[:8]
}
