// Package token creates and verifies the signed access and refresh tokens
// that carry user identity between requests.
package token

import (
	"errors"
	"strconv"
	"time"

	"spendtrack-backend/internal/auth/dto"
	"spendtrack-backend/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token kinds carried in the "type" claim. A refresh token must never be
// accepted where an access token is expected, and vice versa.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Verification failure reasons. The HTTP layer collapses all of them to a
// single 401, but they stay inspectable for callers and tests.
var (
	ErrExpired          = errors.New("token expired")
	ErrBadSignature     = errors.New("token signature invalid")
	ErrMalformed        = errors.New("token malformed")
	ErrWrongKind        = errors.New("token kind mismatch")
	ErrMalformedSubject = errors.New("token subject is not a user id")
	ErrMissingEmail     = errors.New("token email claim missing")
)

type claims struct {
	Email string `json:"email"`
	Kind  string `json:"type"`
	jwt.RegisteredClaims
}

// Claims is the decoded identity carried by a verified token.
type Claims struct {
	UserID uint
	Email  string
	Kind   string
}

// Codec signs and verifies HS256 tokens with a shared secret.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
	log        *logger.Logger
}

func NewCodec(secret string, accessTTL, refreshTTL time.Duration, log *logger.Logger) *Codec {
	return &Codec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
		log:        log.WithComponent("token"),
	}
}

// CreateAccessToken signs a short-lived access token for the user.
func (c *Codec) CreateAccessToken(userID uint, email string) (string, error) {
	return c.create(userID, email, KindAccess, c.accessTTL)
}

// CreateRefreshToken signs a long-lived refresh token for the user.
func (c *Codec) CreateRefreshToken(userID uint, email string) (string, error) {
	return c.create(userID, email, KindRefresh, c.refreshTTL)
}

func (c *Codec) create(userID uint, email, kind string, ttl time.Duration) (string, error) {
	now := c.now()
	cl := claims{
		Email: email,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			// The JWT "sub" claim must be a string, so the numeric user
			// id is string-encoded here and parsed back on verification.
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if kind == KindRefresh {
		cl.ID = uuid.New().String()
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	return tok.SignedString(c.secret)
}

// Verify parses and validates a token of the expected kind. It fails closed:
// any signature, expiry, kind or claim problem yields a nil result and one
// of the named errors above.
func (c *Codec) Verify(tokenString, expectedKind string) (*Claims, error) {
	parsed := &claims{}
	tok, err := jwt.ParseWithClaims(tokenString, parsed, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			c.log.Debug().Msg("token verification failed: expired")
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			c.log.Debug().Msg("token verification failed: bad signature")
			return nil, ErrBadSignature
		default:
			c.log.Debug().Err(err).Msg("token verification failed: malformed")
			return nil, ErrMalformed
		}
	}
	if !tok.Valid {
		return nil, ErrMalformed
	}

	if parsed.Kind != expectedKind {
		c.log.Warn().
			Str("expected", expectedKind).
			Str("got", parsed.Kind).
			Msg("token kind mismatch")
		return nil, ErrWrongKind
	}

	userID, err := strconv.ParseUint(parsed.Subject, 10, 64)
	if err != nil {
		return nil, ErrMalformedSubject
	}
	if parsed.Email == "" {
		return nil, ErrMissingEmail
	}

	return &Claims{UserID: uint(userID), Email: parsed.Email, Kind: parsed.Kind}, nil
}

// IssuePair creates an access/refresh token pair for the same identity and
// reports the access token lifetime in seconds.
func (c *Codec) IssuePair(userID uint, email string) (*dto.TokenPair, error) {
	access, err := c.CreateAccessToken(userID, email)
	if err != nil {
		return nil, err
	}
	refresh, err := c.CreateRefreshToken(userID, email)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("email", email).Msg("token pair issued")
	return &dto.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(c.accessTTL.Seconds()),
	}, nil
}

func (c *Codec) keyFunc(tok *jwt.Token) (interface{}, error) {
	if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, errors.New("unexpected signing method: " + tok.Method.Alg())
	}
	return c.secret, nil
}
