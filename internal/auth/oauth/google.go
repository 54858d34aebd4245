// Package oauth drives the Google authorization-code flow and normalizes
// the returned profile.
package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"spendtrack-backend/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Profile is the normalized identity returned by the provider.
type Profile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	VerifiedEmail bool   `json:"verified_email"`
}

// Config holds the Google OAuth client configuration. Endpoint,
// UserInfoURL and HTTPClient are overridable for tests.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	Endpoint     oauth2.Endpoint
	UserInfoURL  string
	HTTPClient   *http.Client
}

// GoogleClient exchanges authorization codes with Google and fetches the
// user profile. All failures are collapsed to a nil profile: callers treat
// nil as "authentication did not complete".
type GoogleClient struct {
	config      *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
	states      *StateStore
	log         *logger.Logger
}

func NewGoogleClient(cfg *Config, stateTTL time.Duration, log *logger.Logger) (*GoogleClient, error) {
	if cfg.ClientID == "" {
		return nil, ErrClientNotConfigured
	}
	if cfg.ClientSecret == "" {
		return nil, ErrClientNotConfigured
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"openid", "email", "profile"}
	}
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" {
		endpoint = google.Endpoint
	}
	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = defaultUserInfoURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &GoogleClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     endpoint,
		},
		userInfoURL: userInfoURL,
		httpClient:  httpClient,
		states:      NewStateStore(stateTTL),
		log:         log.WithComponent("oauth"),
	}, nil
}

// AuthorizationURL builds the provider authorization URL with a fresh CSRF
// state. The state is persisted server-side until the callback consumes it.
func (g *GoogleClient) AuthorizationURL() (string, string, error) {
	state, err := generateState()
	if err != nil {
		return "", "", err
	}
	g.states.Save(state)
	url := g.config.AuthCodeURL(state)
	g.log.Debug().Str("state", state).Msg("authorization url generated")
	return url, state, nil
}

// ConsumeState validates and removes a pending state. It returns false for
// an unknown, expired or already-consumed state.
func (g *GoogleClient) ConsumeState(state string) bool {
	if state == "" {
		return false
	}
	return g.states.Consume(state)
}

// ExchangeAndFetchProfile exchanges the authorization code for a provider
// token and retrieves the user profile. It returns nil on any transport
// error, non-success status or missing required field.
func (g *GoogleClient) ExchangeAndFetchProfile(ctx context.Context, code string) *Profile {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)

	tok, err := g.config.Exchange(ctx, code)
	if err != nil {
		g.log.Warn().Err(err).Msg("code exchange failed")
		return nil
	}

	client := g.config.Client(ctx, tok)
	resp, err := client.Get(g.userInfoURL)
	if err != nil {
		g.log.Warn().Err(err).Msg("userinfo request failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.log.Warn().Int("status", resp.StatusCode).Msg("userinfo returned non-success status")
		return nil
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		g.log.Warn().Err(err).Msg("userinfo decode failed")
		return nil
	}
	if profile.ID == "" || profile.Email == "" {
		g.log.Warn().Msg("userinfo missing required fields")
		return nil
	}

	g.log.Info().Str("email", profile.Email).Msg("profile fetched")
	return &profile
}

// Close releases the state store's background resources.
func (g *GoogleClient) Close() {
	g.states.Close()
}
