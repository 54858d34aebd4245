package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"spendtrack-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// fakeProvider simulates the token and userinfo endpoints.
type fakeProvider struct {
	tokenStatus    int
	userinfoStatus int
	userinfoBody   string
}

func (f *fakeProvider) server() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if f.tokenStatus != 0 && f.tokenStatus != http.StatusOK {
			w.WriteHeader(f.tokenStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"provider-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if f.userinfoStatus != 0 && f.userinfoStatus != http.StatusOK {
			w.WriteHeader(f.userinfoStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(f.userinfoBody))
	})
	return httptest.NewServer(mux)
}

func newTestClient(t *testing.T, srv *httptest.Server) *GoogleClient {
	t.Helper()
	client, err := NewGoogleClient(&Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:  srv.URL + "/auth",
			TokenURL: srv.URL + "/token",
		},
		UserInfoURL: srv.URL + "/userinfo",
		HTTPClient:  srv.Client(),
	}, time.Minute, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func TestNewGoogleClientRequiresCredentials(t *testing.T) {
	_, err := NewGoogleClient(&Config{ClientSecret: "s"}, time.Minute, logger.Nop())
	assert.ErrorIs(t, err, ErrClientNotConfigured)

	_, err = NewGoogleClient(&Config{ClientID: "i"}, time.Minute, logger.Nop())
	assert.ErrorIs(t, err, ErrClientNotConfigured)
}

func TestAuthorizationURLCarriesState(t *testing.T) {
	provider := &fakeProvider{}
	srv := provider.server()
	defer srv.Close()
	client := newTestClient(t, srv)

	url, state, err := client.AuthorizationURL()
	require.NoError(t, err)
	assert.NotEmpty(t, state)
	assert.Contains(t, url, "state="+state)
	assert.Contains(t, url, "client_id=client-id")
	assert.True(t, strings.HasPrefix(url, srv.URL+"/auth"))

	// The generated state is pending until the callback consumes it.
	assert.True(t, client.ConsumeState(state))
	assert.False(t, client.ConsumeState(state))
}

func TestExchangeAndFetchProfile(t *testing.T) {
	provider := &fakeProvider{
		userinfoBody: `{"id":"google-123","email":"alice@example.com","name":"Alice","picture":"http://img","verified_email":true}`,
	}
	srv := provider.server()
	defer srv.Close()
	client := newTestClient(t, srv)

	profile := client.ExchangeAndFetchProfile(context.Background(), "auth-code")
	require.NotNil(t, profile)
	assert.Equal(t, "google-123", profile.ID)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, "Alice", profile.Name)
	assert.True(t, profile.VerifiedEmail)
}

func TestExchangeFailureReturnsNil(t *testing.T) {
	provider := &fakeProvider{tokenStatus: http.StatusBadRequest}
	srv := provider.server()
	defer srv.Close()
	client := newTestClient(t, srv)

	assert.Nil(t, client.ExchangeAndFetchProfile(context.Background(), "bad-code"))
}

func TestUserinfoFailureReturnsNil(t *testing.T) {
	provider := &fakeProvider{userinfoStatus: http.StatusInternalServerError}
	srv := provider.server()
	defer srv.Close()
	client := newTestClient(t, srv)

	assert.Nil(t, client.ExchangeAndFetchProfile(context.Background(), "auth-code"))
}

func TestMissingRequiredFieldsReturnNil(t *testing.T) {
	for _, body := range []string{
		`{"email":"alice@example.com"}`,
		`{"id":"google-123"}`,
		`not-json`,
	} {
		provider := &fakeProvider{userinfoBody: body}
		srv := provider.server()
		client := newTestClient(t, srv)

		assert.Nil(t, client.ExchangeAndFetchProfile(context.Background(), "auth-code"))
		srv.Close()
	}
}
