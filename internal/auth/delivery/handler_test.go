package delivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authdomain "spendtrack-backend/internal/auth/domain"
	"spendtrack-backend/internal/auth/password"
	"spendtrack-backend/internal/auth/token"
	"spendtrack-backend/internal/auth/usecase"
	"spendtrack-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUserRepo struct {
	nextID uint
	users  map[uint]*authdomain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{nextID: 1, users: make(map[uint]*authdomain.User)}
}

func (r *memoryUserRepo) Create(user *authdomain.User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepo) FindByID(id uint) (*authdomain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepo) FindByEmail(email string) (*authdomain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) Update(user *authdomain.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type fixture struct {
	router *gin.Engine
	repo   *memoryUserRepo
	codec  *token.Codec
}

func newFixture(t *testing.T, accessTTL time.Duration) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newMemoryUserRepo()
	codec := token.NewCodec("test-secret", accessTTL, 7*24*time.Hour, logger.Nop())
	uc := usecase.NewAuthUsecase(repo, password.NewHasher(4), codec, nil, logger.Nop())
	handler := NewAuthHandler(uc)

	r := gin.New()
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.POST("/refresh", handler.Refresh)
		auth.GET("/google", handler.GoogleLogin)

		protected := auth.Group("")
		protected.Use(AuthMiddleware(uc))
		{
			protected.GET("/me", handler.Me)
			protected.GET("/token-info", handler.TokenInfo)
			protected.POST("/logout", handler.Logout)
		}
	}
	return &fixture{router: r, repo: repo, codec: codec}
}

func (f *fixture) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerBody(email string) gin.H {
	return gin.H{"email": email, "password": "s3cret-password", "full_name": "Test User"}
}

func TestRegisterLoginMe(t *testing.T) {
	f := newFixture(t, 30*time.Minute)

	w := f.do(t, http.MethodPost, "/api/auth/register", registerBody("alice@example.com"), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	assert.Equal(t, "alice@example.com", created["email"])
	// The password hash never appears in responses.
	assert.NotContains(t, created, "hashed_password")
	assert.NotContains(t, w.Body.String(), "s3cret-password")

	w = f.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "alice@example.com", "password": "s3cret-password"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tokens := decode(t, w)
	access, _ := tokens["access_token"].(string)
	require.NotEmpty(t, access)
	assert.Equal(t, "bearer", tokens["token_type"])

	w = f.do(t, http.MethodGet, "/api/auth/me", nil, map[string]string{"Authorization": "Bearer " + access})
	require.Equal(t, http.StatusOK, w.Code)
	me := decode(t, w)
	assert.Equal(t, "alice@example.com", me["email"])
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t, 30*time.Minute)

	w := f.do(t, http.MethodPost, "/api/auth/register", gin.H{"email": "not-an-email", "password": "s3cret-password"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/auth/register", gin.H{"email": "alice@example.com", "password": "short"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDuplicateRegistration(t *testing.T) {
	f := newFixture(t, 30*time.Minute)

	w := f.do(t, http.MethodPost, "/api/auth/register", registerBody("alice@example.com"), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodPost, "/api/auth/register", registerBody("alice@example.com"), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t, 30*time.Minute)

	f.do(t, http.MethodPost, "/api/auth/register", registerBody("alice@example.com"), nil)

	w := f.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "alice@example.com", "password": "wrong-password"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "nobody@example.com", "password": "s3cret-password"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestMiddlewareHeaderGates(t *testing.T) {
	f := newFixture(t, 30*time.Minute)

	w := f.do(t, http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	// Token without the Bearer prefix.
	w = f.do(t, http.MethodGet, "/api/auth/me", nil, map[string]string{"Authorization": "raw-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid authorization header format")

	w = f.do(t, http.MethodGet, "/api/auth/me", nil, map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestRefreshTokenRejectedAtAccessGate(t *testing.T) {
	f := newFixture(t, 30*time.Minute)

	f.do(t, http.MethodPost, "/api/auth/register", registerBody("alice@example.com"), nil)
	w := f.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "alice@example.com", "password": "s3cret-password"}, nil)
	tokens := decode(t, w)
	refresh, _ := tokens["refresh_token"].(string)
	require.NotEmpty(t, refresh)

	w = f.do(t, http.MethodGet, "/api/auth/me", nil, map[string]string{"Authorization": "Bearer " + refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	// Access tokens are already expired at issuance.
	f := newFixture(t, -time.Minute)

	f.do(t, http.MethodPost, "/api/auth/register", registerBody("alice@example.com"), nil)
	w := f.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "alice@example.com", "password": "s3cret-password"}, nil)
	tokens := decode(t, w)
	access, _ := tokens["access_token"].(string)
	require.NotEmpty(t, access)

	w = f.do(t, http.MethodGet, "/api/auth/me", nil, map[string]string{"Authorization": "Bearer " + access})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestDisabledUserForbidden(t *testing.T) {
	f := newFixture(t, 30*time.Minute)

	f.do(t, http.MethodPost, "/api/auth/register", registerBody("alice@example.com"), nil)
	w := f.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "alice@example.com", "password": "s3cret-password"}, nil)
	tokens := decode(t, w)
	access, _ := tokens["access_token"].(string)

	for _, u := range f.repo.users {
		u.IsActive = false
	}

	w = f.do(t, http.MethodGet, "/api/auth/me", nil, map[string]string{"Authorization": "Bearer " + access})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "disabled")
}

func TestRefreshEndpoint(t *testing.T) {
	f := newFixture(t, 30*time.Minute)

	f.do(t, http.MethodPost, "/api/auth/register", registerBody("alice@example.com"), nil)
	w := f.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "alice@example.com", "password": "s3cret-password"}, nil)
	tokens := decode(t, w)
	refresh, _ := tokens["refresh_token"].(string)

	w = f.do(t, http.MethodPost, "/api/auth/refresh", gin.H{"refresh_token": refresh}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	fresh := decode(t, w)
	assert.NotEmpty(t, fresh["access_token"])

	// An access token in the refresh slot fails.
	access, _ := tokens["access_token"].(string)
	w = f.do(t, http.MethodPost, "/api/auth/refresh", gin.H{"refresh_token": access}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenInfoAndLogout(t *testing.T) {
	f := newFixture(t, 30*time.Minute)

	f.do(t, http.MethodPost, "/api/auth/register", registerBody("alice@example.com"), nil)
	w := f.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "alice@example.com", "password": "s3cret-password"}, nil)
	access, _ := decode(t, w)["access_token"].(string)
	headers := map[string]string{"Authorization": "Bearer " + access}

	w = f.do(t, http.MethodGet, "/api/auth/token-info", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)
	info := decode(t, w)
	assert.Equal(t, "alice@example.com", info["email"])
	assert.Equal(t, true, info["is_active"])

	w = f.do(t, http.MethodPost, "/api/auth/logout", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)

	// Logout is stateless: the token remains usable until it expires.
	w = f.do(t, http.MethodGet, "/api/auth/me", nil, headers)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGoogleLoginWithoutProvider(t *testing.T) {
	f := newFixture(t, 30*time.Minute)

	w := f.do(t, http.MethodGet, "/api/auth/google", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to initiate Google OAuth")
}

func TestRequireActive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) {
		c.Set("user", &authdomain.User{ID: 1, IsActive: true})
	}, RequireActive(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/inactive", func(c *gin.Context) {
		c.Set("user", &authdomain.User{ID: 1, IsActive: false})
	}, RequireActive(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/missing", RequireActive(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	for path, want := range map[string]int{
		"/ok":       http.StatusOK,
		"/inactive": http.StatusBadRequest,
		"/missing":  http.StatusUnauthorized,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}
}
