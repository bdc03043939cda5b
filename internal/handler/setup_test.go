package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mstanchev/vaxtrack/internal/handler"
	"github.com/mstanchev/vaxtrack/internal/repo"
	"github.com/mstanchev/vaxtrack/internal/service"
	"github.com/mstanchev/vaxtrack/internal/testutil"
)

type testEnv struct {
	router   *gin.Engine
	auth     *service.AuthService
	sessions *service.SessionService
	listings *service.ListingService
}

func setupEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, cleanup := testutil.OpenTestDB(t)

	userRepo := repo.NewUserRepo(db)
	listingRepo := repo.NewListingRepo(db)
	sessionRepo := repo.NewSessionRepo(db)

	jwtSecret := []byte("test-secret")
	authService := service.NewAuthService(userRepo, jwtSecret, time.Hour)
	sessionService := service.NewSessionService(sessionRepo, time.Hour)
	listingService := service.NewListingService(listingRepo)

	engine := gin.New()
	handler.RegisterRoutes(engine, handler.RouterDeps{
		Auth:        handler.NewAuthHandler(authService, sessionService, time.Hour),
		Listings:    handler.NewListingHandler(listingService, authService),
		API:         handler.NewAPIHandler(authService, listingService),
		Sessions:    sessionService,
		JWTSecret:   jwtSecret,
		LoginWindow: 0,
	})
	return &testEnv{
		router:   engine,
		auth:     authService,
		sessions: sessionService,
		listings: listingService,
	}, cleanup
}

func setupRouter(t *testing.T) (*gin.Engine, func()) {
	t.Helper()
	env, cleanup := setupEnv(t)
	return env.router, cleanup
}

func postForm(router *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func get(router *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

// registerUser drives the real register form and returns the session
// cookies issued for the new account.
func registerUser(t *testing.T, router *gin.Engine, email, name, pass string) []*http.Cookie {
	t.Helper()
	resp := postForm(router, "/register", url.Values{
		"name":         {name},
		"username":     {email},
		"password":     {pass},
		"confirmation": {pass},
	}, nil)
	if resp.Code != http.StatusFound {
		t.Fatalf("register: expected redirect, got %d: %s", resp.Code, resp.Body.String())
	}
	return resp.Result().Cookies()
}
