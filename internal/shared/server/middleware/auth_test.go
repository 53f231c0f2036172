package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"succession-backend/internal/shared/auth"
)

func newAuthRouter(extra ...gin.HandlerFunc) (*gin.Engine, *Identity) {
	gin.SetMode(gin.TestMode)
	seen := &Identity{}
	router := gin.New()
	router.Use(Auth("/api/v1/health"))
	router.Use(extra...)
	handler := func(c *gin.Context) {
		*seen = IdentityFromContext(c)
		c.Status(http.StatusNoContent)
	}
	router.GET("/api/v1/health", handler)
	router.GET("/api/v1/me", handler)
	router.OPTIONS("/api/v1/me", handler)
	return router, seen
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	router, _ := newAuthRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthPublicPathSkipsIdentity(t *testing.T) {
	router, _ := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthRejectsMissingIdentity(t *testing.T) {
	router, _ := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthBearerTokenPopulatesIdentity(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := auth.SignJWT(auth.Claims{
		Email:            "ana@example.com",
		Name:             "Ana",
		Role:             "hr",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-7"},
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	router, seen := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	want := Identity{UserID: "user-7", Email: "ana@example.com", Name: "Ana", Role: "hr"}
	if *seen != want {
		t.Fatalf("unexpected identity %+v", *seen)
	}
}

func TestAuthRejectsBadToken(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("JWT_SECRET", "test-secret")
	router, _ := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestRequireMemberBlocksGuests(t *testing.T) {
	router, _ := newAuthRouter(RequireMember())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("X-Guest-Id", "g-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}
