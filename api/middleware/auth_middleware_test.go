package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mindlift/internal/entity"
	"mindlift/internal/utils"

	"github.com/labstack/echo/v4"
)

var testJWT = utils.JWTManager{Secret: []byte("test-secret"), Issuer: "mindlift-test", TokenTTL: time.Hour}

func runWithAuth(t *testing.T, authorization string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := AuthMiddleware{JWT: &testJWT}
	handler := mw.RequireAuth(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, handler(c)
}

func TestRequireAuthMissingToken(t *testing.T) {
	_, _, err := runWithAuth(t, "")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	for _, header := range []string{"Bearer", "Basic dXNlcjpwYXNz", "Bearer "} {
		_, _, err := runWithAuth(t, header)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusUnauthorized {
			t.Errorf("header %q: err = %v, want 401", header, err)
		}
	}
}

func TestRequireAuthBadSignature(t *testing.T) {
	other := utils.JWTManager{Secret: []byte("other-secret"), TokenTTL: time.Hour}
	token, _, err := other.IssueSessionToken("5f0c6f9e-0000-0000-0000-000000000001", "ada@example.com", "subscriber")
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	_, _, err = runWithAuth(t, "Bearer "+token)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}

func runWithOptionalAuth(t *testing.T, authorization string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/videos/123", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := AuthMiddleware{JWT: &testJWT}
	handler := mw.OptionalAuth(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func TestOptionalAuthAnonymousPassesThrough(t *testing.T) {
	for _, header := range []string{"", "Bearer garbage"} {
		c, err := runWithOptionalAuth(t, header)
		if err != nil {
			t.Errorf("header %q: err = %v, want pass-through", header, err)
		}
		if _, ok := UserIDFromContext(c); ok {
			t.Errorf("header %q: auth context set without a valid token", header)
		}
	}
}

func TestOptionalAuthSetsContextForValidToken(t *testing.T) {
	token, _, err := testJWT.IssueSessionToken("5f0c6f9e-0000-0000-0000-000000000001", "ada@example.com", "speaker")
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	c, err := runWithOptionalAuth(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("handler err = %v", err)
	}
	userID, ok := UserIDFromContext(c)
	if !ok || userID.String() != "5f0c6f9e-0000-0000-0000-000000000001" {
		t.Errorf("user id = %v, %v", userID, ok)
	}
	role, _ := RoleFromContext(c)
	if role != entity.UserRoleSpeaker {
		t.Errorf("role = %q", role)
	}
}

func TestRequireAuthSetsContext(t *testing.T) {
	token, _, err := testJWT.IssueSessionToken("5f0c6f9e-0000-0000-0000-000000000001", "ada@example.com", "speaker")
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	rec, c, err := runWithAuth(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("handler err = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	userID, ok := UserIDFromContext(c)
	if !ok || userID.String() != "5f0c6f9e-0000-0000-0000-000000000001" {
		t.Errorf("user id = %v, %v", userID, ok)
	}
	email, _ := EmailFromContext(c)
	if email != "ada@example.com" {
		t.Errorf("email = %q", email)
	}
	role, _ := RoleFromContext(c)
	if role != entity.UserRoleSpeaker {
		t.Errorf("role = %q", role)
	}
}
