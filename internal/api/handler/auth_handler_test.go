package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
)

type stubAuthService struct {
	signupFn           func(ctx context.Context, fullName, email, password string) (*domain.User, string, error)
	loginFn            func(ctx context.Context, email, password string) (*domain.User, string, error)
	updateProfilePicFn func(ctx context.Context, userID, image string) (*domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, fullName, email, password string) (*domain.User, string, error) {
	return s.signupFn(ctx, fullName, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) UpdateProfilePic(ctx context.Context, userID, image string) (*domain.User, error) {
	return s.updateProfilePicFn(ctx, userID, image)
}

func newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(_ context.Context, fullName, email, password string) (*domain.User, string, error) {
			if fullName != "Alice" || email != "alice@example.com" || password != "secret99" {
				t.Fatalf("unexpected args: %s %s %s", fullName, email, password)
			}
			return &domain.User{ID: "u1", FullName: fullName, Email: email}, "signed-token", nil
		},
	}
	h := NewAuthHandler(stub, false)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/signup",
		`{"fullName":"Alice","email":"alice@example.com","password":"secret99"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var user map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if user["fullName"] != "Alice" {
		t.Fatalf("unexpected payload: %+v", user)
	}
	if _, ok := user["password"]; ok {
		t.Fatalf("password hash must never be serialized")
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatalf("expected session cookie")
	}
	if cookie.Value != "signed-token" || !cookie.HttpOnly || cookie.SameSite != http.SameSiteStrictMode {
		t.Fatalf("unexpected cookie attributes: %+v", cookie)
	}
	if cookie.Secure {
		t.Fatalf("cookie must not be Secure outside production")
	}
}

func TestAuthHandler_Signup_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	cases := []string{
		`{"email":"a@b.com","password":"secret99"}`,
		`{"fullName":"Alice","password":"secret99"}`,
		`{"fullName":"Alice","email":"not-an-email","password":"secret99"}`,
		`{"fullName":"Alice","email":"a@b.com","password":"short"}`,
	}
	for _, body := range cases {
		c, _ := newJSONContext(http.MethodPost, "/api/auth/signup", body)
		err := h.Signup(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400 HTTPError, got %v", body, err)
		}
	}
}

func TestAuthHandler_Signup_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(context.Context, string, string, string) (*domain.User, string, error) {
			return nil, "", domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub, false)

	c, _ := newJSONContext(http.MethodPost, "/api/auth/signup",
		`{"fullName":"Bob","email":"bob@example.com","password":"secret99"}`)

	err := h.Signup(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*domain.User, string, error) {
			return &domain.User{ID: "u1", Email: email}, "signed-token", nil
		},
	}
	h := NewAuthHandler(stub, true)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"secret99"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value != "signed-token" {
		t.Fatalf("expected session cookie, got %+v", cookie)
	}
	if !cookie.Secure {
		t.Fatalf("cookie must be Secure in production")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, false)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)

	// Domain errors propagate to the central error handler.
	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sessionCookie(rec) != nil {
		t.Fatalf("no cookie must be set on failed login")
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/logout", "")

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatalf("expected expired session cookie")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected cleared cookie, got value=%q maxage=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestAuthHandler_Check(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	c, rec := newJSONContext(http.MethodGet, "/api/auth/check", "")
	c.Set("user", &domain.User{ID: "u1", FullName: "Alice"})

	if err := h.Check(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Without the middleware-injected user the handler must refuse.
	c2, _ := newJSONContext(http.MethodGet, "/api/auth/check", "")
	err := h.Check(c2)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	stub := &stubAuthService{
		updateProfilePicFn: func(_ context.Context, userID, image string) (*domain.User, error) {
			if userID != "u1" || image != "base64data" {
				t.Fatalf("unexpected args: %s %s", userID, image)
			}
			return &domain.User{ID: userID, ProfilePic: "https://img.example.com/1"}, nil
		},
	}
	h := NewAuthHandler(stub, false)

	c, rec := newJSONContext(http.MethodPut, "/api/auth/update-profile", `{"profilePic":"base64data"}`)
	c.Set("user", &domain.User{ID: "u1"})

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var user map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if user["profilePic"] != "https://img.example.com/1" {
		t.Fatalf("unexpected payload: %+v", user)
	}
}
