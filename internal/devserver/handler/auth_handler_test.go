package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskdesk/client-go/internal/devserver/store"
)

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(store.New(), "secret", time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login/", strings.NewReader(`{"username":"maria","password":"taskdesk"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	access, ok := resp["access"].(string)
	if !ok || access == "" {
		t.Fatalf("expected access token, got %v", resp["access"])
	}
	if refresh, ok := resp["refresh"].(string); !ok || refresh == "" {
		t.Fatalf("expected refresh token, got %v", resp["refresh"])
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(access, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims["username"] != "maria" || claims["role"] != "regular" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "maria" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(store.New(), "secret", time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login/", strings.NewReader(`{"username":"maria","password":"wrong"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp["non_field_errors"]) == 0 {
		t.Fatalf("expected non_field_errors, got %+v", resp)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(store.New(), "secret", time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login/", strings.NewReader(`{"username":"maria"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := echo.New()
	st := store.New()
	handler := NewAuthHandler(st, "secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", 1)
	c.Set("role", "superuser")

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "root" {
		t.Fatalf("unexpected user: %+v", resp)
	}
}

func TestAuthHandler_Me_MissingClaims(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(store.New(), "secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Me(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_DeleteUser_Self(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(store.New(), "secret", time.Hour)

	req := httptest.NewRequest(http.MethodDelete, "/api/auth/users/delete/1/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user_id", 1)
	c.Set("role", "superuser")

	err := handler.DeleteUser(c)
	if err == nil {
		t.Fatalf("expected self-delete to fail")
	}
}

func TestAuthHandler_DeleteUser_Success(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(store.New(), "secret", time.Hour)

	req := httptest.NewRequest(http.MethodDelete, "/api/auth/users/delete/3/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")
	c.Set("user_id", 1)
	c.Set("role", "superuser")

	if err := handler.DeleteUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}
