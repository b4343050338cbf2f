package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskdesk/client-go/internal/core/domain"
	"github.com/taskdesk/client-go/internal/devserver/store"
)

// AuthHandler serves the users/auth endpoints against the fixture store.
type AuthHandler struct {
	store     *store.Store
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthHandler(st *store.Store, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{store: st, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    *domain.User `json:"user"`
}

// Login handles POST /api/auth/login/. Failures mirror the backend's
// serializer envelope so the client's structured error parsing is
// exercised for real.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string][]string{
			"non_field_errors": {"Debe proporcionar username y password"},
		})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string][]string{
			"non_field_errors": {"Debe proporcionar username y password"},
		})
	}

	user, err := h.store.Authenticate(req.Username, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string][]string{
			"non_field_errors": {"Credenciales incorrectas"},
		})
	}

	access, err := h.generateToken(user, h.tokenTTL, "access")
	if err != nil {
		return err
	}
	refresh, err := h.generateToken(user, 7*24*time.Hour, "refresh")
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Access: access, Refresh: refresh, User: user})
}

// Me handles GET /api/auth/me/.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	user, err := h.store.UserByID(userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ListUsers handles GET /api/auth/users/.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Users())
}

// CreateUser handles POST /api/auth/users/create/.
func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req domain.CreateUserData
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	user, err := h.store.CreateUser(req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PUT /api/auth/users/update/:id/.
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	var req domain.UpdateUserData
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	user, err := h.store.UpdateUser(id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/auth/users/delete/:id/. Success is a bare 204.
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	requesterID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteUser(id, requesterID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) generateToken(user *domain.User, ttl time.Duration, typ string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Profile.Role),
		"typ":      typ,
		"exp":      time.Now().Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(h.jwtSecret))
}
