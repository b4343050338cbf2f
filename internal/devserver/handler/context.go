package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// fast-fails before touching the store: a zero user id or empty role means
// the middleware did not run or the token carried no usable identity.
func ctxClaims(c echo.Context) (userID int, role string, err error) {
	userID, _ = c.Get("user_id").(int)
	role, _ = c.Get("role").(string)
	if userID == 0 || role == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}
