package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DragonEmporer001/fiverr-clone/internal/auth"
)

// GetNavigation returns the navigation catalog and the session-aware menu.
// GET /v1/navigation?path=/current
func (h *Handler) GetNavigation(c echo.Context) error {
	path := c.QueryParam("path")
	if r, ok := auth.RequesterFrom(c); ok {
		return c.JSON(http.StatusOK, h.service.Navigation(&r, path))
	}
	return c.JSON(http.StatusOK, h.service.Navigation(nil, path))
}

// GetSession returns the authenticated requester.
// GET /v1/auth/session
func (h *Handler) GetSession(c echo.Context) error {
	r, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// Logout clears the access cookie.
// POST /v1/auth/logout
func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.identity.CookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	return c.JSON(http.StatusOK, map[string]string{"message": "Logout Successfully"})
}
