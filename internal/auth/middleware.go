package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
)

const requesterKey = "requester"

// Identity extracts the requester from the access cookie or bearer header.
type Identity struct {
	tokens     *Tokens
	cookieName string
}

// NewIdentity creates the identity extractor.
func NewIdentity(tokens *Tokens, cookieName string) *Identity {
	return &Identity{tokens: tokens, cookieName: cookieName}
}

// CookieName is the name of the cookie carrying the access token.
func (i *Identity) CookieName() string {
	return i.cookieName
}

// Required rejects requests without a valid token with 401.
func (i *Identity) Required() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := i.rawToken(c)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{"error": true, "message": "You are not authenticated!"})
			}
			r, err := i.tokens.Verify(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{"error": true, "message": "Token is not valid!"})
			}
			SetRequester(c, r)
			return next(c)
		}
	}
}

// Optional attaches the requester when a valid token is present and lets
// anonymous requests through.
func (i *Identity) Optional() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw := i.rawToken(c); raw != "" {
				if r, err := i.tokens.Verify(raw); err == nil {
					SetRequester(c, r)
				}
			}
			return next(c)
		}
	}
}

func (i *Identity) rawToken(c echo.Context) string {
	if cookie, err := c.Cookie(i.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if after, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

// SetRequester stores the requester on the request context.
func SetRequester(c echo.Context, r domain.Requester) {
	c.Set(requesterKey, r)
}

// RequesterFrom returns the requester attached by the middleware.
func RequesterFrom(c echo.Context) (domain.Requester, bool) {
	r, ok := c.Get(requesterKey).(domain.Requester)
	return r, ok
}
