package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	for _, r := range []domain.Requester{{UserID: "seller1", IsSeller: true}, {UserID: "buyer1"}} {
		raw, err := tokens.Issue(r)
		require.NoError(t, err)

		got, err := tokens.Verify(raw)
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	raw, err := NewTokens("secret", time.Hour).Issue(domain.Requester{UserID: "u1"})
	require.NoError(t, err)

	_, err = NewTokens("other", time.Hour).Verify(raw)
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	tokens := NewTokens("secret", time.Minute)
	tokens.now = func() time.Time { return time.Now().Add(-time.Hour) }
	raw, err := tokens.Issue(domain.Requester{UserID: "u1"})
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Verify(raw)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewTokens("secret", time.Hour).Verify("not-a-token")
	assert.Error(t, err)
}

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, req *http.Request) (*httptest.ResponseRecorder, *domain.Requester) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.Requester
	h := mw(func(c echo.Context) error {
		if r, ok := RequesterFrom(c); ok {
			seen = &r
		}
		return c.NoContent(http.StatusNoContent)
	})
	require.NoError(t, h(c))
	return rec, seen
}

func TestRequiredMiddleware(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	id := NewIdentity(tokens, "accessToken")
	raw, err := tokens.Issue(domain.Requester{UserID: "s1", IsSeller: true})
	require.NoError(t, err)

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: raw})
		rec, seen := runMiddleware(t, id.Required(), req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, domain.Requester{UserID: "s1", IsSeller: true}, *seen)
	})

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+raw)
		rec, seen := runMiddleware(t, id.Required(), req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, seen)
	})

	t.Run("missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec, seen := runMiddleware(t, id.Required(), req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, seen)
		assert.JSONEq(t, `{"error":true,"message":"You are not authenticated!"}`, rec.Body.String())
	})

	t.Run("invalid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer junk")
		rec, _ := runMiddleware(t, id.Required(), req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalMiddleware(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	id := NewIdentity(tokens, "accessToken")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec, seen := runMiddleware(t, id.Optional(), req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, seen)

	raw, err := tokens.Issue(domain.Requester{UserID: "b1"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: raw})
	_, seen = runMiddleware(t, id.Optional(), req)
	require.NotNil(t, seen)
	assert.Equal(t, "b1", seen.UserID)
}
