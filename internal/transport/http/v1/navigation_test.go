package v1

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
	"github.com/DragonEmporer001/fiverr-clone/internal/service"
)

func TestGetNavigationAnonymous(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	c, rec := newContext(e, http.MethodGet, "/v1/navigation?path=/", "", nil)
	require.NoError(t, h.GetNavigation(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var view service.NavigationView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Nil(t, view.User)
	assert.False(t, view.Solid)
	assert.Len(t, view.Languages, 12)
	assert.Equal(t, "Select Location", view.DefaultLocation)
	assert.Equal(t, "Sign in", view.Menu[2].Label)
	assert.Equal(t, "Advocates", view.Categories[0])
	assert.False(t, view.ShowCategories)
}

func TestGetNavigationSignedIn(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	c, rec := newContext(e, http.MethodGet, "/v1/navigation?path=/orders", "", &domain.Requester{UserID: "A", IsSeller: true})
	require.NoError(t, h.GetNavigation(c))

	var view service.NavigationView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.NotNil(t, view.User)
	assert.Equal(t, "A", view.User.UserID)
	assert.True(t, view.Solid)
	assert.True(t, view.ShowCategories)
	assert.Equal(t, "logout", view.Menu[len(view.Menu)-1].Action)
}

func TestGetSession(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	c, rec := newContext(e, http.MethodGet, "/v1/auth/session", "", &domain.Requester{UserID: "B"})
	require.NoError(t, h.GetSession(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"userID":"B","isSeller":false}`, rec.Body.String())
}

func TestLogoutClearsCookie(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	c, rec := newContext(e, http.MethodPost, "/v1/auth/logout", "", nil)
	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Logout Successfully"}`, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "accessToken", cookies[0].Name)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}
