package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DragonEmporer001/fiverr-clone/internal/auth"
	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
	"github.com/DragonEmporer001/fiverr-clone/internal/hub"
	"github.com/DragonEmporer001/fiverr-clone/internal/service"
	transporthttp "github.com/DragonEmporer001/fiverr-clone/internal/transport/http"
	"github.com/DragonEmporer001/fiverr-clone/tests/helpers"
)

type fixture struct {
	url    string
	tokens *auth.Tokens
	hub    *hub.Hub
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	h := hub.New()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(cancel)

	tokens := auth.NewTokens("secret", time.Hour)
	svc := service.New(helpers.NewTestSQLiteStore(t), helpers.NewTestPolicyEngine(t), h)
	stream := hub.NewServer(h, hub.Options{PingInterval: time.Minute, WriteTimeout: time.Second, ReadTimeout: time.Minute})
	ts := httptest.NewServer(transporthttp.NewServer(svc, auth.NewIdentity(tokens, "accessToken"), stream))
	t.Cleanup(ts.Close)

	return &fixture{url: ts.URL, tokens: tokens, hub: h}
}

func (f *fixture) clientFor(t *testing.T, r domain.Requester) *Client {
	t.Helper()
	raw, err := f.tokens.Issue(r)
	require.NoError(t, err)
	return NewClient(f.url+"/", raw)
}

func TestClientConversationFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seller := f.clientFor(t, domain.Requester{UserID: "A", IsSeller: true})
	buyer := f.clientFor(t, domain.Requester{UserID: "B"})

	created, err := seller.CreateConversation(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, "AB", created.ID)

	got, err := buyer.GetConversation(ctx, "AB")
	require.NoError(t, err)
	assert.Equal(t, "A", got.SellerID)

	read, err := buyer.MarkRead(ctx, "AB")
	require.NoError(t, err)
	assert.False(t, read.ReadBySeller)
	assert.True(t, read.ReadByBuyer)

	list, err := seller.ListConversations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	session, err := buyer.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, "B", session.UserID)
}

func TestClientReturnsAPIError(t *testing.T) {
	f := newFixture(t)
	buyer := f.clientFor(t, domain.Requester{UserID: "B"})

	_, err := buyer.GetConversation(context.Background(), "missing")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "No such conversation found!", apiErr.Message)

	anon := NewClient(f.url, "")
	_, err = anon.ListConversations(context.Background())
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestClientNavigationAnonymous(t *testing.T) {
	f := newFixture(t)

	view, err := NewClient(f.url, "").Navigation(context.Background(), "/")
	require.NoError(t, err)
	assert.Nil(t, view.User)
	assert.Equal(t, "English", view.DefaultLanguage)
}

func TestClientWatch(t *testing.T) {
	f := newFixture(t)
	buyer := f.clientFor(t, domain.Requester{UserID: "B"})
	seller := f.clientFor(t, domain.Requester{UserID: "A", IsSeller: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan domain.Event, 4)
	done := make(chan error, 1)
	go func() {
		done <- buyer.Watch(ctx, func(ev domain.Event) { events <- ev })
	}()

	require.Eventually(t, func() bool { return f.hub.HasActiveConnections("B") }, 2*time.Second, 10*time.Millisecond)

	_, err := seller.CreateConversation(context.Background(), "B")
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, domain.EventTypeConversationCreated, ev.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not return after cancel")
	}
}
