package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
)

// exerciseStore runs the behaviour every Store implementation must share.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	first := domain.NewConversation(domain.Requester{UserID: "s1", IsSeller: true}, "b1", now)
	second := domain.NewConversation(domain.Requester{UserID: "b2"}, "s1", now)
	other := domain.NewConversation(domain.Requester{UserID: "s2", IsSeller: true}, "b1", now)
	for _, c := range []*domain.Conversation{first, second, other} {
		require.NoError(t, s.CreateConversation(ctx, c))
	}

	t.Run("duplicate insert fails", func(t *testing.T) {
		dup := domain.NewConversation(domain.Requester{UserID: "b1"}, "s1", now)
		assert.Error(t, s.CreateConversation(ctx, dup))
	})

	t.Run("get returns stored document", func(t *testing.T) {
		got, err := s.GetConversation(ctx, first.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, first.SellerID, got.SellerID)
		assert.Equal(t, first.BuyerID, got.BuyerID)
		assert.True(t, got.ReadBySeller)
		assert.False(t, got.ReadByBuyer)
		assert.True(t, first.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("get missing returns nil", func(t *testing.T) {
		got, err := s.GetConversation(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("list by seller in insertion order", func(t *testing.T) {
		got, err := s.ListConversationsBySeller(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, first.ID, got[0].ID)
		assert.Equal(t, second.ID, got[1].ID)
	})

	t.Run("list by buyer", func(t *testing.T) {
		got, err := s.ListConversationsByBuyer(ctx, "b1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, c := range got {
			assert.Equal(t, "b1", c.BuyerID)
		}
	})

	t.Run("list with no match is empty, not nil", func(t *testing.T) {
		got, err := s.ListConversationsByBuyer(ctx, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("update touches only the matching row", func(t *testing.T) {
		later := now.Add(time.Hour)
		updated, err := s.UpdateConversationRead(ctx, first.ID, false, true, later)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.False(t, updated.ReadBySeller)
		assert.True(t, updated.ReadByBuyer)
		assert.True(t, later.Equal(updated.UpdatedAt), "updatedAt = %v, want %v", updated.UpdatedAt, later)
		assert.True(t, first.CreatedAt.Equal(updated.CreatedAt))

		untouched, err := s.GetConversation(ctx, other.ID)
		require.NoError(t, err)
		assert.True(t, untouched.ReadBySeller)
		assert.False(t, untouched.ReadByBuyer)

		buyerSide, err := s.GetConversation(ctx, second.ID)
		require.NoError(t, err)
		assert.False(t, buyerSide.ReadBySeller)
		assert.True(t, buyerSide.ReadByBuyer)
	})

	t.Run("update missing returns nil", func(t *testing.T) {
		got, err := s.UpdateConversationRead(ctx, "nope", true, false, now)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestIsPostgresDSN(t *testing.T) {
	assert.True(t, IsPostgresDSN("postgres://u:p@localhost/db"))
	assert.True(t, IsPostgresDSN(" postgresql://localhost/db"))
	assert.True(t, IsPostgresDSN("postgresql+asyncpg://localhost/db"))
	assert.False(t, IsPostgresDSN(":memory:"))
	assert.False(t, IsPostgresDSN("file:conversations.db?cache=shared&mode=rwc"))
}

func TestNormalizeDSN(t *testing.T) {
	assert.Equal(t, "postgresql://h/db", normalizeDSN("postgresql+asyncpg://h/db"))
	assert.Equal(t, "postgres://h/db", normalizeDSN("postgres+pgx://h/db"))
	assert.Equal(t, "postgres://h/db", normalizeDSN(" postgres://h/db "))
}

func TestOpenSelectsSQLite(t *testing.T) {
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.(*SQLiteStore)
	assert.True(t, ok)
}
