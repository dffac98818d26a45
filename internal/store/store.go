// Package store defines the storage interface and implementations.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
)

// Store defines the interface for conversation persistence.
// Lookups return (nil, nil) when nothing matches.
type Store interface {
	CreateConversation(ctx context.Context, conversation *domain.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error)
	ListConversationsBySeller(ctx context.Context, sellerID string) ([]domain.Conversation, error)
	ListConversationsByBuyer(ctx context.Context, buyerID string) ([]domain.Conversation, error)
	UpdateConversationRead(ctx context.Context, conversationID string, readBySeller, readByBuyer bool, updatedAt time.Time) (*domain.Conversation, error)

	// Lifecycle
	Close() error
}

// Open picks the implementation from the DSN: postgres:// and postgresql://
// go to pgx, everything else to sqlite.
func Open(ctx context.Context, dsn string) (Store, error) {
	if IsPostgresDSN(dsn) {
		return NewPostgresStore(ctx, dsn)
	}
	return NewSQLiteStore(dsn)
}

// IsPostgresDSN reports whether dsn addresses a Postgres server.
func IsPostgresDSN(dsn string) bool {
	s := strings.TrimSpace(dsn)
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://") ||
		strings.HasPrefix(s, "postgres+") || strings.HasPrefix(s, "postgresql+")
}
