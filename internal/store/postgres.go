package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
)

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to dsn, verifies the connection and migrates.
func NewPostgresStore(ctx context.Context, dsn string, opts ...func(*pgxpool.Config)) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(normalizeDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.MaxConns == 0 {
		cfg.MaxConns = 4
	}
	if cfg.MaxConnIdleTime == 0 {
		cfg.MaxConnIdleTime = 5 * time.Minute
	}
	if cfg.MaxConnLifetime == 0 {
		cfg.MaxConnLifetime = 60 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: new pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	store := &PostgresStore{pool: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// normalizeDSN strips driver suffixes such as "+asyncpg" that other
// ecosystems put in their connection strings.
func normalizeDSN(dsn string) string {
	s := strings.TrimSpace(dsn)
	for _, prefix := range []string{"postgresql", "postgres"} {
		for _, suffix := range []string{"+asyncpg", "+pgx"} {
			s = strings.Replace(s, prefix+suffix+"://", prefix+"://", 1)
		}
	}
	return s
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			seq BIGSERIAL,
			id TEXT PRIMARY KEY,
			seller_id TEXT NOT NULL,
			buyer_id TEXT NOT NULL,
			read_by_seller BOOLEAN NOT NULL,
			read_by_buyer BOOLEAN NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (seller_id, buyer_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_seller ON conversations(seller_id)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_buyer ON conversations(buyer_id)`,
	}
	for _, m := range migrations {
		if _, err := s.pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// CreateConversation inserts a conversation.
func (s *PostgresStore) CreateConversation(ctx context.Context, c *domain.Conversation) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO conversations (`+conversationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.SellerID, c.BuyerID, c.ReadBySeller, c.ReadByBuyer, c.CreatedAt, c.UpdatedAt)
	return err
}

// GetConversation retrieves a conversation by ID.
func (s *PostgresStore) GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+conversationColumns+` FROM conversations WHERE id = $1`, conversationID)
	return scanPgConversation(row)
}

// ListConversationsBySeller lists the seller's conversations in insertion order.
func (s *PostgresStore) ListConversationsBySeller(ctx context.Context, sellerID string) ([]domain.Conversation, error) {
	return s.list(ctx, `seller_id`, sellerID)
}

// ListConversationsByBuyer lists the buyer's conversations in insertion order.
func (s *PostgresStore) ListConversationsByBuyer(ctx context.Context, buyerID string) ([]domain.Conversation, error) {
	return s.list(ctx, `buyer_id`, buyerID)
}

func (s *PostgresStore) list(ctx context.Context, column, value string) ([]domain.Conversation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+conversationColumns+` FROM conversations WHERE `+column+` = $1 ORDER BY seq ASC`, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := []domain.Conversation{}
	for rows.Next() {
		c, err := scanPgConversation(rows)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, *c)
	}
	return conversations, rows.Err()
}

// UpdateConversationRead sets both read flags on the matching conversation in
// a single statement.
func (s *PostgresStore) UpdateConversationRead(ctx context.Context, conversationID string, readBySeller, readByBuyer bool, updatedAt time.Time) (*domain.Conversation, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE conversations SET read_by_seller = $1, read_by_buyer = $2, updated_at = $3
		WHERE id = $4 RETURNING `+conversationColumns,
		readBySeller, readByBuyer, updatedAt, conversationID)
	return scanPgConversation(row)
}

func scanPgConversation(row pgx.Row) (*domain.Conversation, error) {
	var c domain.Conversation
	err := row.Scan(&c.ID, &c.SellerID, &c.BuyerID, &c.ReadBySeller, &c.ReadByBuyer, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
