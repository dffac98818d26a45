package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
)

const conversationColumns = `id, seller_id, buyer_id, read_by_seller, read_by_buyer, created_at, updated_at`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			id TEXT PRIMARY KEY,
			seller_id TEXT NOT NULL,
			buyer_id TEXT NOT NULL,
			read_by_seller INTEGER NOT NULL,
			read_by_buyer INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (seller_id, buyer_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_seller ON conversations(seller_id)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_buyer ON conversations(buyer_id)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateConversation inserts a conversation. A duplicate id or seller/buyer
// pair fails with the driver's constraint error.
func (s *SQLiteStore) CreateConversation(ctx context.Context, c *domain.Conversation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (`+conversationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.SellerID, c.BuyerID, c.ReadBySeller, c.ReadByBuyer, c.CreatedAt, c.UpdatedAt)
	return err
}

// GetConversation retrieves a conversation by ID.
func (s *SQLiteStore) GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+conversationColumns+` FROM conversations WHERE id = ?`, conversationID)
	return scanConversation(row)
}

// ListConversationsBySeller lists the seller's conversations in insertion order.
func (s *SQLiteStore) ListConversationsBySeller(ctx context.Context, sellerID string) ([]domain.Conversation, error) {
	return s.list(ctx, `seller_id`, sellerID)
}

// ListConversationsByBuyer lists the buyer's conversations in insertion order.
func (s *SQLiteStore) ListConversationsByBuyer(ctx context.Context, buyerID string) ([]domain.Conversation, error) {
	return s.list(ctx, `buyer_id`, buyerID)
}

func (s *SQLiteStore) list(ctx context.Context, column, value string) ([]domain.Conversation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+conversationColumns+` FROM conversations WHERE `+column+` = ? ORDER BY rowid ASC`, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := []domain.Conversation{}
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, *c)
	}
	return conversations, rows.Err()
}

// UpdateConversationRead sets both read flags on the conversation whose id
// matches and returns the updated row.
func (s *SQLiteStore) UpdateConversationRead(ctx context.Context, conversationID string, readBySeller, readByBuyer bool, updatedAt time.Time) (*domain.Conversation, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE conversations SET read_by_seller = ?, read_by_buyer = ?, updated_at = ? WHERE id = ?`,
		readBySeller, readByBuyer, updatedAt, conversationID)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	c, err := scanConversation(tx.QueryRowContext(ctx,
		`SELECT `+conversationColumns+` FROM conversations WHERE id = ?`, conversationID))
	if err != nil {
		return nil, err
	}
	return c, tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversation(row rowScanner) (*domain.Conversation, error) {
	var c domain.Conversation
	err := row.Scan(&c.ID, &c.SellerID, &c.BuyerID, &c.ReadBySeller, &c.ReadByBuyer, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
