package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"github.com/killerman6157/Analyst-Market-Guide/internal/model"
	"github.com/killerman6157/Analyst-Market-Guide/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements Storage backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// AddSubscriber registers a chat, reporting whether it was newly added.
func (s *SQLite) AddSubscriber(ctx context.Context, chatID int64) (bool, error) {
	now := time.Now().UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO subscribers (chat_id, created_at) VALUES (?, ?)`,
		chatID, now,
	)
	if err != nil {
		return false, fmt.Errorf("insert subscriber: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// RemoveSubscriber deletes a chat, reporting whether it was present.
func (s *SQLite) RemoveSubscriber(ctx context.Context, chatID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM subscribers WHERE chat_id = ?`, chatID)
	if err != nil {
		return false, fmt.Errorf("delete subscriber: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// ListSubscribers returns all subscribed chats in insertion order.
func (s *SQLite) ListSubscribers(ctx context.Context) ([]model.Subscriber, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, chat_id, created_at FROM subscribers ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query subscribers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var subs []model.Subscriber
	for rows.Next() {
		var sub model.Subscriber
		var created string
		if err := rows.Scan(&sub.ID, &sub.ChatID, &created); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		sub.CreatedAt, _ = time.Parse(timeLayout, created)
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// IsSubscribed reports whether a chat is currently subscribed.
func (s *SQLite) IsSubscribed(ctx context.Context, chatID int64) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM subscribers WHERE chat_id = ?`, chatID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check subscriber: %w", err)
	}
	return count > 0, nil
}

// MarkFired records that the daily message was delivered to a chat on a date.
func (s *SQLite) MarkFired(ctx context.Context, chatID int64, date string) error {
	now := time.Now().UTC().Format(timeLayout)
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO fire_ledger (chat_id, fire_date, fired_at) VALUES (?, ?, ?)`,
		chatID, date, now,
	)
	if err != nil {
		return fmt.Errorf("mark fired: %w", err)
	}
	return nil
}

// AlreadyFired checks whether a delivery was recorded for (chatID, date).
func (s *SQLite) AlreadyFired(ctx context.Context, chatID int64, date string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM fire_ledger WHERE chat_id = ? AND fire_date = ?`,
		chatID, date,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check fired: %w", err)
	}
	return count > 0, nil
}

// PruneFired deletes ledger entries with a fire date before the given one.
// Dates use model.DateLayout, so string comparison orders correctly.
func (s *SQLite) PruneFired(ctx context.Context, before string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM fire_ledger WHERE fire_date < ?`, before)
	if err != nil {
		return fmt.Errorf("prune ledger: %w", err)
	}
	return nil
}
