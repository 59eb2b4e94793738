// Package storage defines the persistence interface and its implementations.
package storage

import (
	"context"

	"github.com/killerman6157/Analyst-Market-Guide/internal/model"
)

// Storage is the interface for all persistence operations. It covers the
// subscriber registry and the fire ledger, the only state shared between
// command handling and the fire cycle.
type Storage interface {
	// AddSubscriber registers a chat. It is idempotent and reports
	// whether the chat was newly added.
	AddSubscriber(ctx context.Context, chatID int64) (bool, error)
	// RemoveSubscriber deletes a chat. It is idempotent and reports
	// whether the chat was present.
	RemoveSubscriber(ctx context.Context, chatID int64) (bool, error)
	// ListSubscribers returns all subscribed chats in insertion order.
	// The returned slice is a point-in-time snapshot: concurrent
	// mutations never alter it.
	ListSubscribers(ctx context.Context) ([]model.Subscriber, error)
	// IsSubscribed reports whether a chat is currently subscribed.
	IsSubscribed(ctx context.Context, chatID int64) (bool, error)

	// MarkFired records a delivery for (chatID, date). Idempotent.
	MarkFired(ctx context.Context, chatID int64, date string) error
	// AlreadyFired reports whether a delivery was recorded for (chatID, date).
	AlreadyFired(ctx context.Context, chatID int64, date string) (bool, error)
	// PruneFired deletes ledger entries with a fire date before the given one.
	PruneFired(ctx context.Context, before string) error

	Close() error
}
