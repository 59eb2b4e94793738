// Package dispatcher fans the daily guide out to all subscribed chats.
package dispatcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/killerman6157/Analyst-Market-Guide/internal/catalog"
	"github.com/killerman6157/Analyst-Market-Guide/internal/model"
	"github.com/killerman6157/Analyst-Market-Guide/internal/storage"
)

// Sender is the interface for delivering a message to a chat. It must be
// safe to call concurrently for distinct chats.
type Sender interface {
	Send(chatID int64, text string) error
}

// Dispatcher runs fire cycles: it resolves the day's message, walks a
// snapshot of the subscriber registry and delivers to each chat that has
// not yet received the message for that date.
type Dispatcher struct {
	store      storage.Storage
	sender     Sender
	log        *slog.Logger
	backoff    time.Duration
	maxRetries uint64
	retention  int
}

// New creates a Dispatcher with the default retry policy (one retry after
// a short constant backoff) and a 2-day ledger retention window.
func New(store storage.Storage, sender Sender, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		store:      store,
		sender:     sender,
		log:        log,
		backoff:    2 * time.Second,
		maxRetries: 1,
		retention:  2,
	}
}

// SetBackoff overrides the retry backoff interval (useful for testing).
func (d *Dispatcher) SetBackoff(b time.Duration) {
	d.backoff = b
}

// Dispatch runs one fire cycle for the given fire instant. Failures are
// isolated per chat: a chat whose delivery exhausts its retries is logged
// and skipped, never marked fired, and never blocks delivery to the rest.
func (d *Dispatcher) Dispatch(ctx context.Context, at time.Time) {
	date := at.Format(model.DateLayout)
	text := catalog.Lookup(at.Weekday())

	subs, err := d.store.ListSubscribers(ctx)
	if err != nil {
		d.log.Error("list subscribers", "date", date, "error", err)
		return
	}

	delivered := 0
	for _, sub := range subs {
		if ctx.Err() != nil {
			return
		}

		fired, err := d.store.AlreadyFired(ctx, sub.ChatID, date)
		if err != nil {
			d.log.Error("check ledger", "chat_id", sub.ChatID, "date", date, "error", err)
			continue
		}
		if fired {
			continue
		}

		if err := d.send(ctx, sub.ChatID, text); err != nil {
			d.log.Error("deliver guide", "chat_id", sub.ChatID, "date", date, "error", err)
			continue
		}

		if err := d.store.MarkFired(ctx, sub.ChatID, date); err != nil {
			d.log.Error("mark fired", "chat_id", sub.ChatID, "date", date, "error", err)
		}
		delivered++
	}

	if delivered > 0 {
		d.log.Info("sent daily guide", "date", date, "day", at.Weekday().String(), "count", delivered)
	}

	cutoff := at.AddDate(0, 0, -d.retention).Format(model.DateLayout)
	if err := d.store.PruneFired(ctx, cutoff); err != nil {
		d.log.Error("prune ledger", "before", cutoff, "error", err)
	}
}

func (d *Dispatcher) send(ctx context.Context, chatID int64, text string) error {
	b := retry.WithMaxRetries(d.maxRetries, retry.NewConstant(d.backoff))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := d.sender.Send(chatID, text); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
