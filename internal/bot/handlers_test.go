package bot

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/killerman6157/Analyst-Market-Guide/internal/config"
	"github.com/killerman6157/Analyst-Market-Guide/internal/storage"
)

// --- mocks ---

type sentMsg struct {
	ChatID int64
	Text   string
}

type mockAPI struct {
	mu   sync.Mutex
	sent []sentMsg
}

func (m *mockAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		m.mu.Lock()
		m.sent = append(m.sent, sentMsg{ChatID: msg.ChatID, Text: msg.Text})
		m.mu.Unlock()
	}
	return tgbotapi.Message{}, nil
}

func (m *mockAPI) GetUpdatesChan(_ tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(tgbotapi.UpdatesChannel)
}

func (m *mockAPI) StopReceivingUpdates() {}

func (m *mockAPI) lastText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return ""
	}
	return m.sent[len(m.sent)-1].Text
}

func (m *mockAPI) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// --- helpers ---

func newTestBot(t *testing.T) (*Bot, *mockAPI, *storage.SQLite) {
	t.Helper()
	store, err := storage.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	api := &mockAPI{}
	b := &Bot{
		api:   api,
		store: store,
		cfg:   &config.Config{FireHour: 9, FireMinute: 0, Timezone: "Africa/Lagos"},
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return b, api, store
}

func commandMessage(chatID int64, text string) *tgbotapi.Message {
	cmdLen := len(text)
	if i := strings.IndexByte(text, ' '); i >= 0 {
		cmdLen = i
	}
	return &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: chatID},
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: cmdLen},
		},
	}
}

func requireContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("reply missing %q, got:\n%s", want, got)
	}
}

// --- handler tests ---

func TestHandleStart(t *testing.T) {
	ctx := context.Background()

	t.Run("subscribes and echoes chat id", func(t *testing.T) {
		b, api, store := newTestBot(t)
		b.handleStart(ctx, 100)

		reply := api.lastText()
		requireContains(t, reply, "Welcome to Analyst Market Guide")
		requireContains(t, reply, "09:00 (Africa/Lagos)")
		requireContains(t, reply, "Your chat ID: 100")

		subscribed, err := store.IsSubscribed(ctx, 100)
		if err != nil {
			t.Fatalf("is subscribed: %v", err)
		}
		if !subscribed {
			t.Error("chat 100 should be subscribed after /start")
		}
	})

	t.Run("second start reports already subscribed", func(t *testing.T) {
		b, api, _ := newTestBot(t)
		b.handleStart(ctx, 100)
		b.handleStart(ctx, 100)
		requireContains(t, api.lastText(), "already subscribed")
	})
}

func TestHandleStop(t *testing.T) {
	ctx := context.Background()

	t.Run("unsubscribes", func(t *testing.T) {
		b, api, store := newTestBot(t)
		b.handleStart(ctx, 100)
		b.handleStop(ctx, 100)

		requireContains(t, api.lastText(), "Unsubscribed")

		subscribed, err := store.IsSubscribed(ctx, 100)
		if err != nil {
			t.Fatalf("is subscribed: %v", err)
		}
		if subscribed {
			t.Error("chat 100 should not be subscribed after /stop")
		}
	})

	t.Run("stop without subscription", func(t *testing.T) {
		b, api, _ := newTestBot(t)
		b.handleStop(ctx, 100)
		requireContains(t, api.lastText(), "weren't subscribed")
	})
}

func TestHandleMyID(t *testing.T) {
	b, api, _ := newTestBot(t)
	b.handleMyID(424242)
	requireContains(t, api.lastText(), "Your chat ID: 424242")
}

func TestHandleHelp(t *testing.T) {
	b, api, _ := newTestBot(t)
	b.handleHelp(100)
	reply := api.lastText()
	requireContains(t, reply, "/start")
	requireContains(t, reply, "/stop")
	requireContains(t, reply, "09:00 (Africa/Lagos)")
}

func TestHandleStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("not subscribed", func(t *testing.T) {
		b, api, _ := newTestBot(t)
		b.handleStatus(ctx, 100)
		reply := api.lastText()
		requireContains(t, reply, "09:00 (Africa/Lagos)")
		requireContains(t, reply, "not subscribed")
	})

	t.Run("subscribed", func(t *testing.T) {
		b, api, _ := newTestBot(t)
		b.handleStart(ctx, 100)
		b.handleStatus(ctx, 100)
		requireContains(t, api.lastText(), "is subscribed")
	})
}

func TestHandleCommandRouting(t *testing.T) {
	ctx := context.Background()

	t.Run("routes start", func(t *testing.T) {
		b, api, store := newTestBot(t)
		b.handleCommand(ctx, commandMessage(100, "/start"))
		requireContains(t, api.lastText(), "Welcome")

		subscribed, _ := store.IsSubscribed(ctx, 100)
		if !subscribed {
			t.Error("expected /start to subscribe")
		}
	})

	t.Run("unknown command is ignored silently", func(t *testing.T) {
		b, api, _ := newTestBot(t)
		b.handleCommand(ctx, commandMessage(100, "/frobnicate"))
		if api.count() != 0 {
			t.Errorf("unknown command produced %d replies, want none", api.count())
		}
	})
}
