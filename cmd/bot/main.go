package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/killerman6157/Analyst-Market-Guide/internal/bot"
	"github.com/killerman6157/Analyst-Market-Guide/internal/config"
	"github.com/killerman6157/Analyst-Market-Guide/internal/dispatcher"
	"github.com/killerman6157/Analyst-Market-Guide/internal/scheduler"
	"github.com/killerman6157/Analyst-Market-Guide/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	store, err := storage.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Error("open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	for _, chatID := range cfg.InitialRecipients {
		added, err := store.AddSubscriber(context.Background(), chatID)
		if err != nil {
			log.Error("seed subscriber", "chat_id", chatID, "error", err)
			os.Exit(1)
		}
		if added {
			log.Info("seeded subscriber", "chat_id", chatID)
		}
	}

	b, err := bot.New(cfg.TelegramBotToken, store, cfg, log)
	if err != nil {
		log.Error("create bot", "error", err)
		os.Exit(1)
	}

	disp := dispatcher.New(store, b, log)
	sched := scheduler.New(disp, cfg.FireHour, cfg.FireMinute, cfg.Location(), log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting bot", "fire_time", cfg.FireTime(), "timezone", cfg.Timezone)

	schedDone := make(chan struct{})
	go func() {
		defer close(schedDone)
		sched.Run(ctx)
	}()

	b.Run(ctx)

	// A fire cycle in progress at shutdown runs to completion.
	<-schedDone

	log.Info("bot stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
