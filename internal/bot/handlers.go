package bot

import (
	"context"
	"fmt"
)

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	added, err := b.store.AddSubscriber(ctx, chatID)
	if err != nil {
		b.log.Error("add subscriber", "chat_id", chatID, "error", err)
		b.reply(chatID, "Something went wrong, please try again.")
		return
	}

	if !added {
		b.reply(chatID, fmt.Sprintf("You're already subscribed. The daily market guide arrives at %s (%s).",
			b.cfg.FireTime(), b.cfg.Timezone))
		return
	}

	b.reply(chatID, fmt.Sprintf(`Welcome to Analyst Market Guide!

You'll receive the trading plan for each day at %s (%s).

Your chat ID: %d

Use /stop to unsubscribe, /help for all commands.`,
		b.cfg.FireTime(), b.cfg.Timezone, chatID))
}

func (b *Bot) handleStop(ctx context.Context, chatID int64) {
	removed, err := b.store.RemoveSubscriber(ctx, chatID)
	if err != nil {
		b.log.Error("remove subscriber", "chat_id", chatID, "error", err)
		b.reply(chatID, "Something went wrong, please try again.")
		return
	}

	if !removed {
		b.reply(chatID, "You weren't subscribed.")
		return
	}
	b.reply(chatID, "Unsubscribed. You'll no longer receive the daily guide. Use /start to subscribe again.")
}

func (b *Bot) handleMyID(chatID int64) {
	b.reply(chatID, fmt.Sprintf("Your chat ID: %d", chatID))
}

func (b *Bot) handleHelp(chatID int64) {
	b.reply(chatID, fmt.Sprintf(`Analyst Market Guide sends one trading-plan reminder per day at %s (%s).

/start — subscribe to the daily guide
/stop — unsubscribe
/status — fire time and subscription state
/myid — show this chat's ID
/help — this message`,
		b.cfg.FireTime(), b.cfg.Timezone))
}

func (b *Bot) handleStatus(ctx context.Context, chatID int64) {
	subscribed, err := b.store.IsSubscribed(ctx, chatID)
	if err != nil {
		b.log.Error("check subscription", "chat_id", chatID, "error", err)
		b.reply(chatID, "Something went wrong, please try again.")
		return
	}

	state := "not subscribed"
	if subscribed {
		state = "subscribed"
	}
	b.reply(chatID, fmt.Sprintf("Daily guide fires at %s (%s).\nThis chat is %s.",
		b.cfg.FireTime(), b.cfg.Timezone, state))
}
