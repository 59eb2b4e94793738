// Package model defines the domain types used across the application.
package model

import "time"

// DateLayout is the civil date format used for fire ledger keys.
// Dates are always rendered in the configured fire timezone.
const DateLayout = "2006-01-02"

// Subscriber represents a chat subscribed to the daily guide.
type Subscriber struct {
	ID        int64
	ChatID    int64
	CreatedAt time.Time
}

// FireRecord marks that the daily message was delivered to a chat on a
// given civil date. Its presence suppresses duplicate delivery if a fire
// cycle runs again for the same date, including across process restarts.
type FireRecord struct {
	ChatID   int64
	FireDate string
	FiredAt  time.Time
}
