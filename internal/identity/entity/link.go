package entity

import "time"

// Link binds an email to a chat once the chat presents its token.
type Link struct {
	ID          int64
	Email       string
	TokenDigest string
	ChatID      *int64
	Confirmed   bool
	CreatedAt   time.Time
	ConfirmedAt *time.Time
}
