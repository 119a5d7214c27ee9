package models

import "fmt"

// Role tags a chat bubble
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Bubble is a single chat message shown in the chat window.
// User bubbles are fixed at creation. Bot bubbles start with a provisional
// text and are settled exactly once.
type Bubble struct {
	role    Role
	text    string
	settled bool
}

// NewUserBubble creates the request echo for symbol
func NewUserBubble(symbol string) *Bubble {
	return &Bubble{
		role:    RoleUser,
		text:    fmt.Sprintf(UserTextFormat, symbol),
		settled: true,
	}
}

// NewBotBubble creates the placeholder shown while symbol is being analyzed
func NewBotBubble(symbol string) *Bubble {
	return &Bubble{
		role: RoleBot,
		text: fmt.Sprintf(PendingTextFormat, symbol),
	}
}

// Role returns the bubble's role
func (b *Bubble) Role() Role {
	return b.role
}

// Text returns the current bubble text
func (b *Bubble) Text() string {
	return b.text
}

// Pending reports whether a bot bubble is still waiting for its response
func (b *Bubble) Pending() bool {
	return !b.settled
}

// Settle replaces the provisional text of a bot bubble.
// It returns false if the bubble is a user bubble or was already settled.
func (b *Bubble) Settle(text string) bool {
	if b.settled {
		return false
	}
	b.text = text
	b.settled = true
	return true
}
