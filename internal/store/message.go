package store

import "time"

// Message roles. Alternation (user then assistant) is caller discipline; the
// store does not enforce it.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversational turn. Rows are immutable once written.
type Message struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Chat identifies one conversation thread.
type Chat struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	LastMessage time.Time `json:"last_message"`
	CreatedAt   time.Time `json:"created_at"`
}

// Prompt is a named system-prompt template, e.g. a personality prompt.
type Prompt struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Content     string `json:"content"`
	Description string `json:"description"`
	IsDefault   bool   `json:"is_default"`
}
