// Package store provides SQLite-backed persistence for chats, messages and
// prompt templates. The schema is created on open.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"

	"github.com/comigor/solace/internal/logger"
)

// ErrNotFound is returned when a chat or prompt does not exist.
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS chats (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	last_message DATETIME NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	chat_id TEXT NOT NULL REFERENCES chats(id),
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_chat ON messages(chat_id, id);
CREATE TABLE IF NOT EXISTS prompts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	content TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	is_default INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);`

// Store wraps the SQLite database. Single-writer, short-lived statements; no
// cross-row transactional guarantees beyond per-row durability.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_busy_timeout=10000&_fk=1")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	logger.L.Info("store opened", "path", path)
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateChat creates a new chat thread and returns its id.
func (s *Store) CreateChat(title string) (string, error) {
	id := uuid.NewString()
	now := time.Now()
	_, err := s.db.Exec(`INSERT INTO chats (id, title, last_message, created_at) VALUES (?,?,?,?);`,
		id, title, now, now)
	if err != nil {
		return "", fmt.Errorf("create chat: %w", err)
	}
	return id, nil
}

// ListChats returns all chats, most recently active first.
func (s *Store) ListChats() ([]Chat, error) {
	rows, err := s.db.Query(`SELECT id, title, last_message, created_at FROM chats ORDER BY last_message DESC;`)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()
	var out []Chat
	for rows.Next() {
		var c Chat
		if err := rows.Scan(&c.ID, &c.Title, &c.LastMessage, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteChat removes a chat and all of its messages.
func (s *Store) DeleteChat(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete chat: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM messages WHERE chat_id = ?;`, id); err != nil {
		return fmt.Errorf("delete chat messages: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM chats WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete chat: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete chat %s: %w", id, ErrNotFound)
	}
	return tx.Commit()
}

// AppendMessage appends one message to a chat and returns the row id. The
// chat row must already exist; its last_message stamp is bumped.
func (s *Store) AppendMessage(sessionID, role, content string) (int64, error) {
	now := time.Now()
	res, err := s.db.Exec(`INSERT INTO messages (chat_id, role, content, created_at) VALUES (?,?,?,?);`,
		sessionID, role, content, now)
	if err != nil {
		return 0, fmt.Errorf("append message: %w", err)
	}
	if _, err := s.db.Exec(`UPDATE chats SET last_message = ? WHERE id = ?;`, now, sessionID); err != nil {
		logger.L.Warn("failed to bump chat activity stamp", "chat", sessionID, "error", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("append message: %w", err)
	}
	return id, nil
}

// RecentMessages returns the most recent k messages of a chat in
// chronological order, fewer when the history is shorter.
func (s *Store) RecentMessages(sessionID string, k int) ([]Message, error) {
	if k <= 0 {
		return nil, nil
	}
	rows, err := s.db.Query(`SELECT id, chat_id, role, content, created_at FROM messages
		WHERE chat_id = ? ORDER BY id DESC LIMIT ?;`, sessionID, k)
	if err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}
	defer rows.Close()
	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}
	// Rows arrive newest first; flip to chronological order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// History returns the full message history of a chat in chronological order.
func (s *Store) History(sessionID string) ([]Message, error) {
	rows, err := s.db.Query(`SELECT id, chat_id, role, content, created_at FROM messages
		WHERE chat_id = ? ORDER BY id ASC;`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	defer rows.Close()
	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SavePrompt inserts or updates a named prompt template.
func (s *Store) SavePrompt(name, content, description string, isDefault bool) error {
	_, err := s.db.Exec(`INSERT INTO prompts (id, name, content, description, is_default, created_at)
		VALUES (?,?,?,?,?,?)
		ON CONFLICT(name) DO UPDATE SET content = excluded.content,
			description = excluded.description, is_default = excluded.is_default;`,
		uuid.NewString(), name, content, description, boolToInt(isDefault), time.Now())
	if err != nil {
		return fmt.Errorf("save prompt %s: %w", name, err)
	}
	return nil
}

// Prompt returns the prompt template with the given name.
func (s *Store) Prompt(name string) (Prompt, error) {
	var p Prompt
	var def int
	err := s.db.QueryRow(`SELECT id, name, content, description, is_default FROM prompts WHERE name = ?;`, name).
		Scan(&p.ID, &p.Name, &p.Content, &p.Description, &def)
	if errors.Is(err, sql.ErrNoRows) {
		return Prompt{}, fmt.Errorf("prompt %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return Prompt{}, fmt.Errorf("get prompt %s: %w", name, err)
	}
	p.IsDefault = def != 0
	return p, nil
}

// ListPrompts returns all prompt templates ordered by name.
func (s *Store) ListPrompts() ([]Prompt, error) {
	rows, err := s.db.Query(`SELECT id, name, content, description, is_default FROM prompts ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()
	var out []Prompt
	for rows.Next() {
		var p Prompt
		var def int
		if err := rows.Scan(&p.ID, &p.Name, &p.Content, &p.Description, &def); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		p.IsDefault = def != 0
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePrompt removes a prompt template by name.
func (s *Store) DeletePrompt(name string) error {
	res, err := s.db.Exec(`DELETE FROM prompts WHERE name = ?;`, name)
	if err != nil {
		return fmt.Errorf("delete prompt %s: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("prompt %s: %w", name, ErrNotFound)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
