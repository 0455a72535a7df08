package prompt

import (
	"errors"
	"fmt"

	"github.com/comigor/solace/internal/store"
)

// Personality is a named system-prompt template controlling response tone.
type Personality struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
}

// DefaultPersonality is the key used when a requested personality is unknown.
const DefaultPersonality = "friendly"

// Builtins are the stock personalities, seeded into the prompt store so users
// can edit them; edited records win over these on lookup.
var Builtins = []Personality{
	{
		Key:         "friendly",
		Name:        "Friendly",
		Description: "Warm and conversational",
		Prompt:      "You are a friendly and helpful mental health assistant. Express yourself in a warm and approachable way while maintaining accuracy.",
	},
	{
		Key:         "professional",
		Name:        "Professional",
		Description: "Direct and clear",
		Prompt:      "You are a professional mental health assistant. Be direct and clear in your responses.",
	},
	{
		Key:         "therapeutic",
		Name:        "Therapeutic",
		Description: "Supportive and empathetic",
		Prompt:      "You are a therapeutic mental health assistant focused on providing emotional support. Respond with empathy and understanding while offering constructive guidance.",
	},
}

func builtin(key string) (Personality, bool) {
	for _, p := range Builtins {
		if p.Key == key {
			return p, true
		}
	}
	return Personality{}, false
}

// promptName is the prompts-table key for a personality.
func promptName(key string) string {
	return "personality_" + key
}

// Seed writes the stock personality prompts into the store, skipping any the
// user already has a record for.
func Seed(s *store.Store) error {
	for _, p := range Builtins {
		name := promptName(p.Key)
		if _, err := s.Prompt(name); err == nil {
			continue
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("seed personality %s: %w", p.Key, err)
		}
		desc := p.Name + " personality prompt"
		if err := s.SavePrompt(name, p.Prompt, desc, p.Key == DefaultPersonality); err != nil {
			return fmt.Errorf("seed personality %s: %w", p.Key, err)
		}
	}
	return nil
}

// Resolve returns the personality for key, preferring the persisted prompt
// text over the built-in one. Unknown keys fall back to the default
// personality, matching the original selection behavior.
func Resolve(s *store.Store, key string) (Personality, error) {
	p, ok := builtin(key)
	if !ok {
		// A fully user-defined personality only needs a prompt record.
		rec, err := s.Prompt(promptName(key))
		if errors.Is(err, store.ErrNotFound) {
			p, _ = builtin(DefaultPersonality)
			return p, nil
		}
		if err != nil {
			return Personality{}, err
		}
		return Personality{Key: key, Name: key, Description: rec.Description, Prompt: rec.Content}, nil
	}

	rec, err := s.Prompt(promptName(key))
	if errors.Is(err, store.ErrNotFound) {
		return p, nil
	}
	if err != nil {
		return Personality{}, err
	}
	p.Prompt = rec.Content
	return p, nil
}
