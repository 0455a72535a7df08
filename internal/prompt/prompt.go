// Package prompt assembles the outbound message payload from a personality
// prompt, a window of past turns and the new user message.
package prompt

import (
	"github.com/sashabaranov/go-openai"

	"github.com/comigor/solace/internal/store"
)

// contextReminder is appended to every system prompt so the model treats the
// windowed history as memory instead of claiming each turn is new.
const contextReminder = "You have access to the conversation history and should use it to maintain context."

// Build produces the upstream payload: system message first, then the
// history window in chronological order, then the new user message. The
// concatenation is deterministic; an empty history yields {system, user}.
func Build(p Personality, history []store.Message, userMessage string) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: p.Prompt + "\n\n" + contextReminder,
	})

	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == store.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	return append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})
}
