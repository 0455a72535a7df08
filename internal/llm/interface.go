package llm

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// FragmentStream is a finite sequence of reply fragments. Recv returns
// io.EOF when the upstream signals completion; the stream cannot be
// restarted afterwards.
type FragmentStream interface {
	Recv() (string, error)
	Close() error
}

// Completer is the minimal subset of Client used by the engine; it is easy
// to mock in tests.
type Completer interface {
	Stream(ctx context.Context, messages []openai.ChatCompletionMessage, mc ModelConfig) (FragmentStream, error)
}
