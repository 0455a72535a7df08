package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comigor/solace/internal/llm"
	"github.com/comigor/solace/internal/store"
)

func TestRespond_UpstreamFailureKeepsUserMessage(t *testing.T) {
	upstream := &llm.Error{Kind: llm.KindNetwork, Err: errors.New("dial tcp: connection refused")}
	completer := &fakeCompleter{openErr: upstream}
	eng, s := newTestEngine(t, completer)

	chatID, err := s.CreateChat("flaky upstream")
	require.NoError(t, err)

	turn, err := eng.Respond(context.Background(), chatID, "are you there?", testSettings(), nil)
	require.Error(t, err)
	require.Equal(t, llm.KindNetwork, llm.KindOf(err))

	// User message is durable, no assistant message was appended.
	history, err := s.History(chatID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, store.RoleUser, history[0].Role)
	require.Empty(t, turn.Reply)
}

func TestRespond_MidStreamFailureDiscardsPartialReply(t *testing.T) {
	streamErr := &llm.Error{Kind: llm.KindRateLimit, Err: errors.New("429")}
	completer := &fakeCompleter{stream: &fakeStream{
		fragments: []string{"partial ", "reply"},
		failAfter: 1,
		err:       streamErr,
	}}
	eng, s := newTestEngine(t, completer)

	chatID, err := s.CreateChat("cut off")
	require.NoError(t, err)

	var streamed string
	_, err = eng.Respond(context.Background(), chatID, "tell me more", testSettings(), func(frag string) {
		streamed += frag
	})
	require.Error(t, err)
	require.Equal(t, llm.KindRateLimit, llm.KindOf(err))
	require.Equal(t, "partial ", streamed)
	require.True(t, completer.stream.closed)

	// No partial assistant row is persisted.
	history, err := s.History(chatID)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestRespond_SessionUsableAfterFailure(t *testing.T) {
	completer := &fakeCompleter{openErr: &llm.Error{Kind: llm.KindUpstream, Err: errors.New("500")}}
	eng, s := newTestEngine(t, completer)

	chatID, err := s.CreateChat("recovers")
	require.NoError(t, err)

	_, err = eng.Respond(context.Background(), chatID, "first try", testSettings(), nil)
	require.Error(t, err)

	// Next turn on the same session succeeds once upstream recovers.
	completer.openErr = nil
	completer.stream = &fakeStream{fragments: []string{"all good"}, failAfter: -1}

	turn, err := eng.Respond(context.Background(), chatID, "second try", testSettings(), nil)
	require.NoError(t, err)
	require.Equal(t, "all good", turn.Reply)

	history, err := s.History(chatID)
	require.NoError(t, err)
	// first user message, second user message, one reply
	require.Len(t, history, 3)
}
