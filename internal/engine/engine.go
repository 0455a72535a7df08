// Package engine runs one conversation turn: sentiment tag, persist the user
// message, window the history, assemble the payload, stream the reply and
// record it.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/qmuntal/stateless"
	"github.com/sashabaranov/go-openai"

	"github.com/comigor/solace/internal/llm"
	"github.com/comigor/solace/internal/logger"
	"github.com/comigor/solace/internal/prompt"
	"github.com/comigor/solace/internal/sentiment"
	"github.com/comigor/solace/internal/store"
)

// FSM states
type FSMState stateless.State

var (
	StateIdle            FSMState = "Idle"
	StateTagging         FSMState = "TaggingSentiment"
	StateBuildingContext FSMState = "BuildingContext"
	StateStreaming       FSMState = "StreamingReply"
	StateRecording       FSMState = "RecordingReply"
	StateDone            FSMState = "Done"  // Terminal: successful completion
	StateError           FSMState = "Error" // Terminal: error state
)

// FSM triggers
type FSMTrigger stateless.Trigger

var (
	TriggerStart         FSMTrigger = "Start"
	TriggerTagged        FSMTrigger = "Tagged"
	TriggerContextReady  FSMTrigger = "ContextReady"
	TriggerStreamDrained FSMTrigger = "StreamDrained"
	TriggerReplyRecorded FSMTrigger = "ReplyRecorded"
	TriggerErrorOccurred FSMTrigger = "ErrorOccurred"
)

// Settings is the per-turn configuration. The caller owns the mutable copy
// and hands the engine a value per request; there is no ambient settings
// state inside the engine.
type Settings struct {
	Model         llm.ModelConfig
	Personality   string
	HistoryWindow int
	// Resources are suggested when a negative tag is at least this
	// confident.
	ResourceThreshold float64
}

// Turn is the outcome of one user action.
type Turn struct {
	SessionID string
	Sentiment sentiment.Result
	Resources []sentiment.Resource
	Reply     string
}

// Engine wires the store, the tagger and the completion client together.
type Engine struct {
	store     *store.Store
	tagger    *sentiment.Tagger
	completer llm.Completer
}

// New creates an engine.
func New(s *store.Store, tagger *sentiment.Tagger, completer llm.Completer) *Engine {
	return &Engine{store: s, tagger: tagger, completer: completer}
}

// Respond executes one turn. An empty sessionID starts a new chat whose id
// is reported in the returned Turn. Fragments are handed to onFragment as
// they arrive; the full reply is persisted only after the stream drains.
// On an upstream failure the user message stays persisted, no assistant
// message is appended and the error is returned; the session remains usable.
func (e *Engine) Respond(ctx context.Context, sessionID, text string, settings Settings, onFragment func(string)) (Turn, error) {
	type fsmContext struct {
		turn      Turn
		payload   []openai.ChatCompletionMessage
		reply     strings.Builder
		lastError error
	}
	fsmCtx := &fsmContext{turn: Turn{SessionID: sessionID}}

	if settings.HistoryWindow <= 0 {
		settings.HistoryWindow = 5
	}
	if settings.ResourceThreshold == 0 {
		settings.ResourceThreshold = 0.5
	}
	if onFragment == nil {
		onFragment = func(string) {}
	}

	fsm := stateless.NewStateMachine(StateIdle)

	fsm.Configure(StateIdle).
		Permit(TriggerStart, StateTagging)

	// Tagging is advisory: it picks the resource suggestions and never
	// blocks the main path.
	fsm.Configure(StateTagging).
		OnEntry(func(ctx context.Context, _ ...any) error {
			fsmCtx.turn.Sentiment = e.tagger.Classify(text)
			logger.L.Debug("message tagged",
				"mood", fsmCtx.turn.Sentiment.Mood,
				"polarity", fsmCtx.turn.Sentiment.Polarity)
			if fsmCtx.turn.Sentiment.Mood == sentiment.Negative &&
				fsmCtx.turn.Sentiment.Confidence > settings.ResourceThreshold {
				fsmCtx.turn.Resources = sentiment.Resources(sentiment.Negative)
			}
			return fsm.FireCtx(ctx, TriggerTagged)
		}).
		Permit(TriggerTagged, StateBuildingContext).
		Permit(TriggerErrorOccurred, StateError)

	fsm.Configure(StateBuildingContext).
		OnEntry(func(ctx context.Context, _ ...any) error {
			if fsmCtx.turn.SessionID == "" {
				id, err := e.store.CreateChat(deriveTitle(text))
				if err != nil {
					fsmCtx.lastError = fmt.Errorf("create chat: %w", err)
					return fsm.FireCtx(ctx, TriggerErrorOccurred)
				}
				fsmCtx.turn.SessionID = id
			}

			// The window holds past turns only; the new message rides
			// separately at the end of the payload.
			history, err := e.store.RecentMessages(fsmCtx.turn.SessionID, settings.HistoryWindow)
			if err != nil {
				fsmCtx.lastError = fmt.Errorf("load history: %w", err)
				return fsm.FireCtx(ctx, TriggerErrorOccurred)
			}

			if _, err := e.store.AppendMessage(fsmCtx.turn.SessionID, store.RoleUser, text); err != nil {
				fsmCtx.lastError = fmt.Errorf("persist user message: %w", err)
				return fsm.FireCtx(ctx, TriggerErrorOccurred)
			}

			personality, err := prompt.Resolve(e.store, settings.Personality)
			if err != nil {
				fsmCtx.lastError = fmt.Errorf("resolve personality: %w", err)
				return fsm.FireCtx(ctx, TriggerErrorOccurred)
			}

			fsmCtx.payload = prompt.Build(personality, history, text)
			logger.L.Debug("payload assembled",
				"session", fsmCtx.turn.SessionID,
				"history", len(history),
				"personality", personality.Key)
			return fsm.FireCtx(ctx, TriggerContextReady)
		}).
		Permit(TriggerContextReady, StateStreaming).
		Permit(TriggerErrorOccurred, StateError)

	fsm.Configure(StateStreaming).
		OnEntry(func(ctx context.Context, _ ...any) error {
			stream, err := e.completer.Stream(ctx, fsmCtx.payload, settings.Model)
			if err != nil {
				fsmCtx.lastError = err
				return fsm.FireCtx(ctx, TriggerErrorOccurred)
			}
			defer stream.Close()

			for {
				fragment, err := stream.Recv()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					fsmCtx.lastError = err
					return fsm.FireCtx(ctx, TriggerErrorOccurred)
				}
				fsmCtx.reply.WriteString(fragment)
				onFragment(fragment)
			}
			return fsm.FireCtx(ctx, TriggerStreamDrained)
		}).
		Permit(TriggerStreamDrained, StateRecording).
		Permit(TriggerErrorOccurred, StateError)

	fsm.Configure(StateRecording).
		OnEntry(func(ctx context.Context, _ ...any) error {
			fsmCtx.turn.Reply = fsmCtx.reply.String()
			if _, err := e.store.AppendMessage(fsmCtx.turn.SessionID, store.RoleAssistant, fsmCtx.turn.Reply); err != nil {
				fsmCtx.lastError = fmt.Errorf("persist assistant reply: %w", err)
				return fsm.FireCtx(ctx, TriggerErrorOccurred)
			}
			return fsm.FireCtx(ctx, TriggerReplyRecorded)
		}).
		Permit(TriggerReplyRecorded, StateDone).
		Permit(TriggerErrorOccurred, StateError)

	if err := fsm.FireCtx(ctx, TriggerStart); err != nil && fsmCtx.lastError == nil {
		fsmCtx.lastError = err
	}

	if fsmCtx.lastError != nil {
		logger.L.Error("turn failed", "session", fsmCtx.turn.SessionID, "error", fsmCtx.lastError)
		return fsmCtx.turn, fsmCtx.lastError
	}
	return fsmCtx.turn, nil
}

// deriveTitle names a freshly created chat after its opening message.
func deriveTitle(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) > 50 {
		return string(runes[:50]) + "..."
	}
	return string(runes)
}
