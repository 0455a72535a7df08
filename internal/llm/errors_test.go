package llm

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
)

func TestClassify_APIStatuses(t *testing.T) {
	cases := []struct {
		status int
		want   Kind
	}{
		{401, KindAuth},
		{403, KindAuth},
		{429, KindRateLimit},
		{500, KindUpstream},
		{503, KindUpstream},
	}
	for _, tc := range cases {
		err := classify(&openai.APIError{HTTPStatusCode: tc.status, Message: "boom"})
		require.Equal(t, tc.want, err.Kind, "status %d", tc.status)
	}
}

func TestClassify_TransportError(t *testing.T) {
	cause := &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	err := classify(cause)
	require.Equal(t, KindNetwork, err.Kind)
	require.ErrorIs(t, err, cause)
}

func TestClassify_MalformedResponse(t *testing.T) {
	err := classify(&openai.RequestError{Err: errors.New("invalid character '<'")})
	require.Equal(t, KindMalformed, err.Kind)

	err = classify(fmt.Errorf("stream: %w", openai.ErrTooManyEmptyStreamMessages))
	require.Equal(t, KindMalformed, err.Kind)
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("turn failed: %w", &Error{Kind: KindRateLimit, Err: errors.New("slow down")})
	require.Equal(t, KindRateLimit, KindOf(wrapped))
	require.Equal(t, KindNetwork, KindOf(errors.New("anything else")))
}
