package sentiment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify_EmptyInput(t *testing.T) {
	tagger := NewTagger()

	for _, text := range []string{"", "   ", "!!", ":smile:"} {
		r := tagger.Classify(text)
		require.Equal(t, Neutral, r.Mood, "input %q", text)
		require.Equal(t, 0.5, r.Confidence)
	}
}

func TestClassify_Polarity(t *testing.T) {
	tagger := NewTagger()

	pos := tagger.Classify("I love this, today was wonderful and I feel great")
	require.Equal(t, Positive, pos.Mood)
	require.Greater(t, pos.Polarity, 0.0)

	neg := tagger.Classify("I hate everything, this is terrible and awful")
	require.Equal(t, Negative, neg.Mood)
	require.Less(t, neg.Polarity, 0.0)
}

func TestClassify_Idempotent(t *testing.T) {
	tagger := NewTagger()

	const text = "I am feeling a bit anxious about tomorrow"
	first := tagger.Classify(text)
	for i := 0; i < 3; i++ {
		require.Equal(t, first, tagger.Classify(text))
	}
}

func TestClassify_ConfidenceBounds(t *testing.T) {
	tagger := NewTagger()

	for _, text := range []string{
		"absolutely fantastic amazing wonderful brilliant",
		"horrible disgusting awful miserable",
		"the meeting is at three",
	} {
		r := tagger.Classify(text)
		require.GreaterOrEqual(t, r.Confidence, 0.0)
		require.LessOrEqual(t, r.Confidence, 1.0)
	}
}

func TestResources_Lookup(t *testing.T) {
	require.NotEmpty(t, Resources(Negative))
	require.Equal(t, "Crisis Helpline", Resources(Negative)[0].Title)
	require.Len(t, Resources(Positive), 2)
	// Unknown labels fall back to the neutral set.
	require.Equal(t, Resources(Neutral), Resources(Mood("confused")))
}
