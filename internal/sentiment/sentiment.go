// Package sentiment tags user messages with a lexical polarity label. The
// tag is advisory: it selects which support resources accompany a reply and
// never gates or alters the generated response.
package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
)

// Mood is the polarity label attached to a message.
type Mood string

const (
	Positive Mood = "positive"
	Negative Mood = "negative"
	Neutral  Mood = "neutral"
)

// Result is the outcome of classifying one message.
type Result struct {
	Mood       Mood    `json:"mood"`
	Polarity   float64 `json:"polarity"`
	Confidence float64 `json:"confidence"`
}

var (
	emojiCodePattern   = regexp.MustCompile(`:[a-zA-Z0-9_]+:`)
	punctuationPattern = regexp.MustCompile(`[^\w\s]`)
)

// Compound-score cutoffs separating the three labels.
const (
	negativeThreshold = -0.3
	positiveThreshold = 0.3
)

// Tagger classifies text with the VADER lexicon. Classify is a pure function
// of its input; a Tagger is safe for reuse across turns.
type Tagger struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewTagger builds a tagger with the default VADER lexicon.
func NewTagger() *Tagger {
	return &Tagger{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Classify returns the polarity label for text. Empty or near-empty input
// classifies as neutral; there is no failure path.
func (t *Tagger) Classify(text string) Result {
	cleaned := cleanText(text)
	if len([]rune(cleaned)) < 3 {
		return Result{Mood: Neutral, Polarity: 0, Confidence: 0.5}
	}

	scores := t.analyzer.PolarityScores(cleaned)
	polarity := scores.Compound

	mood := Neutral
	switch {
	case polarity <= negativeThreshold:
		mood = Negative
	case polarity >= positiveThreshold:
		mood = Positive
	}

	confidence := polarity * 2
	if confidence < 0 {
		confidence = -confidence
	}
	if confidence > 1 {
		confidence = 1
	}

	return Result{Mood: mood, Polarity: polarity, Confidence: confidence}
}

// cleanText strips :emoji_code: tokens and punctuation and lowercases the
// input before it reaches the lexicon.
func cleanText(text string) string {
	text = emojiCodePattern.ReplaceAllString(text, "")
	text = punctuationPattern.ReplaceAllString(text, "")
	return strings.ToLower(strings.TrimSpace(text))
}
