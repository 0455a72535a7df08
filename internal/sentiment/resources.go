package sentiment

// Resource is a support suggestion surfaced alongside a reply.
type Resource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Contact     string `json:"contact,omitempty"`
	URL         string `json:"url"`
}

var resourcesByMood = map[Mood][]Resource{
	Negative: {
		{
			Title:       "Crisis Helpline",
			Description: "24/7 support for emotional crisis",
			Contact:     "1-800-273-8255",
			URL:         "https://www.crisistextline.org/",
		},
		{
			Title:       "Therapy Resources",
			Description: "Find licensed therapists in your area",
			URL:         "https://www.psychologytoday.com/us/therapists",
		},
		{
			Title:       "Mindfulness Exercises",
			Description: "Simple exercises to help manage stress and anxiety",
			URL:         "https://www.mindful.org/meditation/mindfulness-getting-started/",
		},
	},
	Neutral: {
		{
			Title:       "Self-Care Tips",
			Description: "Daily practices for mental wellness",
			URL:         "https://www.verywellmind.com/self-care-strategies-overall-stress-reduction-3144729",
		},
		{
			Title:       "Mental Health Apps",
			Description: "Recommended apps for mental wellness",
			URL:         "https://www.psycom.net/25-best-mental-health-apps",
		},
	},
	Positive: {
		{
			Title:       "Wellness Activities",
			Description: "Activities to maintain positive mental health",
			URL:         "https://www.healthline.com/health/mental-health/mental-health-activities",
		},
		{
			Title:       "Gratitude Practices",
			Description: "Ways to cultivate gratitude and joy",
			URL:         "https://greatergood.berkeley.edu/topic/gratitude",
		},
	},
}

// Resources returns the curated suggestions for a mood, falling back to the
// neutral set for unknown labels.
func Resources(mood Mood) []Resource {
	if rs, ok := resourcesByMood[mood]; ok {
		return rs
	}
	return resourcesByMood[Neutral]
}
