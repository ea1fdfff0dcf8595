package intents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/models"
)

const testExpenseURL = "http://localhost:3000/expenses"

func TestRulesClassifierKeywordGroups(t *testing.T) {
	c := NewRulesClassifier(testExpenseURL)

	tests := []struct {
		name         string
		text         string
		expectedKind models.IntentKind
		expectedAct  string
	}{
		{name: "search keyword", text: "search golang generics", expectedKind: models.IntentKindSearch, expectedAct: "web_search"},
		{name: "question phrase", text: "what is the capital of France", expectedKind: models.IntentKindSearch, expectedAct: "web_search"},
		{name: "email keyword", text: "check my inbox please", expectedKind: models.IntentKindEmail, expectedAct: "check_emails"},
		{name: "playback keyword", text: "play some jazz", expectedKind: models.IntentKindPlayback, expectedAct: "play_music"},
		{name: "system keyword", text: "open notepad", expectedKind: models.IntentKindSystem, expectedAct: "open_app"},
		{name: "scrape keyword", text: "how is my balance doing", expectedKind: models.IntentKindScrape, expectedAct: "get_expense_data"},
		{name: "no keyword falls back to chat", text: "hello there", expectedKind: models.IntentKindChat, expectedAct: "chat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := c.Classify(tt.text)
			require.NotNil(t, intent)
			assert.Equal(t, tt.expectedKind, intent.Kind)
			assert.Equal(t, tt.expectedAct, intent.Action)
			assert.True(t, intent.Kind.IsValid())
		})
	}
}

func TestRulesClassifierGroupPriority(t *testing.T) {
	c := NewRulesClassifier(testExpenseURL)

	// "search" outranks "play" even though both keywords appear.
	intent := c.Classify("search for a song to play")
	assert.Equal(t, models.IntentKindSearch, intent.Kind)

	// "play" outranks "expense" and "tracker".
	intent = c.Classify("play the expense tracker music")
	assert.Equal(t, models.IntentKindPlayback, intent.Kind)
}

func TestRulesClassifierParameters(t *testing.T) {
	c := NewRulesClassifier(testExpenseURL)

	t.Run("search query drops trigger words", func(t *testing.T) {
		intent := c.Classify("what is the capital of France")
		assert.Equal(t, "the capital of France", intent.Parameters["query"])
		assert.Equal(t, "Searching for: the capital of France", intent.SuggestedReply)
	})

	t.Run("app name drops trigger words", func(t *testing.T) {
		intent := c.Classify("open notepad")
		assert.Equal(t, "notepad", intent.Parameters["app"])
		assert.Equal(t, "Opening notepad...", intent.SuggestedReply)
	})

	t.Run("scrape carries configured URL", func(t *testing.T) {
		intent := c.Classify("show my expense tracker")
		assert.Equal(t, testExpenseURL, intent.Parameters["url"])
	})

	t.Run("chat keeps full original text", func(t *testing.T) {
		intent := c.Classify("hello there")
		assert.Equal(t, "hello there", intent.Parameters["message"])
	})

	t.Run("email has no parameters", func(t *testing.T) {
		intent := c.Classify("any new mail")
		assert.Empty(t, intent.Parameters)
	})
}

func TestStripKeywords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		expected string
	}{
		{
			name:     "single keyword",
			text:     "search golang generics",
			keywords: []string{"search"},
			expected: "golang generics",
		},
		{
			name:     "case insensitive and repeated",
			text:     "Search and SEARCH again",
			keywords: []string{"search"},
			expected: "and again",
		},
		{
			name:     "keyword inside a longer word is stripped too",
			text:     "research topics",
			keywords: []string{"search"},
			expected: "re topics",
		},
		{
			name:     "multi-word keyword",
			text:     "what is the weather",
			keywords: []string{"what is"},
			expected: "the weather",
		},
		{
			name:     "whitespace collapses",
			text:     "play   some   music",
			keywords: []string{"play", "music"},
			expected: "some",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripKeywords(tt.text, tt.keywords))
		})
	}
}
