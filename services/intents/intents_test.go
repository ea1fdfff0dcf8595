package intents

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jarvis/clients"
	"jarvis/core"
	"jarvis/models"
)

func TestResolveUsesAIIntent(t *testing.T) {
	mockGemini := new(clients.MockGenerativeClient)
	mockGemini.On("GenerateText", mock.Anything, mock.Anything).
		Return(`Sure! Here is the classification:
{"intent": "playback", "action": "play_music", "parameters": {"query": "jazz"}, "response": "Playing jazz..."}
Let me know if you need anything else.`, nil)

	s := NewIntentsService(mockGemini, NewRulesClassifier(testExpenseURL))
	intent := s.Resolve(context.Background(), "put on some jazz")

	require.NotNil(t, intent)
	assert.Equal(t, models.IntentKindPlayback, intent.Kind)
	assert.Equal(t, "play_music", intent.Action)
	assert.Equal(t, "jazz", intent.Parameters["query"])
	assert.Equal(t, "Playing jazz...", intent.SuggestedReply)
	mockGemini.AssertExpectations(t)
}

func TestResolveFallsBackWhenAIUnavailable(t *testing.T) {
	mockGemini := new(clients.MockGenerativeClient)
	mockGemini.On("GenerateText", mock.Anything, mock.Anything).
		Return("", errors.New("provider down"))

	rules := NewRulesClassifier(testExpenseURL)
	s := NewIntentsService(mockGemini, rules)
	intent := s.Resolve(context.Background(), "open notepad")

	require.NotNil(t, intent)
	assert.Equal(t, models.IntentKindSystem, intent.Kind)
	assert.Equal(t, "notepad", intent.Parameters["app"])
	// identical to what the rules produce on their own
	assert.Equal(t, rules.Classify("open notepad"), intent)
}

func TestResolveFallsBackOnMalformedJSON(t *testing.T) {
	mockGemini := new(clients.MockGenerativeClient)
	mockGemini.On("GenerateText", mock.Anything, mock.Anything).
		Return("I think you want to open something", nil)

	s := NewIntentsService(mockGemini, NewRulesClassifier(testExpenseURL))
	intent := s.Resolve(context.Background(), "open notepad")

	require.NotNil(t, intent)
	assert.Equal(t, models.IntentKindSystem, intent.Kind)
}

func TestResolveFallsBackOnUnknownKind(t *testing.T) {
	mockGemini := new(clients.MockGenerativeClient)
	mockGemini.On("GenerateText", mock.Anything, mock.Anything).
		Return(`{"intent": "banana", "action": "peel", "parameters": {}, "response": "ok"}`, nil)

	s := NewIntentsService(mockGemini, NewRulesClassifier(testExpenseURL))
	intent := s.Resolve(context.Background(), "hello there")

	require.NotNil(t, intent)
	assert.Equal(t, models.IntentKindChat, intent.Kind)
	assert.Equal(t, "hello there", intent.Parameters["message"])
}

func TestResolveAliasesGeneralToChat(t *testing.T) {
	mockGemini := new(clients.MockGenerativeClient)
	mockGemini.On("GenerateText", mock.Anything, mock.Anything).
		Return(`{"intent": "general", "action": "chat", "parameters": {"message": "hi"}, "response": "Hi!"}`, nil)

	s := NewIntentsService(mockGemini, NewRulesClassifier(testExpenseURL))
	intent := s.Resolve(context.Background(), "hi")

	require.NotNil(t, intent)
	assert.Equal(t, models.IntentKindChat, intent.Kind)
}

func TestResolveWithoutAIClient(t *testing.T) {
	s := NewIntentsService(nil, NewRulesClassifier(testExpenseURL))
	intent := s.Resolve(context.Background(), "check my inbox")

	require.NotNil(t, intent)
	assert.Equal(t, models.IntentKindEmail, intent.Kind)
}

func TestClassifierFailuresStayInClosedErrorSet(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		replyErr error
	}{
		{name: "provider failure", reply: "", replyErr: errors.New("provider down")},
		{name: "no json block", reply: "I cannot classify that"},
		{name: "unknown kind", reply: `{"intent": "banana", "action": "peel", "parameters": {}, "response": "ok"}`},
		{name: "non-string parameter", reply: `{"intent": "search", "action": "web_search", "parameters": {"query": 42}, "response": "ok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGemini := new(clients.MockGenerativeClient)
			mockGemini.On("GenerateText", mock.Anything, mock.Anything).Return(tt.reply, tt.replyErr)

			s := NewIntentsService(mockGemini, NewRulesClassifier(testExpenseURL))
			_, err := s.classifyViaAI(context.Background(), "anything")

			require.Error(t, err)
			assert.True(t, core.IsClassifierError(err))
		})
	}
}

func TestExtractJSONBlock(t *testing.T) {
	t.Run("plain object", func(t *testing.T) {
		block, err := extractJSONBlock(`{"a":1}`)
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, block)
	})

	t.Run("object wrapped in prose", func(t *testing.T) {
		block, err := extractJSONBlock("Here you go:\n```json\n{\"a\":1}\n```\nDone.")
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, block)
	})

	t.Run("no object", func(t *testing.T) {
		_, err := extractJSONBlock("no json here")
		require.Error(t, err)
	})
}
