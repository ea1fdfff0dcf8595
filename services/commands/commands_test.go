package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jarvis/clients"
	"jarvis/core"
	"jarvis/models"
	"jarvis/services/history"
	"jarvis/services/intents"
)

const testExpenseURL = "http://localhost:3000/expenses"

type testHarness struct {
	service  *CommandsService
	intents  *intents.MockIntentsService
	history  *history.MockHistoryService
	search   *clients.MockSearchClient
	mailbox  *clients.MockMailboxClient
	playback *clients.MockPlaybackClient
	launcher *clients.MockLauncherClient
	scraper  *clients.MockScraperClient
	chat     *clients.MockGenerativeClient
}

func newTestHarness() *testHarness {
	h := &testHarness{
		intents:  new(intents.MockIntentsService),
		history:  new(history.MockHistoryService),
		search:   new(clients.MockSearchClient),
		mailbox:  new(clients.MockMailboxClient),
		playback: new(clients.MockPlaybackClient),
		launcher: new(clients.MockLauncherClient),
		scraper:  new(clients.MockScraperClient),
		chat:     new(clients.MockGenerativeClient),
	}
	h.service = NewCommandsService(
		h.intents, h.history,
		h.search, h.mailbox, h.playback, h.launcher, h.scraper, h.chat,
		testExpenseURL,
	)
	return h
}

func (h *testHarness) expectRecord() {
	h.history.On("RecordCommand", mock.Anything, mock.Anything).Return(nil)
}

func (h *testHarness) expectIntent(intent *models.Intent) {
	h.intents.On("Resolve", mock.Anything, mock.Anything).Return(intent)
}

func TestProcessCommandRejectsEmptyCommand(t *testing.T) {
	h := newTestHarness()

	envelope, err := h.service.ProcessCommand(context.Background(), models.NewRawCommand("   ", models.ChannelRequest))

	require.ErrorIs(t, err, core.ErrEmptyCommand)
	assert.Nil(t, envelope)
	h.intents.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	h.history.AssertNotCalled(t, "RecordCommand", mock.Anything, mock.Anything)
}

func TestProcessCommandDispatchesSearch(t *testing.T) {
	h := newTestHarness()
	h.expectRecord()
	h.expectIntent(&models.Intent{
		Kind:       models.IntentKindSearch,
		Action:     "web_search",
		Parameters: map[string]string{"query": "capital of France"},
	})

	answer := &clients.QuickAnswer{Answer: "Paris", Source: "example.com"}
	h.search.On("QuickAnswer", mock.Anything, "capital of France").Return(answer, nil)

	envelope, err := h.service.ProcessCommand(context.Background(), models.NewRawCommand("what is the capital of France", models.ChannelRequest))

	require.NoError(t, err)
	assert.True(t, envelope.Success)
	assert.Equal(t, answer, envelope.Result.Payload)
	h.mailbox.AssertNotCalled(t, "ListRecent", mock.Anything, mock.Anything)
	h.playback.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	h.chat.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
}

func TestProcessCommandDispatchesEmail(t *testing.T) {
	h := newTestHarness()
	h.expectRecord()
	h.expectIntent(&models.Intent{Kind: models.IntentKindEmail, Action: "check_emails"})

	list := &clients.EmailList{Count: 2, Emails: []clients.Email{{Subject: "hi"}, {Subject: "yo"}}}
	h.mailbox.On("ListRecent", mock.Anything, 5).Return(list, nil)

	envelope, err := h.service.ProcessCommand(context.Background(), models.NewRawCommand("check my inbox", models.ChannelPush))

	require.NoError(t, err)
	assert.True(t, envelope.Success)
	assert.Equal(t, list, envelope.Result.Payload)
}

func TestProcessCommandPlaysFirstTrack(t *testing.T) {
	h := newTestHarness()
	h.expectRecord()
	h.expectIntent(&models.Intent{
		Kind:       models.IntentKindPlayback,
		Action:     "play_music",
		Parameters: map[string]string{"query": "jazz"},
	})

	tracks := []clients.Track{
		{Name: "So What", URI: "spotify:track:1", Artists: "Miles Davis"},
		{Name: "Blue in Green", URI: "spotify:track:2", Artists: "Miles Davis"},
	}
	h.playback.On("Search", mock.Anything, "jazz").Return(tracks, nil)
	h.playback.On("Play", mock.Anything, "spotify:track:1").Return(nil)

	envelope, err := h.service.ProcessCommand(context.Background(), models.NewRawCommand("play jazz", models.ChannelRequest))

	require.NoError(t, err)
	assert.True(t, envelope.Success)
	result, ok := envelope.Result.Payload.(*clients.PlayResult)
	require.True(t, ok)
	assert.Equal(t, "Now playing So What by Miles Davis", result.Message)
	h.playback.AssertExpectations(t)
}

func TestProcessCommandPlaybackNoTracksDoesNotPlay(t *testing.T) {
	h := newTestHarness()
	h.expectRecord()
	h.expectIntent(&models.Intent{
		Kind:       models.IntentKindPlayback,
		Action:     "play_music",
		Parameters: map[string]string{"query": "xyzzy"},
	})

	h.playback.On("Search", mock.Anything, "xyzzy").Return([]clients.Track{}, nil)

	envelope, err := h.service.ProcessCommand(context.Background(), models.NewRawCommand("play xyzzy", models.ChannelRequest))

	require.NoError(t, err)
	assert.False(t, envelope.Success)
	assert.Contains(t, envelope.Result.ErrorMessage, "No tracks found")
	h.playback.AssertNotCalled(t, "Play", mock.Anything, mock.Anything)
}

func TestProcessCommandPlaybackStatusAction(t *testing.T) {
	h := newTestHarness()
	h.expectRecord()
	h.expectIntent(&models.Intent{Kind: models.IntentKindPlayback, Action: "get_status"})

	status := &clients.PlaybackStatus{IsPlaying: false, Message: "Nothing is currently playing"}
	h.playback.On("GetCurrentlyPlaying", mock.Anything).Return(status, nil)

	envelope, err := h.service.ProcessCommand(context.Background(), models.NewRawCommand("what is playing", models.ChannelRequest))

	require.NoError(t, err)
	assert.True(t, envelope.Success)
	assert.Equal(t, status, envelope.Result.Payload)
	h.playback.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestProcessCommandDispatchesSystem(t *testing.T) {
	h := newTestHarness()
	h.expectRecord()
	h.expectIntent(&models.Intent{
		Kind:       models.IntentKindSystem,
		Action:     "open_app",
		Parameters: map[string]string{"app": "notepad"},
	})

	launched := &clients.LaunchResult{Message: "Opened notepad", App: "notepad"}
	h.launcher.On("OpenApp", mock.Anything, "notepad").Return(launched, nil)

	envelope, err := h.service.ProcessCommand(context.Background(), models.NewRawCommand("open notepad", models.ChannelRequest))

	require.NoError(t, err)
	assert.True(t, envelope.Success)
	assert.Equal(t, launched, envelope.Result.Payload)
}

func TestProcessCommandScrapeFallsBackToDefaultURL(t *testing.T) {
	h := newTestHarness()
	h.expectRecord()
	h.expectIntent(&models.Intent{Kind: models.IntentKindScrape, Action: "get_expense_data", Parameters: map[string]string{}})

	report := &clients.ExpenseReport{Data: clients.ExpenseData{Balance: "100.00"}}
	h.scraper.On("ScrapeExpenseTracker", mock.Anything, testExpenseURL).Return(report, nil)

	envelope, err := h.service.ProcessCommand(context.Background(), models.NewRawCommand("show my expenses", models.ChannelRequest))

	require.NoError(t, err)
	assert.True(t, envelope.Success)
	h.scraper.AssertExpectations(t)
}

func TestProcessCommandChatReceivesOriginalText(t *testing.T) {
	h := newTestHarness()
	h.expectRecord()
	h.expectIntent(&models.Intent{
		Kind:       models.IntentKindChat,
		Action:     "chat",
		Parameters: map[string]string{"message": "tell me a joke"},
	})

	h.chat.On("GenerateText", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "tell me a joke")
	})).Return("Why did the gopher cross the road?", nil)

	envelope, err := h.service.ProcessCommand(context.Background(), models.NewRawCommand("tell me a joke", models.ChannelRequest))

	require.NoError(t, err)
	assert.True(t, envelope.Success)
	reply, ok := envelope.Result.Payload.(*clients.ChatReply)
	require.True(t, ok)
	assert.Equal(t, "Why did the gopher cross the road?", reply.Response)
}

func TestProcessCommandCapabilityErrorBecomesFailedEnvelope(t *testing.T) {
	h := newTestHarness()
	h.expectRecord()
	h.expectIntent(&models.Intent{
		Kind:       models.IntentKindSearch,
		Action:     "web_search",
		Parameters: map[string]string{"query": "anything"},
	})

	h.search.On("QuickAnswer", mock.Anything, "anything").Return(nil, errors.New("provider exploded"))

	envelope, err := h.service.ProcessCommand(context.Background(), models.NewRawCommand("search anything", models.ChannelRequest))

	require.NoError(t, err)
	assert.False(t, envelope.Success)
	assert.Contains(t, envelope.Result.ErrorMessage, "provider exploded")
	assert.NotNil(t, envelope.Intent)
}

func TestProcessCommandHistoryFailureIsSwallowed(t *testing.T) {
	h := newTestHarness()
	h.expectIntent(&models.Intent{Kind: models.IntentKindEmail, Action: "check_emails"})
	h.history.On("RecordCommand", mock.Anything, mock.Anything).Return(errors.New("db down"))

	h.mailbox.On("ListRecent", mock.Anything, 5).Return(&clients.EmailList{Count: 0, Emails: []clients.Email{}}, nil)

	envelope, err := h.service.ProcessCommand(context.Background(), models.NewRawCommand("check mail", models.ChannelRequest))

	require.NoError(t, err)
	assert.True(t, envelope.Success)
}

func TestProcessCommandRecordsIntentAndOutcome(t *testing.T) {
	h := newTestHarness()
	h.expectIntent(&models.Intent{Kind: models.IntentKindEmail, Action: "check_emails"})
	h.mailbox.On("ListRecent", mock.Anything, 5).Return(&clients.EmailList{Count: 0, Emails: []clients.Email{}}, nil)

	h.history.On("RecordCommand", mock.Anything, mock.MatchedBy(func(record *models.CommandRecord) bool {
		return record.IntentKind == "email" &&
			record.IntentAction == "check_emails" &&
			record.Success &&
			record.TextContent == "check mail" &&
			record.Channel == models.ChannelPush &&
			record.ID != ""
	})).Return(nil)

	_, err := h.service.ProcessCommand(context.Background(), models.NewRawCommand("check mail", models.ChannelPush))

	require.NoError(t, err)
	h.history.AssertExpectations(t)
}
