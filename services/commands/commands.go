package commands

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"jarvis/clients"
	"jarvis/core"
	"jarvis/models"
	"jarvis/services"
	"jarvis/utils"
)

const recentEmailCount = 5

const chatPromptTemplate = `You are Jarvis, a helpful AI assistant. Reply conversationally and keep it brief.

User: %s`

// CommandsService runs the command pipeline: resolve an intent, dispatch to
// exactly one capability handler, wrap the outcome in a response envelope and
// record it.
type CommandsService struct {
	intentsService    services.IntentsService
	historyService    services.CommandHistoryService
	searchClient      clients.SearchClient
	mailboxClient     clients.MailboxClient
	playbackClient    clients.PlaybackClient
	launcherClient    clients.LauncherClient
	scraperClient     clients.ScraperClient
	chatClient        clients.GenerativeClient
	defaultExpenseURL string
}

func NewCommandsService(
	intentsService services.IntentsService,
	historyService services.CommandHistoryService,
	searchClient clients.SearchClient,
	mailboxClient clients.MailboxClient,
	playbackClient clients.PlaybackClient,
	launcherClient clients.LauncherClient,
	scraperClient clients.ScraperClient,
	chatClient clients.GenerativeClient,
	defaultExpenseURL string,
) *CommandsService {
	utils.AssertInvariant(intentsService != nil, "intents service must not be nil")
	utils.AssertInvariant(historyService != nil, "history service must not be nil")
	return &CommandsService{
		intentsService:    intentsService,
		historyService:    historyService,
		searchClient:      searchClient,
		mailboxClient:     mailboxClient,
		playbackClient:    playbackClient,
		launcherClient:    launcherClient,
		scraperClient:     scraperClient,
		chatClient:        chatClient,
		defaultExpenseURL: defaultExpenseURL,
	}
}

// ProcessCommand handles one raw command end to end. The only error it
// returns is core.ErrEmptyCommand; every capability failure is reported
// inside the envelope instead.
func (s *CommandsService) ProcessCommand(ctx context.Context, command models.RawCommand) (*models.ResponseEnvelope, error) {
	text := strings.TrimSpace(command.Text)
	if text == "" {
		return nil, core.ErrEmptyCommand
	}

	log.Printf("📋 Processing command from %s channel: %q", command.Channel, text)

	intent := s.intentsService.Resolve(ctx, text)
	result := s.dispatch(ctx, intent, text)

	envelope := &models.ResponseEnvelope{
		Success: result.Success,
		Intent:  intent,
		Result:  result,
	}

	s.recordCommand(ctx, command, intent, result)

	log.Printf("📋 Completed command: kind=%s action=%s success=%v", intent.Kind, intent.Action, result.Success)
	return envelope, nil
}

// dispatch routes the intent to exactly one capability handler. Every
// handler error becomes a failed result; nothing escapes as a Go error.
func (s *CommandsService) dispatch(ctx context.Context, intent *models.Intent, text string) *models.CapabilityResult {
	switch intent.Kind {
	case models.IntentKindSearch:
		return s.handleSearch(ctx, intent, text)
	case models.IntentKindEmail:
		return s.handleEmail(ctx)
	case models.IntentKindPlayback:
		return s.handlePlayback(ctx, intent, text)
	case models.IntentKindSystem:
		return s.handleSystem(ctx, intent, text)
	case models.IntentKindScrape:
		return s.handleScrape(ctx, intent)
	case models.IntentKindChat:
		return s.handleChat(ctx, intent, text)
	default:
		// Resolve only emits valid kinds; degrade to chat if that ever breaks.
		log.Printf("⚠️ Unexpected intent kind %q, treating as chat", intent.Kind)
		return s.handleChat(ctx, intent, text)
	}
}

func (s *CommandsService) handleSearch(ctx context.Context, intent *models.Intent, text string) *models.CapabilityResult {
	query := intent.Parameters["query"]
	if query == "" {
		query = text
	}

	answer, err := s.searchClient.QuickAnswer(ctx, query)
	if err != nil {
		return failureResult(fmt.Errorf("search failed: %w", err))
	}
	return successResult(answer)
}

func (s *CommandsService) handleEmail(ctx context.Context) *models.CapabilityResult {
	emails, err := s.mailboxClient.ListRecent(ctx, recentEmailCount)
	if err != nil {
		return failureResult(fmt.Errorf("failed to check emails: %w", err))
	}
	return successResult(emails)
}

func (s *CommandsService) handlePlayback(ctx context.Context, intent *models.Intent, text string) *models.CapabilityResult {
	if intent.Action != "play_music" {
		status, err := s.playbackClient.GetCurrentlyPlaying(ctx)
		if err != nil {
			return failureResult(fmt.Errorf("failed to get playback status: %w", err))
		}
		return successResult(status)
	}

	query := intent.Parameters["query"]
	if query == "" {
		query = text
	}

	tracks, err := s.playbackClient.Search(ctx, query)
	if err != nil {
		return failureResult(fmt.Errorf("track search failed: %w", err))
	}
	if len(tracks) == 0 {
		return failureMessage(fmt.Sprintf("No tracks found for %q", query))
	}

	track := tracks[0]
	if err := s.playbackClient.Play(ctx, track.URI); err != nil {
		return failureResult(fmt.Errorf("failed to start playback: %w", err))
	}

	return successResult(&clients.PlayResult{
		Message: fmt.Sprintf("Now playing %s by %s", track.Name, track.Artists),
		Track:   &track,
	})
}

func (s *CommandsService) handleSystem(ctx context.Context, intent *models.Intent, text string) *models.CapabilityResult {
	app := intent.Parameters["app"]
	if app == "" {
		app = text
	}

	launched, err := s.launcherClient.OpenApp(ctx, app)
	if err != nil {
		return failureResult(fmt.Errorf("failed to open application: %w", err))
	}
	return successResult(launched)
}

func (s *CommandsService) handleScrape(ctx context.Context, intent *models.Intent) *models.CapabilityResult {
	url := intent.Parameters["url"]
	if url == "" {
		url = s.defaultExpenseURL
	}

	report, err := s.scraperClient.ScrapeExpenseTracker(ctx, url)
	if err != nil {
		return failureResult(fmt.Errorf("failed to scrape expense tracker: %w", err))
	}
	return successResult(report)
}

// handleChat is the only handler that sees the original command text rather
// than extracted parameters.
func (s *CommandsService) handleChat(ctx context.Context, intent *models.Intent, text string) *models.CapabilityResult {
	if s.chatClient == nil {
		reply := intent.SuggestedReply
		if reply == "" {
			reply = "I understand. How can I help you with that?"
		}
		return successResult(&clients.ChatReply{Response: reply})
	}

	reply, err := s.chatClient.GenerateText(ctx, fmt.Sprintf(chatPromptTemplate, text))
	if err != nil {
		return failureResult(fmt.Errorf("chat failed: %w", err))
	}
	return successResult(&clients.ChatReply{Response: reply})
}

// recordCommand writes the audit record. Failures are logged and swallowed
// so history never affects the caller's response.
func (s *CommandsService) recordCommand(ctx context.Context, command models.RawCommand, intent *models.Intent, result *models.CapabilityResult) {
	record := &models.CommandRecord{
		ID:           core.NewID("cmd"),
		TextContent:  strings.TrimSpace(command.Text),
		Channel:      command.Channel,
		IntentKind:   string(intent.Kind),
		IntentAction: intent.Action,
		Success:      result.Success,
		ErrorMessage: result.ErrorMessage,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.historyService.RecordCommand(ctx, record); err != nil {
		log.Printf("⚠️ Failed to record command history: %v", err)
	}
}

func successResult(payload any) *models.CapabilityResult {
	return &models.CapabilityResult{Success: true, Payload: payload}
}

func failureResult(err error) *models.CapabilityResult {
	log.Printf("❌ Capability handler failed: %v", err)
	return &models.CapabilityResult{Success: false, ErrorMessage: err.Error()}
}

func failureMessage(message string) *models.CapabilityResult {
	return &models.CapabilityResult{Success: false, ErrorMessage: message}
}
