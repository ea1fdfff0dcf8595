package intents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"jarvis/clients"
	"jarvis/core"
	"jarvis/models"
	"jarvis/utils"
)

const classificationPromptTemplate = `You are Jarvis, an AI assistant that classifies user commands.
Classify the command below into exactly one intent and respond with ONLY a JSON object, no other text:

{
  "intent": "search" | "email" | "playback" | "system" | "scrape" | "chat",
  "action": "<specific action, e.g. web_search, check_emails, play_music, open_app, get_expense_data, chat>",
  "parameters": { "<name>": "<string value>" },
  "response": "<short natural-language acknowledgement for the user>"
}

Command: %s`

// aiIntent mirrors the JSON shape the generative classifier is prompted to
// produce.
type aiIntent struct {
	Intent     string            `json:"intent"`
	Action     string            `json:"action"`
	Parameters map[string]string `json:"parameters"`
	Response   string            `json:"response"`
}

// IntentsService resolves command text to an intent, preferring the
// generative classifier and falling back to keyword rules on any failure.
type IntentsService struct {
	geminiClient clients.GenerativeClient
	rules        *RulesClassifier
}

func NewIntentsService(geminiClient clients.GenerativeClient, rules *RulesClassifier) *IntentsService {
	utils.AssertInvariant(rules != nil, "rules classifier must not be nil")
	return &IntentsService{geminiClient: geminiClient, rules: rules}
}

// Resolve classifies text into an intent. It is total: classifier failures
// are logged and absorbed by the rule-based fallback.
func (s *IntentsService) Resolve(ctx context.Context, text string) *models.Intent {
	if s.geminiClient != nil {
		intent, err := s.classifyViaAI(ctx, text)
		if err == nil {
			return intent
		}
		utils.AssertInvariant(core.IsClassifierError(err), "classifier failure outside the closed error set")
		log.Printf("⚠️ AI classification failed, falling back to rules: %v", err)
	}
	return s.rules.Classify(text)
}

func (s *IntentsService) classifyViaAI(ctx context.Context, text string) (*models.Intent, error) {
	prompt := fmt.Sprintf(classificationPromptTemplate, text)
	raw, err := s.geminiClient.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrClassifierUnavailable, err)
	}

	block, err := extractJSONBlock(raw)
	if err != nil {
		return nil, err
	}

	var parsed aiIntent
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnparseableResponse, err)
	}

	kind := models.IntentKind(strings.ToLower(strings.TrimSpace(parsed.Intent)))
	// The model sometimes answers "general" for small talk.
	if kind == "general" {
		kind = models.IntentKindChat
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown intent %q", core.ErrUnparseableResponse, parsed.Intent)
	}

	params := parsed.Parameters
	if params == nil {
		params = map[string]string{}
	}

	return &models.Intent{
		Kind:           kind,
		Action:         parsed.Action,
		Parameters:     params,
		SuggestedReply: parsed.Response,
	}, nil
}

// extractJSONBlock cuts the substring between the first '{' and the last '}'
// so intents survive being wrapped in prose or markdown fences.
func extractJSONBlock(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: no JSON object in response", core.ErrUnparseableResponse)
	}
	return raw[start : end+1], nil
}
