package intents

import (
	"fmt"
	"regexp"
	"strings"

	"jarvis/models"
)

// keywordGroup ties a set of trigger keywords to the intent they produce.
// Groups are checked in order and the first match wins.
type keywordGroup struct {
	kind     models.IntentKind
	action   string
	keywords []string
}

var keywordGroups = []keywordGroup{
	{kind: models.IntentKindSearch, action: "web_search", keywords: []string{"search", "who is", "what is", "find"}},
	{kind: models.IntentKindEmail, action: "check_emails", keywords: []string{"email", "mail", "inbox"}},
	{kind: models.IntentKindPlayback, action: "play_music", keywords: []string{"play", "music", "spotify"}},
	{kind: models.IntentKindSystem, action: "open_app", keywords: []string{"open", "launch", "start"}},
	{kind: models.IntentKindScrape, action: "get_expense_data", keywords: []string{"expense", "balance", "tracker"}},
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// StripKeywords removes every case-insensitive occurrence of the given
// keywords from text and collapses the leftover whitespace. Occurrences are
// removed wherever they appear, including inside longer words.
func StripKeywords(text string, keywords []string) string {
	result := text
	for _, keyword := range keywords {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword))
		result = re.ReplaceAllString(result, "")
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(result, " "))
}

// RulesClassifier maps command text to intents with ordered keyword matching.
// It always produces an intent; unmatched text becomes a chat intent.
type RulesClassifier struct {
	defaultExpenseURL string
}

func NewRulesClassifier(defaultExpenseURL string) *RulesClassifier {
	return &RulesClassifier{defaultExpenseURL: defaultExpenseURL}
}

func (c *RulesClassifier) Classify(text string) *models.Intent {
	lowered := strings.ToLower(text)

	for _, group := range keywordGroups {
		if !containsAny(lowered, group.keywords) {
			continue
		}
		return c.buildIntent(group, text)
	}

	return &models.Intent{
		Kind:           models.IntentKindChat,
		Action:         "chat",
		Parameters:     map[string]string{"message": text},
		SuggestedReply: "I understand. How can I help you with that?",
	}
}

func (c *RulesClassifier) buildIntent(group keywordGroup, text string) *models.Intent {
	stripped := StripKeywords(text, group.keywords)

	switch group.kind {
	case models.IntentKindSearch:
		return &models.Intent{
			Kind:           group.kind,
			Action:         group.action,
			Parameters:     map[string]string{"query": stripped},
			SuggestedReply: fmt.Sprintf("Searching for: %s", stripped),
		}
	case models.IntentKindEmail:
		return &models.Intent{
			Kind:           group.kind,
			Action:         group.action,
			Parameters:     map[string]string{},
			SuggestedReply: "Checking your emails...",
		}
	case models.IntentKindPlayback:
		return &models.Intent{
			Kind:           group.kind,
			Action:         group.action,
			Parameters:     map[string]string{"query": stripped},
			SuggestedReply: "Playing music on Spotify...",
		}
	case models.IntentKindSystem:
		return &models.Intent{
			Kind:           group.kind,
			Action:         group.action,
			Parameters:     map[string]string{"app": stripped},
			SuggestedReply: fmt.Sprintf("Opening %s...", stripped),
		}
	case models.IntentKindScrape:
		return &models.Intent{
			Kind:           group.kind,
			Action:         group.action,
			Parameters:     map[string]string{"url": c.defaultExpenseURL},
			SuggestedReply: "Fetching your expense tracker data...",
		}
	default:
		return &models.Intent{
			Kind:           models.IntentKindChat,
			Action:         "chat",
			Parameters:     map[string]string{"message": text},
			SuggestedReply: "I understand. How can I help you with that?",
		}
	}
}

func containsAny(lowered string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
