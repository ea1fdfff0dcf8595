package models

// IntentKind is the closed set of command domains a raw command can be
// classified into. An unrecognized classification must degrade to
// IntentKindChat rather than propagate an invalid value.
type IntentKind string

const (
	IntentKindSearch   IntentKind = "search"
	IntentKindEmail    IntentKind = "email"
	IntentKindPlayback IntentKind = "playback"
	IntentKindSystem   IntentKind = "system"
	IntentKindScrape   IntentKind = "scrape"
	IntentKindChat     IntentKind = "chat"
)

// IsValid reports whether k is one of the six enumerated intent kinds.
func (k IntentKind) IsValid() bool {
	switch k {
	case IntentKindSearch, IntentKindEmail, IntentKindPlayback,
		IntentKindSystem, IntentKindScrape, IntentKindChat:
		return true
	}
	return false
}

// Intent is the typed classification of a single raw command. It lives for
// exactly one command and is produced by exactly one of the two classifiers.
type Intent struct {
	Kind           IntentKind        `json:"kind"`
	Action         string            `json:"action"`
	Parameters     map[string]string `json:"parameters"`
	SuggestedReply string            `json:"response"`
}
