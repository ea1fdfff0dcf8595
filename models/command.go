package models

import (
	"strings"
	"time"
)

// Channel identifies which transport a command arrived on. It only affects
// how the envelope is serialized back to the caller, never how the command
// is processed.
type Channel string

const (
	ChannelRequest Channel = "request"
	ChannelPush    Channel = "push"
)

// RawCommand is the immutable input to the command pipeline, created at the
// transport boundary and consumed once by the intent resolver.
type RawCommand struct {
	Text       string
	ReceivedAt time.Time
	Channel    Channel
}

// NewRawCommand builds a RawCommand with trimmed text and the receive
// timestamp set to now.
func NewRawCommand(text string, channel Channel) RawCommand {
	return RawCommand{
		Text:       strings.TrimSpace(text),
		ReceivedAt: time.Now(),
		Channel:    channel,
	}
}

// CommandRecord is the audit-log row written after a command has been
// dispatched. It is never read back into classification or dispatch.
type CommandRecord struct {
	ID           string    `db:"id"            json:"id"`
	TextContent  string    `db:"text_content"  json:"text"`
	Channel      Channel   `db:"channel"       json:"channel"`
	IntentKind   string    `db:"intent_kind"   json:"intent_kind"`
	IntentAction string    `db:"intent_action" json:"intent_action"`
	Success      bool      `db:"success"       json:"success"`
	ErrorMessage string    `db:"error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
}
