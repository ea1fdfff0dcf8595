package models

// Push-channel message types. Every inbound message yields exactly one
// outbound message, no batching.
const (
	MessageTypeCommand  = "command"
	MessageTypeVoice    = "voice"
	MessageTypeResponse = "response"
	MessageTypeError    = "error"
	MessageTypeWelcome  = "welcome"
)

// InboundMessage is a message received over the push channel.
type InboundMessage struct {
	Type       string `json:"type"`
	Command    string `json:"command,omitempty"`
	Transcript string `json:"transcript,omitempty"`
}

// OutboundMessage is the single reply emitted for an inbound push message.
type OutboundMessage struct {
	Type    string            `json:"type"`
	Data    *ResponseEnvelope `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
}
