package models

// CapabilityResult is the common envelope every capability handler reports
// through. Payload is capability-specific and treated as opaque pass-through
// by the dispatcher.
type CapabilityResult struct {
	Success      bool   `json:"success"`
	Payload      any    `json:"payload,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// ResponseEnvelope is the unit returned to the transport for every processed
// command, constructed once per command and immutable after construction.
type ResponseEnvelope struct {
	Success bool              `json:"success"`
	Intent  *Intent           `json:"intent"`
	Result  *CapabilityResult `json:"result"`
}
