package core

import "errors"

// ErrEmptyCommand is returned when a command is empty or whitespace-only.
// It is the only caller-visible failure of the command pipeline and is
// raised before any classifier or capability handler is invoked.
var ErrEmptyCommand = errors.New("command is required")

// ErrClassifierUnavailable indicates the generative provider could not be
// reached or the call itself failed.
var ErrClassifierUnavailable = errors.New("classifier unavailable")

// ErrUnparseableResponse indicates the generative provider replied, but its
// output contained no decodable intent block.
var ErrUnparseableResponse = errors.New("unparseable classifier response")

// ErrNotFound is a sentinel error for "not found" cases
var ErrNotFound = errors.New("not found")

// IsClassifierError reports whether err belongs to the closed set of
// classifier failure kinds absorbed by the intent resolver.
func IsClassifierError(err error) bool {
	return errors.Is(err, ErrClassifierUnavailable) || errors.Is(err, ErrUnparseableResponse)
}
