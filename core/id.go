package core

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// NewID generates a new ULID with the specified prefix.
// The resulting ID follows the format: prefix_ULID
// Example: NewID("cmd") returns "cmd_01G0EZ1XTM37C5X11SQTDNCTM1"
func NewID(prefix string) string {
	if prefix == "" || strings.TrimSpace(prefix) == "" {
		panic("Prefix cannot be empty")
	}

	cleanPrefix := strings.TrimSpace(strings.ToLower(prefix))
	ulid := ulid.Make()

	return fmt.Sprintf("%s_%s", cleanPrefix, ulid.String())
}

// IsValidULID checks whether s is a prefixed ULID produced by NewID.
func IsValidULID(s string) bool {
	idx := strings.LastIndex(s, "_")
	if idx <= 0 || idx == len(s)-1 {
		return false
	}
	_, err := ulid.Parse(s[idx+1:])
	return err == nil
}
