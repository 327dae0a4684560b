package models

import "github.com/google/uuid"

// NewID returns a prefixed random identifier, e.g. "playlist-4f9f…".
// Prefixes keep IDs self-describing across tables and in queue payloads.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
