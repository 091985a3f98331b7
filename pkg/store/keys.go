package store

import (
	"strings"

	"github.com/google/uuid"
)

// NewPushKey returns a unique key whose lexical order follows creation time.
// UUIDv7 leads with a millisecond timestamp, so sorting snapshot children by
// key approximates insertion order like push keys do.
func NewPushKey() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return strings.ReplaceAll(id.String(), "-", "")
}
