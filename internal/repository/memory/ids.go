// Package memory provides the in-memory registry backing the event system.
// Stores preserve insertion order so listings and tie-breaks are stable
// within a session.
package memory

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	idLength      = 8
	maxIDAttempts = 16
)

// newID generates a short unique token, regenerating on collision against
// the live store. Exhaustion is unreachable for realistic data sizes and
// is treated as a configuration error.
func newID(taken func(string) bool) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := uuid.NewString()[:idLength]
		if !taken(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("id generation exhausted after %d attempts", maxIDAttempts)
}
