package app

import "github.com/google/uuid"

// newMatchID returns a random UUIDv4 string identifying one match.
func newMatchID() string {
	return uuid.NewString()
}
