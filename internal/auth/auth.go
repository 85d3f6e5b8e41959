// Package auth verifies that a caller-supplied user ID corresponds to a real
// authenticated principal. It makes no authorization decisions beyond that.
package auth

import (
	"context"
	"errors"
)

// ErrUnknownUser means the supplied user ID does not map to a valid
// principal.
var ErrUnknownUser = errors.New("unknown user")

// Verifier confirms a user ID belongs to a real, currently valid principal.
type Verifier interface {
	VerifyUser(ctx context.Context, userID string) error
}
