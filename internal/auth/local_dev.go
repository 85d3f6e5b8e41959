package auth

import "context"

// StaticVerifier accepts any non-empty user ID, optionally restricted to an
// allowlist. Local development only; never wired in production mode.
type StaticVerifier struct {
	allowed map[string]bool
}

// NewStaticVerifier creates a verifier for local development. With no IDs it
// accepts every non-empty user.
func NewStaticVerifier(userIDs ...string) *StaticVerifier {
	v := &StaticVerifier{}
	if len(userIDs) > 0 {
		v.allowed = make(map[string]bool, len(userIDs))
		for _, id := range userIDs {
			v.allowed[id] = true
		}
	}
	return v
}

func (v *StaticVerifier) VerifyUser(_ context.Context, userID string) error {
	if userID == "" {
		return ErrUnknownUser
	}
	if v.allowed != nil && !v.allowed[userID] {
		return ErrUnknownUser
	}
	return nil
}
