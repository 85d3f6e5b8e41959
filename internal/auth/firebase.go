package auth

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseVerifier resolves user IDs against Firebase Auth.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier creates a verifier using application-default
// credentials, or a service-account key file when one is configured.
func NewFirebaseVerifier(ctx context.Context) (*FirebaseVerifier, error) {
	opts := []option.ClientOption{}
	if creds := serviceAccountPath(); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("get auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

// VerifyUser confirms the ID maps to an existing, non-disabled account.
func (v *FirebaseVerifier) VerifyUser(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnknownUser
	}
	user, err := v.client.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownUser, err)
	}
	if user.Disabled {
		return ErrUnknownUser
	}
	return nil
}

func serviceAccountPath() string {
	for _, envVar := range []string{"GOOGLE_APPLICATION_CREDENTIALS", "FIREBASE_SERVICE_ACCOUNT_KEY"} {
		if path := os.Getenv(envVar); path != "" {
			return path
		}
	}
	return ""
}
