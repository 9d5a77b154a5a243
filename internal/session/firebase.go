package session

import (
	"context"
	"net/http"

	"firebase.google.com/go/v4/auth"
)

// TokenVerifier is the part of the Firebase auth client the provider needs
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseProvider verifies Firebase ID tokens
type FirebaseProvider struct {
	verifier TokenVerifier
}

func NewFirebaseProvider(verifier TokenVerifier) *FirebaseProvider {
	return &FirebaseProvider{verifier: verifier}
}

func (p *FirebaseProvider) GetSession(ctx context.Context, header http.Header) (*Session, error) {
	idToken, err := bearerToken(header)
	if err != nil {
		return nil, err
	}
	token, err := p.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	name, _ := token.Claims["name"].(string)
	if name == "" {
		name, _ = token.Claims["email"].(string)
	}
	return &Session{UserID: token.UID, UserName: name}, nil
}
