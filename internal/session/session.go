// Package session resolves the caller's identity from request headers.
// Credentials are issued elsewhere; this package only verifies them.
package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrNoCredentials means the request carried no Authorization header
	ErrNoCredentials = errors.New("no credentials")
	// ErrInvalidCredentials means credentials were present but rejected
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Session is the authenticated caller
type Session struct {
	UserID   string
	UserName string
}

// Provider returns the session for a request. It returns ErrNoCredentials when the
// request is anonymous and ErrInvalidCredentials when verification fails.
type Provider interface {
	GetSession(ctx context.Context, header http.Header) (*Session, error)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(header http.Header) (string, error) {
	authHeader := header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoCredentials
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", ErrInvalidCredentials
	}
	return parts[1], nil
}
