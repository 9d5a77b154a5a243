package session

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
)

func headerWith(value string) http.Header {
	h := http.Header{}
	if value != "" {
		h.Set("Authorization", value)
	}
	return h
}

func TestJWTProviderAcceptsIssuedToken(t *testing.T) {
	p := NewJWTProvider("test-secret")
	token, err := p.IssueToken("user-1", "Aki", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}
	s, err := p.GetSession(context.Background(), headerWith("Bearer "+token))
	if err != nil {
		t.Fatalf("GetSession returned error: %v", err)
	}
	if s.UserID != "user-1" || s.UserName != "Aki" {
		t.Fatalf("unexpected session %+v", s)
	}
}

func TestJWTProviderRejections(t *testing.T) {
	p := NewJWTProvider("test-secret")
	other, _ := NewJWTProvider("other-secret").IssueToken("user-1", "Aki", time.Hour)
	expired, _ := p.IssueToken("user-1", "Aki", -time.Minute)
	noUser, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Name: "ghost"}).SignedString([]byte("test-secret"))

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"missing header", "", ErrNoCredentials},
		{"not bearer", "Basic abc", ErrInvalidCredentials},
		{"garbage", "Bearer not-a-token", ErrInvalidCredentials},
		{"wrong secret", "Bearer " + other, ErrInvalidCredentials},
		{"expired", "Bearer " + expired, ErrInvalidCredentials},
		{"no user id", "Bearer " + noUser, ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.GetSession(context.Background(), headerWith(tt.header))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

type fakeVerifier struct {
	tokens map[string]*auth.Token
}

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if tok, ok := f.tokens[idToken]; ok {
		return tok, nil
	}
	return nil, errors.New("token rejected")
}

func TestFirebaseProvider(t *testing.T) {
	p := NewFirebaseProvider(fakeVerifier{tokens: map[string]*auth.Token{
		"named": {UID: "fb-1", Claims: map[string]interface{}{"name": "Ren"}},
		"email": {UID: "fb-2", Claims: map[string]interface{}{"email": "mio@example.com"}},
	}})
	ctx := context.Background()

	s, err := p.GetSession(ctx, headerWith("Bearer named"))
	if err != nil || s.UserID != "fb-1" || s.UserName != "Ren" {
		t.Fatalf("unexpected session %+v (err %v)", s, err)
	}
	s, err = p.GetSession(ctx, headerWith("Bearer email"))
	if err != nil || s.UserName != "mio@example.com" {
		t.Fatalf("expected email fallback name, got %+v (err %v)", s, err)
	}
	if _, err := p.GetSession(ctx, headerWith("Bearer unknown")); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := p.GetSession(ctx, headerWith("")); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}
