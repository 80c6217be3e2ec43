package auth

import (
	"context"
	"crypto/hmac"
	"net/http"
	"strings"

	apperrors "github.com/tropicaldog17/folio/internal/errors"
)

// SessionCookie is the cookie the auth provider stores the access token in.
const SessionCookie = "sb-access-token"

// Principal is the identity a request acts as.
type Principal struct {
	UserID string
	Email  string
	// Demo is set when an anonymous session was mapped to the demo user.
	Demo bool
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored by the session middleware, if any.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

// SecretGate admits requests carrying the shared internal secret.
type SecretGate struct {
	secret string
}

func NewSecretGate(secret string) *SecretGate {
	return &SecretGate{secret: secret}
}

// Check fails closed: with no secret configured every request is rejected.
func (g *SecretGate) Check(r *http.Request) error {
	token := BearerToken(r)
	if g.secret == "" || token == "" {
		return apperrors.Unauthorized()
	}
	if !hmac.Equal([]byte(token), []byte(g.secret)) {
		return apperrors.Unauthorized()
	}
	return nil
}

// RequireOwner allows a principal to read only its own data.
func RequireOwner(p *Principal, userID string) error {
	if p == nil {
		return apperrors.Unauthorized()
	}
	if p.UserID != userID {
		return apperrors.Forbidden()
	}
	return nil
}
