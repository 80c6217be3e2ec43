package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/tropicaldog17/folio/internal/errors"
)

// SessionClaims are the claims of an auth provider access token.
type SessionClaims struct {
	Email       string `json:"email,omitempty"`
	IsAnonymous bool   `json:"is_anonymous,omitempty"`
	jwt.RegisteredClaims
}

// SessionVerifier resolves the session of a request from an HS256 access token
// sent as a bearer token or in the session cookie.
type SessionVerifier struct {
	secret     []byte
	demoUserID string
	now        func() time.Time
}

func NewSessionVerifier(secret, demoUserID string) *SessionVerifier {
	return &SessionVerifier{secret: []byte(secret), demoUserID: demoUserID, now: time.Now}
}

// Verify returns the request's principal. Anonymous sessions, and sessions
// without an email, act as the demo user when one is configured.
func (v *SessionVerifier) Verify(r *http.Request) (*Principal, error) {
	if len(v.secret) == 0 {
		return nil, apperrors.Unauthorized()
	}

	raw := BearerToken(r)
	if raw == "" {
		if c, err := r.Cookie(SessionCookie); err == nil {
			raw = c.Value
		}
	}
	if raw == "" {
		return nil, apperrors.Unauthorized()
	}

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || claims.Subject == "" {
		return nil, apperrors.Unauthorized()
	}

	if (claims.IsAnonymous || claims.Email == "") && v.demoUserID != "" {
		return &Principal{UserID: v.demoUserID, Demo: true}, nil
	}
	return &Principal{UserID: claims.Subject, Email: claims.Email}, nil
}
