package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tropicaldog17/folio/internal/errors"
)

const (
	testSecret = "jwt-secret"
	demoUser   = "00000000-0000-0000-0000-00000000demo"
)

func signToken(t *testing.T, secret string, claims SessionClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func claimsFor(sub, email string, ttl time.Duration) SessionClaims {
	return SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer abc":   "abc",
		"Bearer  abc ": "abc",
		"Basic abc":    "",
		"Bearer ":      "",
		"":             "",
	}
	for header, want := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		assert.Equal(t, want, BearerToken(r), "header %q", header)
	}
}

func TestSecretGate(t *testing.T) {
	req := func(header string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/api/internal/pnl", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		return r
	}

	gate := NewSecretGate("s3cret")
	assert.NoError(t, gate.Check(req("Bearer s3cret")))
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(gate.Check(req(""))))
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(gate.Check(req("Bearer wrong"))))
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(gate.Check(req("s3cret"))))

	t.Run("fails closed without a secret", func(t *testing.T) {
		empty := NewSecretGate("")
		assert.Error(t, empty.Check(req("Bearer ")))
		assert.Error(t, empty.Check(req("Bearer anything")))
	})
}

func TestRequireOwner(t *testing.T) {
	p := &Principal{UserID: "u1"}
	assert.NoError(t, RequireOwner(p, "u1"))
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(RequireOwner(p, "u2")))
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(RequireOwner(nil, "u1")))
}

func TestPrincipalContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), &Principal{UserID: "u1"})
	p, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", p.UserID)
}

func TestSessionVerifier(t *testing.T) {
	v := NewSessionVerifier(testSecret, demoUser)

	t.Run("bearer token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, claimsFor("u1", "a@b.c", time.Hour)))
		p, err := v.Verify(r)
		require.NoError(t, err)
		assert.Equal(t, &Principal{UserID: "u1", Email: "a@b.c"}, p)
	})

	t.Run("session cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: signToken(t, testSecret, claimsFor("u1", "a@b.c", time.Hour))})
		p, err := v.Verify(r)
		require.NoError(t, err)
		assert.Equal(t, "u1", p.UserID)
	})

	t.Run("anonymous session acts as demo user", func(t *testing.T) {
		claims := claimsFor("anon-1", "", time.Hour)
		claims.IsAnonymous = true
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, claims))
		p, err := v.Verify(r)
		require.NoError(t, err)
		assert.Equal(t, demoUser, p.UserID)
		assert.True(t, p.Demo)
	})

	t.Run("rejected tokens", func(t *testing.T) {
		cases := map[string]string{
			"missing":    "",
			"garbage":    "Bearer not-a-jwt",
			"wrong key":  "Bearer " + signToken(t, "other", claimsFor("u1", "a@b.c", time.Hour)),
			"expired":    "Bearer " + signToken(t, testSecret, claimsFor("u1", "a@b.c", -time.Hour)),
			"no subject": "Bearer " + signToken(t, testSecret, claimsFor("", "a@b.c", time.Hour)),
			"no expiry":  "Bearer " + signToken(t, testSecret, SessionClaims{Email: "a@b.c", RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}),
		}
		for name, header := range cases {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				r.Header.Set("Authorization", header)
			}
			p, err := v.Verify(r)
			assert.Nil(t, p, name)
			assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err), name)
		}
	})

	t.Run("none algorithm", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claimsFor("u1", "a@b.c", time.Hour)).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+tok)
		_, err = v.Verify(r)
		assert.Error(t, err)
	})

	t.Run("fails closed without a secret", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, claimsFor("u1", "a@b.c", time.Hour)))
		_, err := NewSessionVerifier("", demoUser).Verify(r)
		assert.Error(t, err)
	})
}
