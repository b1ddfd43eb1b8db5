package token

import (
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc := NewService("secret", time.Hour)

	tok, err := svc.Issue("a@example.com")
	require.NoError(t, err)

	email, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", email)
}

func TestIssue_OneHourWindow(t *testing.T) {
	fixed := time.Unix(1_700_000_000, 0)
	svc := NewService("secret", 0)
	svc.now = func() time.Time { return fixed }

	tok, err := svc.Issue("a@example.com")
	require.NoError(t, err)

	var claims Claims
	_, _, err = new(jwt.Parser).ParseUnverified(tok, &claims)
	require.NoError(t, err)
	assert.Equal(t, fixed.Unix(), claims.IssuedAt)
	assert.Equal(t, fixed.Add(time.Hour).Unix(), claims.ExpiresAt)
}

func TestVerify_Expired(t *testing.T) {
	svc := NewService("secret", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := svc.Issue("a@example.com")
	require.NoError(t, err)

	_, err = NewService("secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_Rejects(t *testing.T) {
	good := mustIssue(t, NewService("secret", time.Hour), "a@example.com")
	other := mustIssue(t, NewService("secret", time.Hour), "b@example.com")
	g, o := strings.Split(good, "."), strings.Split(other, ".")
	tampered := strings.Join([]string{g[0], o[1], g[2]}, ".")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Email: "a@example.com"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	expiredForeign := NewService("other", time.Hour)
	expiredForeign.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	foreignOld := mustIssue(t, expiredForeign, "a@example.com")

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong secret", mustIssue(t, NewService("other", time.Hour), "a@example.com")},
		{"tampered payload", tampered},
		{"alg none", unsigned},
		{"expired and wrong secret", foreignOld},
	}
	svc := NewService("secret", time.Hour)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}

func TestVerify_MissingEmail(t *testing.T) {
	claims := Claims{StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewService("secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func mustIssue(t *testing.T, svc *Service, email string) string {
	t.Helper()
	tok, err := svc.Issue(email)
	require.NoError(t, err)
	return tok
}
