package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"careerconnect/internal/apperr"
	"careerconnect/internal/store/memstore"
)

func newService(t *testing.T) *Service {
	t.Helper()
	mem := memstore.New()
	tokens := NewTokenProvider("test-secret", time.Hour)
	return NewService(mem.Stores().Users, tokens, NopMailer{}, zap.NewNop())
}

func TestRegister(t *testing.T) {
	svc := newService(t)

	session, err := svc.Register(context.Background(), "Aarav Kumar", "a@x.com", "secret123", "student")
	require.NoError(t, err)
	require.NotNil(t, session.User)
	assert.NotEmpty(t, session.Token)
	assert.NotEmpty(t, session.User.ID)
	assert.Equal(t, "a@x.com", session.User.Email)
	assert.NotEqual(t, "secret123", session.User.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		name     string
		userName string
		email    string
		password string
		role     string
	}{
		{"empty name", "", "a@x.com", "secret123", "student"},
		{"numeric name", "Aarav 42", "a@x.com", "secret123", "student"},
		{"bad email", "Aarav", "not-an-email", "secret123", "student"},
		{"short password", "Aarav", "a@x.com", "12345", "student"},
		{"unknown role", "Aarav", "a@x.com", "secret123", "superuser"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.userName, tc.email, tc.password, tc.role)
			assert.True(t, apperr.Is(err, apperr.CodeValidation))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newService(t)

	_, err := svc.Register(context.Background(), "Aarav", "a@x.com", "secret123", "student")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Another", "A@X.COM", "secret123", "company")
	assert.True(t, apperr.Is(err, apperr.CodeConflict))
}

func TestSignIn(t *testing.T) {
	svc := newService(t)

	_, err := svc.Register(context.Background(), "Aarav", "a@x.com", "secret123", "student")
	require.NoError(t, err)

	session, err := svc.SignIn(context.Background(), "a@x.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
}

func TestSignInErrors(t *testing.T) {
	svc := newService(t)

	_, err := svc.Register(context.Background(), "Aarav", "a@x.com", "secret123", "student")
	require.NoError(t, err)

	_, err = svc.SignIn(context.Background(), "not-an-email", "secret123")
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))

	_, err = svc.SignIn(context.Background(), "b@x.com", "secret123")
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))

	_, err = svc.SignIn(context.Background(), "a@x.com", "wrong-password")
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenProvider("test-secret", time.Hour)

	token, err := tokens.Issue("u-1")
	require.NoError(t, err)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)

	other := NewTokenProvider("different-secret", time.Hour)
	_, err = other.Verify(token)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}

func TestShareTokenRoundTrip(t *testing.T) {
	tokens := NewTokenProvider("test-secret", time.Hour)

	token, err := tokens.IssueShare("APP-1700000000000", time.Hour)
	require.NoError(t, err)

	id, err := tokens.VerifyShare(token)
	require.NoError(t, err)
	assert.Equal(t, "APP-1700000000000", id)
}

func TestShareTokenExpired(t *testing.T) {
	tokens := NewTokenProvider("test-secret", time.Hour)

	token, err := tokens.IssueShare("APP-1700000000000", -time.Minute)
	require.NoError(t, err)

	_, err = tokens.VerifyShare(token)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}
