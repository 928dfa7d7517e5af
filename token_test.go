package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoinguyen248/projectSW-251-BE/models"
)

func newTestTokenService() *tokenService {
	return &tokenService{
		secret:     []byte("test-secret"),
		accessTTL:  15 * time.Minute,
		refreshTTL: 30 * 24 * time.Hour,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	s := newTestTokenService()
	signed, err := s.SignAccess(42, "alice@example.com", models.RoleStudent)
	require.NoError(t, err)

	claims, err := s.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.AccountID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.Empty(t, claims.JTI, "access tokens carry no jti")
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt, time.Minute)
}

func TestRefreshTokenCarriesJTI(t *testing.T) {
	s := newTestTokenService()
	signed, err := s.SignRefresh(7, "bob@example.com", models.RoleTutor, "jti-123")
	require.NoError(t, err)

	claims, err := s.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "jti-123", claims.JTI)
	assert.Equal(t, models.RoleTutor, claims.Role)
}

func TestVerifyExpiredToken(t *testing.T) {
	s := newTestTokenService()
	base := time.Now()
	nowFunc = func() time.Time { return base }
	t.Cleanup(func() { nowFunc = time.Now })

	signed, err := s.SignAccess(1, "a@b.co", models.RoleStudent)
	require.NoError(t, err)

	nowFunc = func() time.Time { return base.Add(16 * time.Minute) }
	_, err = s.Verify(signed)
	assert.ErrorIs(t, err, errTokenExpired)
}

func TestVerifyRejectsTamperAndWrongKey(t *testing.T) {
	s := newTestTokenService()
	signed, err := s.SignAccess(1, "a@b.co", models.RoleStudent)
	require.NoError(t, err)

	_, err = s.Verify(signed + "x")
	assert.ErrorIs(t, err, errTokenInvalid)

	other := &tokenService{secret: []byte("other-secret"), accessTTL: s.accessTTL, refreshTTL: s.refreshTTL}
	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, errTokenInvalid)
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	s := newTestTokenService()
	signed, err := s.SignAccess(1, "a@b.co", models.Role("ADMIN"))
	require.NoError(t, err)

	_, err = s.Verify(signed)
	assert.ErrorIs(t, err, errTokenInvalid)
}
