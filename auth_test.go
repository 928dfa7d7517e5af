package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoinguyen248/projectSW-251-BE/models"
)

func TestSignupValidationRules(t *testing.T) {
	setupTestDB(t)

	cases := []struct {
		name     string
		email    string
		password string
		role     models.Role
		wantMsg  string
	}{
		{"bad role", "alice@example.com", "secret1", "ADMIN", "role must be TUTOR or STUDENT"},
		{"short local part", "ab@example.com", "secret1", models.RoleStudent, "at least 3 characters"},
		{"long local part", "abcdefghijklmnopqrstuvw@example.com", "secret1", models.RoleStudent, "not exceed 22"},
		{"bad charset", "ali!ce@example.com", "secret1", models.RoleStudent, "may only contain"},
		{"repeated run", "aaaab@example.com", "secret1", models.RoleStudent, "more than 3 times"},
		{"short password", "alice@example.com", "abc", models.RoleStudent, "at least 6 characters"},
		{"long password", "alice@example.com", "abcdefghijklmnopqrstuvwxyz0123456", models.RoleStudent, "not exceed 32"},
		{"password with space", "alice@example.com", "abc def", models.RoleStudent, "must not contain spaces"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := signupAccount(tc.email, tc.password, tc.role)
			require.Error(t, err)
			assert.True(t, isValidationError(err), "expected validation error, got %v", err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestSignupCreatesUnverifiedAccountWithOneToken(t *testing.T) {
	setupTestDB(t)

	acct, err := signupAccount("Alice.W@Example.com", "secret1", models.RoleStudent)
	require.NoError(t, err)

	assert.Equal(t, "alice.w@example.com", acct.Email)
	assert.False(t, acct.IsVerified)
	assert.Equal(t, int64(1), countRows(t, &models.VerificationToken{}, "account_id = ?", acct.ID))
	assert.Equal(t, int64(1), countRows(t, &models.StudentProfile{}, "account_id = ?", acct.ID))
	assert.Equal(t, int64(0), countRows(t, &models.TutorProfile{}, "account_id = ?", acct.ID))
}

func TestSignupDuplicateEmailCaseInsensitive(t *testing.T) {
	setupTestDB(t)

	_, err := signupAccount("bob@example.com", "secret1", models.RoleTutor)
	require.NoError(t, err)

	_, err = signupAccount("  BOB@example.com ", "secret1", models.RoleStudent)
	assert.ErrorIs(t, err, errDuplicateEmail)
}

func TestLoginUnverifiedAccountIssuesNoTokens(t *testing.T) {
	setupTestDB(t)

	_, err := signupAccount("carol@example.com", "secret1", models.RoleStudent)
	require.NoError(t, err)

	access, refresh, _, err := loginAccount("carol@example.com", "secret1")
	assert.ErrorIs(t, err, errEmailNotVerified)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
	assert.Equal(t, int64(0), countRows(t, &models.RefreshToken{}, ""))
}

func TestLoginWrongPasswordIsGeneric(t *testing.T) {
	setupTestDB(t)
	mustCreateAccount(t, "dave@example.com", models.RoleStudent, true)

	_, _, _, err := loginAccount("dave@example.com", "wrong-pass")
	assert.ErrorIs(t, err, errInvalidCredentials)

	_, _, _, err = loginAccount("nobody@example.com", "secret1")
	assert.ErrorIs(t, err, errInvalidCredentials)
}

func TestVerifyEmailFlow(t *testing.T) {
	setupTestDB(t)

	acct, err := signupAccount("erin@example.com", "secret1", models.RoleStudent)
	require.NoError(t, err)

	var vt models.VerificationToken
	require.NoError(t, db.Where("account_id = ?", acct.ID).First(&vt).Error)

	require.NoError(t, consumeVerificationToken(vt.Token, acct.ID))
	assert.Equal(t, int64(0), countRows(t, &models.VerificationToken{}, "account_id = ?", acct.ID))

	// token is single-use
	assert.ErrorIs(t, consumeVerificationToken(vt.Token, acct.ID), errTokenInvalid)

	access, refresh, got, err := loginAccount("erin@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, acct.ID, got.ID)
	assert.Equal(t, int64(1), countRows(t, &models.RefreshToken{}, "account_id = ? AND revoked = ?", acct.ID, false))
}

func TestRefreshRotationAndReplay(t *testing.T) {
	setupTestDB(t)
	acct := mustCreateAccount(t, "frank@example.com", models.RoleStudent, true)

	_, refresh1, _, err := loginAccount("frank@example.com", "secret1")
	require.NoError(t, err)

	access2, refresh2, err := rotateRefreshToken(refresh1)
	require.NoError(t, err)
	assert.NotEmpty(t, access2)
	assert.NotEqual(t, refresh1, refresh2)

	// replaying the redeemed token must fail and must not mint a new pair
	_, _, err = rotateRefreshToken(refresh1)
	assert.ErrorIs(t, err, errTokenRevoked)
	assert.Equal(t, int64(1), countRows(t, &models.RefreshToken{}, "account_id = ? AND revoked = ?", acct.ID, false))

	// the replacement still rotates normally
	_, refresh3, err := rotateRefreshToken(refresh2)
	require.NoError(t, err)
	assert.NotEmpty(t, refresh3)
}

func TestRefreshMismatchedHashRejected(t *testing.T) {
	setupTestDB(t)
	acct := mustCreateAccount(t, "gina@example.com", models.RoleStudent, true)

	_, refresh1, _, err := loginAccount("gina@example.com", "secret1")
	require.NoError(t, err)

	// forge a second token with the stored jti: valid signature, but its
	// hash does not match the persisted record
	claims, err := tok.Verify(refresh1)
	require.NoError(t, err)
	forged, err := tok.SignRefresh(acct.ID, "forged@example.com", models.RoleStudent, claims.JTI)
	require.NoError(t, err)
	require.NotEqual(t, refresh1, forged)

	_, _, err = rotateRefreshToken(forged)
	assert.ErrorIs(t, err, errTokenMismatch)

	// the genuine token was not burned by the forgery attempt
	_, _, err = rotateRefreshToken(refresh1)
	assert.NoError(t, err)
}

func TestRefreshUnknownJTIRejected(t *testing.T) {
	setupTestDB(t)
	acct := mustCreateAccount(t, "hank@example.com", models.RoleStudent, true)

	stray, err := tok.SignRefresh(acct.ID, acct.Email, acct.Role, uuid.NewString())
	require.NoError(t, err)

	_, _, err = rotateRefreshToken(stray)
	assert.ErrorIs(t, err, errTokenRevoked)
}

func TestLogoutRevokesAndToleratesGarbage(t *testing.T) {
	setupTestDB(t)
	acct := mustCreateAccount(t, "iris@example.com", models.RoleStudent, true)

	_, refresh1, _, err := loginAccount("iris@example.com", "secret1")
	require.NoError(t, err)

	logoutAccount(refresh1)
	assert.Equal(t, int64(0), countRows(t, &models.RefreshToken{}, "account_id = ? AND revoked = ?", acct.ID, false))

	_, _, err = rotateRefreshToken(refresh1)
	assert.ErrorIs(t, err, errTokenRevoked)

	// never panics or errors outward
	logoutAccount("not-a-token")
	logoutAccount("")
	logoutAccount(refresh1)
}

func TestResendVerification(t *testing.T) {
	setupTestDB(t)

	// unknown email reports success
	assert.NoError(t, resendVerification("ghost@example.com"))

	acct, err := signupAccount("judy@example.com", "secret1", models.RoleStudent)
	require.NoError(t, err)

	var first models.VerificationToken
	require.NoError(t, db.Where("account_id = ?", acct.ID).First(&first).Error)

	require.NoError(t, resendVerification("judy@example.com"))
	assert.Equal(t, int64(1), countRows(t, &models.VerificationToken{}, "account_id = ?", acct.ID))
	var second models.VerificationToken
	require.NoError(t, db.Where("account_id = ?", acct.ID).First(&second).Error)
	assert.NotEqual(t, first.Token, second.Token)

	require.NoError(t, consumeVerificationToken(second.Token, acct.ID))
	assert.ErrorIs(t, resendVerification("judy@example.com"), errAlreadyVerified)
}
