package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/khoinguyen248/projectSW-251-BE/models"
)

const verificationTTL = 24 * time.Hour

var (
	usernameRE = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	emailRE    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// validateUsername checks the email local-part against the username rules.
func validateUsername(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalidInput("username must not be empty")
	}
	local := strings.SplitN(email, "@", 2)[0]
	if len(local) < 3 {
		return invalidInput("username must be at least 3 characters")
	}
	if len(local) > 22 {
		return invalidInput("username must not exceed 22 characters")
	}
	if !usernameRE.MatchString(local) {
		return invalidInput("username may only contain letters, digits, dots, dashes and underscores")
	}
	if hasLongRun(local, 3) {
		return invalidInput("username must not repeat the same character more than 3 times in a row")
	}
	if strings.Contains(email, " ") {
		return invalidInput("username must not contain spaces")
	}
	return nil
}

// hasLongRun reports whether s contains a run of one character longer
// than max (RE2 has no backreferences, so this replaces `(.)\1{3,}`).
func hasLongRun(s string, max int) bool {
	run := 0
	var prev rune
	for i, r := range s {
		if i > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		if run > max {
			return true
		}
		prev = r
	}
	return false
}

func validateEmail(email string) error {
	if !emailRE.MatchString(strings.TrimSpace(email)) {
		return invalidInput("invalid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return invalidInput("password must be at least 6 characters")
	}
	if len(password) > 32 {
		return invalidInput("password must not exceed 32 characters")
	}
	if strings.Contains(password, " ") {
		return invalidInput("password must not contain spaces")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// randomToken returns a 32-byte random value as hex, used for csrf and
// verification tokens.
func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashToken is the one-way hash under which refresh tokens are stored.
func hashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "UNIQUE constraint")
}

// ── CredentialStore ──────────────────────────────────────────────────

func storeRefreshToken(accountID uint, jti, raw string, expiresAt time.Time) error {
	rt := models.RefreshToken{
		AccountID: accountID,
		JTI:       jti,
		TokenHash: hashToken(raw),
		ExpiresAt: expiresAt,
	}
	return db.Create(&rt).Error
}

func findRefreshToken(jti string, accountID uint) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := db.Where("jti = ? AND account_id = ?", jti, accountID).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// revokeRefreshToken flips Revoked on the record iff it is still active.
// The conditional write makes redemption single-use: of any number of
// concurrent calls for the same jti, exactly one sees the row flip.
func revokeRefreshToken(jti string, accountID uint) (bool, error) {
	res := db.Model(&models.RefreshToken{}).
		Where("jti = ? AND account_id = ? AND revoked = ?", jti, accountID, false).
		Update("revoked", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ── AuthGateway core ─────────────────────────────────────────────────

// signupAccount validates the input, creates the unverified account with
// its role profile shell, and issues the verification token. No tokens
// are returned: login requires verification first.
func signupAccount(email, password string, role models.Role) (*models.Account, error) {
	if !role.Valid() {
		return nil, invalidInput("role must be TUTOR or STUDENT")
	}
	if err := validateUsername(email); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	email = normalizeEmail(email)

	// pre-check existing (optimistic); the unique index catches the race
	var existing models.Account
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, errDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	acct := models.Account{Email: email, PasswordHash: hash, Role: role}
	if err := db.Create(&acct).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, errDuplicateEmail
		}
		return nil, err
	}

	switch role {
	case models.RoleTutor:
		if err := db.Create(&models.TutorProfile{AccountID: acct.ID}).Error; err != nil {
			return nil, err
		}
	case models.RoleStudent:
		if err := db.Create(&models.StudentProfile{AccountID: acct.ID}).Error; err != nil {
			return nil, err
		}
	}

	if err := issueVerificationToken(&acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// issueVerificationToken replaces any outstanding verification token for
// the account with a fresh one and dispatches the email. A failed send is
// logged, not raised: the account exists and resend stays available.
func issueVerificationToken(acct *models.Account) error {
	if err := db.Where("account_id = ?", acct.ID).Delete(&models.VerificationToken{}).Error; err != nil {
		return err
	}
	value, err := randomToken()
	if err != nil {
		return err
	}
	vt := models.VerificationToken{AccountID: acct.ID, Token: value, ExpiresAt: nowFunc().Add(verificationTTL)}
	if err := db.Create(&vt).Error; err != nil {
		return err
	}
	if err := mailer.SendVerificationEmail(acct.Email, value, acct.ID); err != nil {
		logger.Warn().Err(err).Str("email", acct.Email).Msg("verification email failed")
	}
	return nil
}

// loginAccount checks credentials and, for a verified account, issues an
// access/refresh pair and persists the refresh record. The verified check
// runs after the password check so its distinct error never reveals
// password validity on its own.
func loginAccount(email, password string) (accessToken, refreshToken string, acct models.Account, err error) {
	email = normalizeEmail(email)
	if err = db.Where("email = ? AND is_active = ?", email, true).First(&acct).Error; err != nil {
		return "", "", models.Account{}, errInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(password)) != nil {
		return "", "", models.Account{}, errInvalidCredentials
	}
	if !acct.IsVerified {
		return "", "", models.Account{}, errEmailNotVerified
	}
	accessToken, refreshToken, err = issueTokenPair(acct)
	if err != nil {
		return "", "", models.Account{}, err
	}
	return accessToken, refreshToken, acct, nil
}

func issueTokenPair(acct models.Account) (string, string, error) {
	accessToken, err := tok.SignAccess(acct.ID, acct.Email, acct.Role)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}
	jti := uuid.NewString()
	refreshToken, err := tok.SignRefresh(acct.ID, acct.Email, acct.Role, jti)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}
	if err := storeRefreshToken(acct.ID, jti, refreshToken, nowFunc().Add(tok.refreshTTL)); err != nil {
		return "", "", fmt.Errorf("store refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

// rotateRefreshToken redeems a presented refresh token for a new pair.
// Redemption is strictly single-use: the conditional revoke decides a
// concurrent race, and the loser gets errTokenRevoked. The old record is
// revoked before the replacement is issued, so a failure past that point
// still burns the presented token.
func rotateRefreshToken(raw string) (accessToken, refreshToken string, err error) {
	claims, err := tok.Verify(raw)
	if err != nil || claims.JTI == "" {
		return "", "", errTokenInvalid
	}
	rt, err := findRefreshToken(claims.JTI, claims.AccountID)
	if err != nil || rt.Revoked || nowFunc().After(rt.ExpiresAt) {
		return "", "", errTokenRevoked
	}
	if hashToken(raw) != rt.TokenHash {
		return "", "", errTokenMismatch
	}
	won, err := revokeRefreshToken(claims.JTI, claims.AccountID)
	if err != nil {
		return "", "", err
	}
	if !won {
		return "", "", errTokenRevoked
	}
	var acct models.Account
	if err := db.Where("id = ? AND is_active = ?", claims.AccountID, true).First(&acct).Error; err != nil {
		return "", "", errTokenRevoked
	}
	return issueTokenPair(acct)
}

// logoutAccount revokes the presented refresh token's record if it can be
// verified. Best-effort: an invalid or expired token is not an error.
func logoutAccount(raw string) {
	if raw == "" {
		return
	}
	claims, err := tok.Verify(raw)
	if err != nil || claims.JTI == "" {
		return
	}
	if _, err := revokeRefreshToken(claims.JTI, claims.AccountID); err != nil {
		logger.Warn().Err(err).Msg("logout revoke failed")
	}
}

// consumeVerificationToken flips IsVerified and deletes the single-use
// token row.
func consumeVerificationToken(token string, accountID uint) error {
	var vt models.VerificationToken
	err := db.Where("token = ? AND account_id = ? AND expires_at > ?", token, accountID, nowFunc()).First(&vt).Error
	if err != nil {
		return errTokenInvalid
	}
	if err := db.Model(&models.Account{}).Where("id = ?", accountID).Update("is_verified", true).Error; err != nil {
		return err
	}
	return db.Delete(&vt).Error
}

// resendVerification reissues the verification token. An unknown email
// reports success to the caller to avoid account enumeration.
func resendVerification(email string) error {
	var acct models.Account
	if err := db.Where("email = ?", normalizeEmail(email)).First(&acct).Error; err != nil {
		return nil
	}
	if acct.IsVerified {
		return errAlreadyVerified
	}
	return issueVerificationToken(&acct)
}
