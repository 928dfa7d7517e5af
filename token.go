package main

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/khoinguyen248/projectSW-251-BE/models"
)

// nowFunc returns the current time. Overridden in tests.
var nowFunc = time.Now

// tokenClaims is the decoded payload of either token kind. JTI is empty
// for access tokens.
type tokenClaims struct {
	AccountID uint
	Email     string
	Role      models.Role
	JTI       string
	ExpiresAt time.Time
}

// tokenService signs and verifies the two capability tokens. It is
// stateless: verification trusts the HMAC signature alone and never
// consults storage.
type tokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func newTokenService(c Config) *tokenService {
	return &tokenService{secret: c.JWTSecret, accessTTL: c.AccessTTL, refreshTTL: c.RefreshTTL}
}

// SignAccess issues a short-lived bearer token with identity claims only.
func (s *tokenService) SignAccess(accountID uint, email string, role models.Role) (string, error) {
	return s.sign(jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(accountID), 10),
		"email": email,
		"role":  string(role),
		"exp":   nowFunc().Add(s.accessTTL).Unix(),
	})
}

// SignRefresh issues a long-lived token carrying the jti that keys its
// CredentialStore record.
func (s *tokenService) SignRefresh(accountID uint, email string, role models.Role, jti string) (string, error) {
	return s.sign(jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(accountID), 10),
		"email": email,
		"role":  string(role),
		"jti":   jti,
		"exp":   nowFunc().Add(s.refreshTTL).Unix(),
	})
}

func (s *tokenService) sign(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature and expiry and decodes the claims. Failures
// collapse to errTokenExpired or errTokenInvalid; callers must not leak
// which check failed beyond that split.
func (s *tokenService) Verify(tokenString string) (tokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return nowFunc() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return tokenClaims{}, errTokenExpired
		}
		return tokenClaims{}, errTokenInvalid
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return tokenClaims{}, errTokenInvalid
	}
	sub, _ := mc["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return tokenClaims{}, errTokenInvalid
	}
	email, _ := mc["email"].(string)
	roleStr, _ := mc["role"].(string)
	role := models.Role(roleStr)
	if !role.Valid() {
		return tokenClaims{}, errTokenInvalid
	}
	jti, _ := mc["jti"].(string)
	exp, _ := mc.GetExpirationTime()
	claims := tokenClaims{AccountID: uint(id), Email: email, Role: role, JTI: jti}
	if exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}
