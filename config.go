package main

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds everything read from the environment at startup. It is
// immutable after loadConfig returns; request handlers only ever read it.
type Config struct {
	Port         string
	DBDSN        string
	JWTSecret    []byte
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	CookieDomain string
	CookieSecure bool
	BcryptCost   int
}

var cfg Config

func loadConfig() Config {
	c := Config{
		Port:         envOr("PORT", "8081"),
		DBDSN:        os.Getenv("DB_DSN"),
		JWTSecret:    []byte(envOr("JWT_SECRET", "dev-insecure-secret-change")),
		AccessTTL:    time.Duration(envInt("ACCESS_TTL_MINUTES", 15)) * time.Minute,
		RefreshTTL:   time.Duration(envInt("REFRESH_TTL_DAYS", 30)) * 24 * time.Hour,
		CookieDomain: os.Getenv("COOKIE_DOMAIN"),
		CookieSecure: envOr("APP_ENV", "") == "production",
		BcryptCost:   envInt("BCRYPT_COST", 12),
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		c.BcryptCost = 12
	}
	return c
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
