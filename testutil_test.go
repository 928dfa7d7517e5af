package main

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/khoinguyen248/projectSW-251-BE/models"
)

// setupTestDB points the package globals at a fresh in-memory sqlite
// database. Tests run against the real query paths without postgres.
func setupTestDB(t *testing.T) {
	t.Helper()
	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := g.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// a second connection to :memory: would see an empty database
	sqlDB.SetMaxOpenConns(1)
	migrateModels(g)

	db = g
	cfg = Config{
		JWTSecret:  []byte("test-secret"),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 30 * 24 * time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
	tok = newTokenService(cfg)
	mailer = logMailer{}

	t.Cleanup(func() {
		nowFunc = time.Now
		_ = sqlDB.Close()
	})
}

// freezeTime pins nowFunc for the remainder of the test.
func freezeTime(t *testing.T, at time.Time) {
	t.Helper()
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = time.Now })
}

func mustCreateAccount(t *testing.T, email string, role models.Role, verified bool) models.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	acct := models.Account{Email: email, PasswordHash: hash, Role: role, IsActive: true, IsVerified: verified}
	if err := db.Create(&acct).Error; err != nil {
		t.Fatalf("create account: %v", err)
	}
	return acct
}

func mustCreateTutor(t *testing.T, email string) (models.Account, models.TutorProfile) {
	t.Helper()
	acct := mustCreateAccount(t, email, models.RoleTutor, true)
	tp := models.TutorProfile{AccountID: acct.ID, FullName: "Tutor " + email}
	if err := db.Create(&tp).Error; err != nil {
		t.Fatalf("create tutor profile: %v", err)
	}
	return acct, tp
}

func countRows(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
