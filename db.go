package main

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/khoinguyen248/projectSW-251-BE/models"
)

var db *gorm.DB

func initDB() {
	if cfg.DBDSN == "" {
		logger.Fatal().Msg("DB_DSN is not set; a Postgres DSN is required")
	}
	var err error
	db, err = gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres database")
	}
	migrateModels(db)
}

// migrateModels runs AutoMigrate per model so one failure doesn't block
// the rest. Also used by the test setup against sqlite.
func migrateModels(g *gorm.DB) {
	for _, m := range []interface{}{
		&models.Account{},
		&models.RefreshToken{},
		&models.VerificationToken{},
		&models.TutorProfile{},
		&models.StudentProfile{},
		&models.Session{},
		&models.Feedback{},
		&models.Notification{},
		&models.ProgramRegistration{},
	} {
		if err := g.AutoMigrate(m); err != nil {
			logger.Warn().Err(err).Msgf("migration warning: %T", m)
		}
	}
}
