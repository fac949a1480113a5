package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Two active appointments of one barber may never overlap. This is the
// last line behind the conflict guard; violations surface as SQLSTATE 23P01.
const appointmentOverlapConstraint = `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
	) THEN
		ALTER TABLE appointments
			ADD CONSTRAINT appointments_no_overlap
			EXCLUDE USING gist (
				barber_id WITH =,
				tstzrange(start_at, end_at, '[)') WITH &&
			)
			WHERE (status IN ('pending', 'confirmed'));
	END IF;
END
$$;`

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsProduction() {
		level = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(level),
		NowFunc:     func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db, log); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.BusinessHours{},
		&models.Barber{},
		&models.BarberSchedule{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
		&models.OutboxEvent{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(appointmentOverlapConstraint).Error; err != nil {
		return fmt.Errorf("appointment overlap constraint: %w", err)
	}

	if err := backfillTimezones(db, log); err != nil {
		return err
	}

	log.Info("database migrated")
	return nil
}

// backfillTimezones resets missing or unparsable shop timezones to the
// default so availability never runs on a silently substituted zone.
func backfillTimezones(db *gorm.DB, log *zap.Logger) error {
	var shops []models.Barbershop
	if err := db.Select("id", "timezone").Find(&shops).Error; err != nil {
		return fmt.Errorf("load barbershop timezones: %w", err)
	}

	ids := invalidTimezones(shops)
	if len(ids) == 0 {
		return nil
	}

	if err := db.Model(&models.Barbershop{}).
		Where("id IN ?", ids).
		Update("timezone", timezone.DefaultTimezone).Error; err != nil {
		return fmt.Errorf("timezone backfill: %w", err)
	}

	log.Warn("barbershop timezones backfilled",
		zap.Uints("barbershop_ids", ids),
		zap.String("timezone", timezone.DefaultTimezone),
	)
	return nil
}

func invalidTimezones(shops []models.Barbershop) []uint {
	var ids []uint
	for _, s := range shops {
		if !timezone.IsValid(s.Timezone) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
