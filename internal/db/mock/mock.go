package mock

import (
	"context"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"themeapp/internal/db"
	applog "themeapp/internal/log"
	"themeapp/models"
)

// DemoVisitorID owns the seeded preference row so local runs have a non-default theme to inspect.
const DemoVisitorID = "demo-visitor"

// New returns an in-memory sqlite database with the preference schema and a demo row.
func New(ctx context.Context) (*gorm.DB, error) {
	return Open(ctx, "file:themeapp-mock?mode=memory&cache=shared")
}

// Open is New with an explicit sqlite DSN, letting tests isolate their databases.
func Open(ctx context.Context, dsn string) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database", "dsn", dsn)

	database, err := gorm.Open(sqlite.Open(dsn), db.Options(logger.Silent))
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	var count int64
	if err := database.WithContext(ctx).Model(&models.Preference{}).Where("visitor_id = ?", DemoVisitorID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	applog.Debug(ctx, "seeding mock database")
	return database.WithContext(ctx).Create(&models.Preference{
		VisitorID: DemoVisitorID,
		Key:       "theme",
		Value:     string(models.ThemeDarkProfessional),
	}).Error
}
