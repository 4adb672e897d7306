package mock

import (
	"context"
	"testing"

	"themeapp/models"
)

func TestNewSeedsDemoPreference(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := Open(ctx, "file:mock-seed?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("mock database initialization failed: %v", err)
	}

	var pref models.Preference
	if err := db.WithContext(ctx).Where("visitor_id = ? AND pref_key = ?", DemoVisitorID, "theme").First(&pref).Error; err != nil {
		t.Fatalf("query demo preference: %v", err)
	}
	if pref.Value != string(models.ThemeDarkProfessional) {
		t.Fatalf("expected seeded theme %q, got %q", models.ThemeDarkProfessional, pref.Value)
	}
}

func TestOpenIsIdempotentForSharedDatabase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dsn := "file:mock-reopen?mode=memory&cache=shared"
	first, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := Open(ctx, dsn); err != nil {
		t.Fatalf("second open: %v", err)
	}

	var count int64
	if err := first.WithContext(ctx).Model(&models.Preference{}).Count(&count).Error; err != nil {
		t.Fatalf("count preferences: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single seeded row, got %d", count)
	}
}
