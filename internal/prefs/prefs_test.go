package prefs

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"themeapp/internal/db"
	"themeapp/internal/theme"
	"themeapp/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := gorm.Open(sqlite.Open(dsn), db.Options(logger.Silent))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database))
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return database
}

func loadedSession(t *testing.T) (*scs.SessionManager, context.Context) {
	t.Helper()
	sm := scs.New()
	ctx, err := sm.Load(context.Background(), "")
	require.NoError(t, err)
	return sm, ctx
}

func TestVisitorFromContext(t *testing.T) {
	_, ok := VisitorFromContext(context.Background())
	require.False(t, ok)

	_, ok = VisitorFromContext(WithVisitor(context.Background(), "  "))
	require.False(t, ok, "blank visitor ids are not usable")

	id, ok := VisitorFromContext(WithVisitor(context.Background(), "v-1"))
	require.True(t, ok)
	require.Equal(t, "v-1", id)
}

func TestSessionStorageRoundTrip(t *testing.T) {
	sm, ctx := loadedSession(t)
	storage := NewSessionStorage(sm)

	_, ok, err := storage.Load(ctx, theme.StorageKey)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, storage.Save(ctx, theme.StorageKey, "theme3"))
	value, ok, err := storage.Load(ctx, theme.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "theme3", value)
	require.Equal(t, "theme3", sm.GetString(ctx, "prefs:theme"))
}

func TestSessionStorageWithoutManager(t *testing.T) {
	storage := &SessionStorage{}
	_, _, err := storage.Load(context.Background(), "theme")
	require.Error(t, err)
	require.Error(t, storage.Save(context.Background(), "theme", "theme1"))
}

func TestGormStorageUpsertsPerVisitor(t *testing.T) {
	database := openTestDB(t)
	storage := NewGormStorage(database)
	ctx := WithVisitor(context.Background(), "visitor-a")

	_, ok, err := storage.Load(ctx, theme.StorageKey)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, storage.Save(ctx, theme.StorageKey, "theme2"))
	require.NoError(t, storage.Save(ctx, theme.StorageKey, "theme3"))

	value, ok, err := storage.Load(ctx, theme.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "theme3", value)

	var count int64
	require.NoError(t, database.Model(&models.Preference{}).Where("visitor_id = ?", "visitor-a").Count(&count).Error)
	require.EqualValues(t, 1, count)

	_, ok, err = storage.Load(WithVisitor(context.Background(), "visitor-b"), theme.StorageKey)
	require.NoError(t, err)
	require.False(t, ok, "preferences are scoped to a visitor")
}

func TestGormStorageRequiresVisitorToSave(t *testing.T) {
	storage := NewGormStorage(openTestDB(t))

	require.ErrorIs(t, storage.Save(context.Background(), theme.StorageKey, "theme1"), ErrNoVisitor)

	_, ok, err := storage.Load(context.Background(), theme.StorageKey)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLookupAndAssign(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	require.ErrorIs(t, Assign(ctx, database, "", theme.StorageKey, "theme1"), ErrNoVisitor)
	require.NoError(t, Assign(ctx, database, "cli-visitor", theme.StorageKey, "theme2"))

	value, ok, err := Lookup(ctx, database, "cli-visitor", theme.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "theme2", value)

	_, _, err = Lookup(ctx, nil, "cli-visitor", theme.StorageKey)
	require.ErrorIs(t, err, gorm.ErrInvalidDB)
}

func TestThemeStoreRestoresFromGormStorage(t *testing.T) {
	storage := NewGormStorage(openTestDB(t))
	ctx := WithVisitor(context.Background(), "returning")

	require.NoError(t, theme.NewStore(ctx, storage).Set(ctx, models.ThemeColorfulCreative))
	require.Equal(t, models.ThemeColorfulCreative, theme.NewStore(ctx, storage).Current())

	require.NoError(t, storage.Save(ctx, theme.StorageKey, "corrupted"))
	require.Equal(t, models.DefaultTheme, theme.NewStore(ctx, storage).Current())
}
