// Package prefs provides the durable backends behind the theme store: the
// visitor's session cookie and the preferences table.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"themeapp/models"
)

// ErrNoVisitor is returned when a database write has no visitor to attribute it to.
var ErrNoVisitor = errors.New("prefs: no visitor on context")

const sessionKeyPrefix = "prefs:"

type visitorKey struct{}

// WithVisitor attaches the visitor identifier used to scope database rows.
func WithVisitor(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, visitorKey{}, visitorID)
}

// VisitorFromContext returns the visitor identifier attached by WithVisitor.
func VisitorFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(visitorKey{}).(string)
	if !ok || strings.TrimSpace(id) == "" {
		return "", false
	}
	return id, true
}

// SessionStorage keeps values in the visitor's scs session. The session must
// already be loaded on the context, as LoadAndSave does.
type SessionStorage struct {
	Manager *scs.SessionManager
}

// NewSessionStorage wraps sm.
func NewSessionStorage(sm *scs.SessionManager) *SessionStorage {
	return &SessionStorage{Manager: sm}
}

func (s *SessionStorage) Load(ctx context.Context, key string) (string, bool, error) {
	if s.Manager == nil {
		return "", false, errors.New("prefs: session manager not configured")
	}
	k := sessionKeyPrefix + key
	if !s.Manager.Exists(ctx, k) {
		return "", false, nil
	}
	return s.Manager.GetString(ctx, k), true, nil
}

func (s *SessionStorage) Save(ctx context.Context, key, value string) error {
	if s.Manager == nil {
		return errors.New("prefs: session manager not configured")
	}
	s.Manager.Put(ctx, sessionKeyPrefix+key, value)
	return nil
}

// GormStorage keeps values in the preferences table, one row per visitor and key.
type GormStorage struct {
	DB *gorm.DB
}

// NewGormStorage wraps db.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{DB: db}
}

func (s *GormStorage) Load(ctx context.Context, key string) (string, bool, error) {
	visitor, ok := VisitorFromContext(ctx)
	if !ok {
		return "", false, nil
	}
	return load(ctx, s.DB, visitor, key)
}

func (s *GormStorage) Save(ctx context.Context, key, value string) error {
	visitor, ok := VisitorFromContext(ctx)
	if !ok {
		return ErrNoVisitor
	}
	return save(ctx, s.DB, visitor, key, value)
}

// Lookup reads a visitor's persisted value for key directly from db.
func Lookup(ctx context.Context, db *gorm.DB, visitor, key string) (string, bool, error) {
	return load(ctx, db, visitor, key)
}

// Assign writes a visitor's value for key directly to db.
func Assign(ctx context.Context, db *gorm.DB, visitor, key, value string) error {
	if strings.TrimSpace(visitor) == "" {
		return ErrNoVisitor
	}
	return save(ctx, db, visitor, key, value)
}

func load(ctx context.Context, db *gorm.DB, visitor, key string) (string, bool, error) {
	if db == nil {
		return "", false, gorm.ErrInvalidDB
	}
	var pref models.Preference
	err := db.WithContext(ctx).Where("visitor_id = ? AND pref_key = ?", visitor, key).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("prefs: load %s for %s: %w", key, visitor, err)
	}
	return pref.Value, true, nil
}

func save(ctx context.Context, db *gorm.DB, visitor, key, value string) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	pref := models.Preference{VisitorID: visitor, Key: key, Value: value}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "visitor_id"}, {Name: "pref_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
	if err != nil {
		return fmt.Errorf("prefs: save %s for %s: %w", key, visitor, err)
	}
	return nil
}
