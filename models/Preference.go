package models

import "gorm.io/gorm"

// Preference stores a single visitor setting as a plain string value.
type Preference struct {
	gorm.Model
	VisitorID string `gorm:"type:varchar(64);not null;uniqueIndex:idx_preferences_visitor_key"`
	Key       string `gorm:"column:pref_key;type:varchar(32);not null;uniqueIndex:idx_preferences_visitor_key"`
	Value     string `gorm:"type:varchar(64);not null"`
}
