package models

import "strings"

// ThemeID names one of the visual presets a visitor can pick.
type ThemeID string

const (
	ThemeMinimalLight     ThemeID = "theme1"
	ThemeDarkProfessional ThemeID = "theme2"
	ThemeColorfulCreative ThemeID = "theme3"
)

// DefaultTheme is used whenever no valid preference has been stored.
const DefaultTheme = ThemeMinimalLight

var themes = []ThemeID{ThemeMinimalLight, ThemeDarkProfessional, ThemeColorfulCreative}

// Themes returns every supported theme in display order.
func Themes() []ThemeID {
	out := make([]ThemeID, len(themes))
	copy(out, themes)
	return out
}

// ValidTheme reports whether value is exactly one of the supported identifiers.
func ValidTheme(value string) bool {
	for _, id := range themes {
		if string(id) == value {
			return true
		}
	}
	return false
}

// NormalizeTheme trims value and falls back to DefaultTheme when it is not supported.
func NormalizeTheme(value string) ThemeID {
	trimmed := strings.TrimSpace(value)
	if ValidTheme(trimmed) {
		return ThemeID(trimmed)
	}
	return DefaultTheme
}

func (id ThemeID) String() string {
	return string(id)
}
