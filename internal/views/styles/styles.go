// Package styles holds the static per-theme class tables consumed by the view
// components. Nothing here computes styling: every visual variant is listed
// for every theme and Validate rejects a table with a gap.
package styles

import (
	"fmt"
	"reflect"

	"themeapp/models"
)

// HeaderStyle styles the fixed site header and its navigation.
type HeaderStyle struct {
	Bar          string
	Logo         string
	LogoFont     string
	NavActive    string
	NavInactive  string
	MobileButton string
	MobileBorder string
}

// SelectorStyle styles the theme selector dropdown.
type SelectorStyle struct {
	Button   string
	Dropdown string
	Item     string
}

// HomeStyle styles the landing page and the product section states.
type HomeStyle struct {
	Container    string
	Title        string
	Subtitle     string
	Button       string
	SectionTitle string
	SkeletonCard string
	Skeleton     string
	Error        string
}

// CardStyle styles a single product card.
type CardStyle struct {
	Card        string
	Title       string
	TitleSize   string
	Description string
	Price       string
	Star        string
	Rating      string
}

// AboutStyle styles the about page.
type AboutStyle struct {
	Container string
	Title     string
	Text      string
	Card      string
	Chip      string
}

// ContactStyle styles the contact page and its form.
type ContactStyle struct {
	Container string
	Title     string
	Text      string
	IconBadge string
	Form      string
	Input     string
	Label     string
	Button    string
	Success   string
}

var fontFamilies = map[models.ThemeID]string{
	models.ThemeMinimalLight:     "sans-serif",
	models.ThemeDarkProfessional: "serif",
	models.ThemeColorfulCreative: "cursive",
}

var headers = map[models.ThemeID]HeaderStyle{
	models.ThemeMinimalLight: {
		Bar:          "bg-white shadow-sm border-b border-gray-200",
		Logo:         "text-xl sm:text-2xl font-bold text-gray-900",
		LogoFont:     "inherit",
		NavActive:    "bg-blue-100 text-blue-700",
		NavInactive:  "text-gray-700 hover:text-blue-700 hover:bg-blue-50",
		MobileButton: "text-gray-700 hover:bg-gray-100",
		MobileBorder: "border-gray-200",
	},
	models.ThemeDarkProfessional: {
		Bar:          "bg-gray-900 shadow-lg border-b border-gray-700",
		Logo:         "text-xl sm:text-2xl font-bold text-white font-serif",
		LogoFont:     "inherit",
		NavActive:    "bg-gray-700 text-white",
		NavInactive:  "text-gray-300 hover:text-white hover:bg-gray-700",
		MobileButton: "text-white hover:bg-gray-700",
		MobileBorder: "border-gray-700",
	},
	models.ThemeColorfulCreative: {
		Bar:          "bg-gradient-to-r from-purple-400 via-pink-500 to-red-500 shadow-lg",
		Logo:         "text-xl sm:text-2xl font-bold text-white",
		LogoFont:     "cursive",
		NavActive:    "bg-white bg-opacity-15 text-black border border-white border-opacity-25 shadow-sm",
		NavInactive:  "text-white hover:bg-white hover:bg-opacity-10 hover:border hover:border-white hover:border-opacity-20",
		MobileButton: "text-white hover:bg-white hover:bg-opacity-10",
		MobileBorder: "border-white border-opacity-20",
	},
}

var selectors = map[models.ThemeID]SelectorStyle{
	models.ThemeMinimalLight: {
		Button:   "bg-gray-100 text-gray-800 hover:bg-gray-200 border border-gray-300",
		Dropdown: "bg-white border border-gray-200 shadow-lg",
		Item:     "hover:bg-gray-50 text-gray-800",
	},
	models.ThemeDarkProfessional: {
		Button:   "bg-gray-700 text-white hover:bg-gray-600 border border-gray-600",
		Dropdown: "bg-gray-800 border border-gray-600 shadow-lg",
		Item:     "hover:bg-gray-700 text-white",
	},
	models.ThemeColorfulCreative: {
		Button:   "bg-pink-100 text-pink-800 hover:bg-pink-200 border-2 border-pink-300",
		Dropdown: "bg-white border-2 border-pink-300 shadow-xl",
		Item:     "hover:bg-pink-50 text-pink-800",
	},
}

var homes = map[models.ThemeID]HomeStyle{
	models.ThemeMinimalLight: {
		Container:    "bg-gray-50 min-h-screen",
		Title:        "text-3xl sm:text-4xl md:text-5xl font-bold text-gray-900 mb-4",
		Subtitle:     "text-gray-600",
		Button:       "bg-blue-600 text-white hover:bg-blue-700 px-6 sm:px-8 py-3 rounded-lg font-semibold transition-all duration-200 hover:scale-105",
		SectionTitle: "text-gray-900",
		SkeletonCard: "bg-white",
		Skeleton:     "bg-gray-200",
		Error:        "bg-red-50 border border-red-200 text-red-700",
	},
	models.ThemeDarkProfessional: {
		Container:    "bg-gray-900 min-h-screen",
		Title:        "text-3xl sm:text-4xl md:text-5xl font-bold text-white mb-4 font-serif",
		Subtitle:     "text-gray-300",
		Button:       "bg-green-600 text-white hover:bg-green-700 px-6 sm:px-8 py-3 rounded-lg font-semibold transition-all duration-200 hover:scale-105",
		SectionTitle: "text-white font-serif",
		SkeletonCard: "bg-gray-800",
		Skeleton:     "bg-gray-700",
		Error:        "bg-red-900 bg-opacity-50 border border-red-700 text-red-300",
	},
	models.ThemeColorfulCreative: {
		Container:    "bg-gradient-to-br from-purple-100 via-pink-50 to-yellow-100 min-h-screen",
		Title:        "text-3xl sm:text-4xl md:text-5xl font-bold text-purple-800 mb-4",
		Subtitle:     "text-purple-600",
		Button:       "bg-gradient-to-r from-pink-500 to-purple-600 text-white hover:from-pink-600 hover:to-purple-700 px-6 sm:px-8 py-3 rounded-lg font-semibold transition-all duration-200 hover:scale-105",
		SectionTitle: "text-purple-800",
		SkeletonCard: "bg-white",
		Skeleton:     "bg-pink-200",
		Error:        "bg-red-50 border-2 border-red-300 text-red-700",
	},
}

var cards = map[models.ThemeID]CardStyle{
	models.ThemeMinimalLight: {
		Card:        "bg-white border border-gray-200 hover:shadow-lg hover:border-gray-300",
		Title:       "text-gray-900",
		TitleSize:   "inherit",
		Description: "text-gray-600",
		Price:       "text-blue-600",
		Star:        "text-yellow-400",
		Rating:      "text-gray-600",
	},
	models.ThemeDarkProfessional: {
		Card:        "bg-gray-800 border border-gray-700 hover:bg-gray-750 hover:border-gray-600",
		Title:       "text-white font-serif",
		TitleSize:   "inherit",
		Description: "text-gray-300",
		Price:       "text-green-400",
		Star:        "text-yellow-400",
		Rating:      "text-gray-300",
	},
	models.ThemeColorfulCreative: {
		Card:        "bg-gradient-to-br from-pink-50 to-purple-50 border-2 border-pink-200 hover:border-pink-300 hover:shadow-xl",
		Title:       "text-purple-800",
		TitleSize:   "1.1rem",
		Description: "text-purple-600",
		Price:       "text-pink-600",
		Star:        "text-orange-400",
		Rating:      "text-purple-600",
	},
}

var abouts = map[models.ThemeID]AboutStyle{
	models.ThemeMinimalLight: {
		Container: "bg-gray-50 min-h-screen",
		Title:     "text-gray-900",
		Text:      "text-gray-600",
		Card:      "bg-white border border-gray-200 shadow-sm",
		Chip:      "bg-blue-50 hover:bg-blue-100",
	},
	models.ThemeDarkProfessional: {
		Container: "bg-gray-900 min-h-screen",
		Title:     "text-white font-serif",
		Text:      "text-gray-300",
		Card:      "bg-gray-800 border border-gray-700 shadow-lg",
		Chip:      "bg-gray-700 hover:bg-gray-600",
	},
	models.ThemeColorfulCreative: {
		Container: "bg-gradient-to-br from-purple-100 via-pink-50 to-yellow-100 min-h-screen",
		Title:     "text-purple-800",
		Text:      "text-purple-600",
		Card:      "bg-gradient-to-br from-pink-50 to-purple-50 border-2 border-pink-200 shadow-xl",
		Chip:      "bg-pink-100 hover:bg-pink-200",
	},
}

var contacts = map[models.ThemeID]ContactStyle{
	models.ThemeMinimalLight: {
		Container: "bg-gray-50 min-h-screen",
		Title:     "text-gray-900",
		Text:      "text-gray-600",
		IconBadge: "bg-blue-100 text-blue-600",
		Form:      "bg-white border border-gray-200 rounded-xl shadow-sm",
		Input:     "w-full px-3 sm:px-4 py-2 sm:py-3 border border-gray-300 rounded-lg focus:ring-2 focus:ring-blue-500 focus:border-transparent transition-all duration-200 text-sm sm:text-base",
		Label:     "text-gray-700",
		Button:    "bg-blue-600 text-white hover:bg-blue-700 disabled:bg-blue-300",
		Success:   "bg-green-50 border border-green-200 text-green-700",
	},
	models.ThemeDarkProfessional: {
		Container: "bg-gray-900 min-h-screen",
		Title:     "text-white font-serif",
		Text:      "text-gray-300",
		IconBadge: "bg-gray-700 text-green-400",
		Form:      "bg-gray-800 border border-gray-700 rounded-xl shadow-lg",
		Input:     "w-full px-3 sm:px-4 py-2 sm:py-3 bg-gray-700 border border-gray-600 text-white rounded-lg focus:ring-2 focus:ring-green-500 focus:border-transparent transition-all duration-200 text-sm sm:text-base placeholder-gray-400",
		Label:     "text-gray-300",
		Button:    "bg-green-600 text-white hover:bg-green-700 disabled:bg-green-300",
		Success:   "bg-green-900 bg-opacity-50 border border-green-700 text-green-300",
	},
	models.ThemeColorfulCreative: {
		Container: "bg-gradient-to-br from-purple-100 via-pink-50 to-yellow-100 min-h-screen",
		Title:     "text-purple-800",
		Text:      "text-purple-600",
		IconBadge: "bg-pink-100 text-pink-600",
		Form:      "bg-gradient-to-br from-pink-50 to-purple-50 border-2 border-pink-200 rounded-xl shadow-xl",
		Input:     "w-full px-3 sm:px-4 py-2 sm:py-3 border-2 border-pink-200 rounded-lg focus:ring-2 focus:ring-pink-500 focus:border-pink-300 transition-all duration-200 text-sm sm:text-base",
		Label:     "text-purple-700",
		Button:    "bg-gradient-to-r from-pink-500 to-purple-600 text-white hover:from-pink-600 hover:to-purple-700 disabled:from-pink-300 disabled:to-purple-300",
		Success:   "bg-green-50 border-2 border-green-300 text-green-700",
	},
}

// FontFamily returns the inline font-family used by headings.
func FontFamily(id models.ThemeID) string { return fontFamilies[id] }

// Header returns the header style for id.
func Header(id models.ThemeID) HeaderStyle { return headers[id] }

// Selector returns the theme selector style for id.
func Selector(id models.ThemeID) SelectorStyle { return selectors[id] }

// Home returns the home page style for id.
func Home(id models.ThemeID) HomeStyle { return homes[id] }

// Card returns the product card style for id.
func Card(id models.ThemeID) CardStyle { return cards[id] }

// About returns the about page style for id.
func About(id models.ThemeID) AboutStyle { return abouts[id] }

// Contact returns the contact page style for id.
func Contact(id models.ThemeID) ContactStyle { return contacts[id] }

// Validate reports the first table that lacks a theme or leaves a field empty.
func Validate() error {
	tables := []struct {
		name  string
		table any
	}{
		{"font", fontFamilies},
		{"header", headers},
		{"selector", selectors},
		{"home", homes},
		{"card", cards},
		{"about", abouts},
		{"contact", contacts},
	}
	for _, t := range tables {
		if err := validateTable(t.name, reflect.ValueOf(t.table)); err != nil {
			return err
		}
	}
	return nil
}

func validateTable(name string, table reflect.Value) error {
	if table.Len() != len(models.Themes()) {
		return fmt.Errorf("styles: %s table has %d entries, want %d", name, table.Len(), len(models.Themes()))
	}
	for _, id := range models.Themes() {
		entry := table.MapIndex(reflect.ValueOf(id))
		if !entry.IsValid() {
			return fmt.Errorf("styles: %s table is missing %s", name, id)
		}
		if entry.Kind() == reflect.String {
			if entry.String() == "" {
				return fmt.Errorf("styles: %s.%s is empty", name, id)
			}
			continue
		}
		for i := 0; i < entry.NumField(); i++ {
			if entry.Field(i).String() == "" {
				return fmt.Errorf("styles: %s.%s.%s is empty", name, id, entry.Type().Field(i).Name)
			}
		}
	}
	return nil
}
