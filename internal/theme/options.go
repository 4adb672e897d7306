package theme

import "themeapp/models"

// Definition describes a selectable theme.
type Definition struct {
	ID          models.ThemeID
	Label       string
	Description string
}

var registry = map[models.ThemeID]Definition{
	models.ThemeMinimalLight: {
		ID:          models.ThemeMinimalLight,
		Label:       "Minimal Light",
		Description: "Clean white surfaces with blue accents.",
	},
	models.ThemeDarkProfessional: {
		ID:          models.ThemeDarkProfessional,
		Label:       "Dark Professional",
		Description: "Charcoal panels, serif headings and green highlights.",
	},
	models.ThemeColorfulCreative: {
		ID:          models.ThemeColorfulCreative,
		Label:       "Colorful Creative",
		Description: "Pink to purple gradients with playful type.",
	},
}

// ByID returns the definition for id, falling back to the default theme.
func ByID(id models.ThemeID) Definition {
	if def, ok := registry[id]; ok {
		return def
	}
	return registry[models.DefaultTheme]
}

// Options lists the definitions in selector order.
func Options() []Definition {
	ids := models.Themes()
	options := make([]Definition, 0, len(ids))
	for _, id := range ids {
		options = append(options, registry[id])
	}
	return options
}
