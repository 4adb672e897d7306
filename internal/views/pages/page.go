package pages

import (
	"github.com/a-h/templ"

	"themeapp/internal/navigation"
	"themeapp/internal/views/styles"
	"themeapp/models"
)

// Page selects the body for p. Only the selected page is rendered.
func Page(p navigation.Page, contactState ContactState) templ.Component {
	switch p {
	case navigation.About:
		return About()
	case navigation.Contact:
		return Contact(contactState)
	default:
		return Home()
	}
}

// Title is the document title for p.
func Title(p navigation.Page) string {
	if p == navigation.Home {
		return "ThemeApp"
	}
	return string(p) + " · ThemeApp"
}

func fontStyle(id models.ThemeID) string {
	return "font-family: " + styles.FontFamily(id)
}
