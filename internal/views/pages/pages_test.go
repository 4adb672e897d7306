package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"themeapp/internal/contact"
	"themeapp/internal/navigation"
	"themeapp/internal/theme"
	"themeapp/internal/views/styles"
	"themeapp/models"
)

func themedContext(t *testing.T, id models.ThemeID) context.Context {
	t.Helper()
	store := theme.NewStore(context.Background(), nil)
	if err := store.Set(context.Background(), id); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	return theme.WithStore(context.Background(), store)
}

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestPageRendersOnlySelectedPage(t *testing.T) {
	ctx := themedContext(t, models.ThemeMinimalLight)
	cases := map[string]navigation.Page{
		"About":   navigation.About,
		"Contact": navigation.Contact,
		"Home":    navigation.Home,
		"Missing": navigation.Home,
	}
	for name, want := range cases {
		out := render(t, ctx, Page(navigation.Resolve(name), ContactState{}))
		if !strings.Contains(out, `data-page="`+string(want)+`"`) {
			t.Fatalf("%s: expected %s page: %s", name, want, out)
		}
		if strings.Count(out, "data-page=") != 1 {
			t.Fatalf("%s: expected exactly one page body: %s", name, out)
		}
	}
}

func TestHomeStartsProductFetch(t *testing.T) {
	ctx := themedContext(t, models.ThemeDarkProfessional)
	out := render(t, ctx, Home())

	for _, token := range []string{"Welcome to ThemeApp", "Featured Products", `data-state="loading"`, "font-family: serif"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected %q in home page: %s", token, out)
		}
	}
}

func TestAboutListsFeatures(t *testing.T) {
	ctx := themedContext(t, models.ThemeColorfulCreative)
	out := render(t, ctx, About())

	for _, token := range []string{"About ThemeApp", "Key Features", "Persistent Preferences", "Technology Stack", styles.About(models.ThemeColorfulCreative).Chip} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected %q in about page: %s", token, out)
		}
	}
}

func TestContactFormKeepsValuesUntilSent(t *testing.T) {
	ctx := themedContext(t, models.ThemeMinimalLight)
	out := render(t, ctx, ContactForm(ContactState{Form: contact.Form{Name: "Ann <x>"}, Notice: "All fields are required"}))

	if !strings.Contains(out, `value="Ann &lt;x&gt;"`) {
		t.Fatalf("expected escaped name value: %s", out)
	}
	if !strings.Contains(out, "All fields are required") {
		t.Fatalf("expected notice: %s", out)
	}
	if strings.Contains(out, "Message sent successfully!") {
		t.Fatalf("unexpected banner: %s", out)
	}
	if !strings.Contains(out, " disabled>") {
		t.Fatalf("expected incomplete form to disable submit: %s", out)
	}
}

func TestContactSentWithDarkThemeClearsFieldsAndShowsThemedBanner(t *testing.T) {
	ctx := themedContext(t, models.ThemeDarkProfessional)
	submitter := contact.NewSubmitter(contact.Config{Delay: time.Millisecond})

	result, err := submitter.Submit(ctx, "visitor", contact.Form{Name: "Ann", Email: "a@b.com", Message: "Hi"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	out := render(t, ctx, Contact(ContactState{Form: result.Form, Sent: result.Sent, DismissAfter: result.DismissAfter}))

	if !strings.Contains(out, styles.Contact(models.ThemeDarkProfessional).Success) {
		t.Fatalf("expected dark success banner classes: %s", out)
	}
	for _, token := range []string{`name="name" value=""`, `name="email" value=""`, "></textarea>", "Message sent successfully!"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected %q in sent contact page: %s", token, out)
		}
	}
	if strings.Contains(out, "Ann") {
		t.Fatalf("expected fields to be cleared: %s", out)
	}
}

func TestTitle(t *testing.T) {
	if got := Title(navigation.Home); got != "ThemeApp" {
		t.Fatalf("unexpected home title %q", got)
	}
	if got := Title(navigation.About); got != "About · ThemeApp" {
		t.Fatalf("unexpected about title %q", got)
	}
}
