package layout

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"themeapp/internal/theme"
	"themeapp/models"
)

func fragment(html string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}

func themed(t *testing.T, id models.ThemeID) context.Context {
	t.Helper()
	store := theme.NewStore(context.Background(), nil)
	if err := store.Set(context.Background(), id); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	return theme.WithStore(context.Background(), store)
}

func TestDocumentRendersProvidedContent(t *testing.T) {
	var buf bytes.Buffer
	err := Document("Home <1>", fragment("<header>nav</header>"), fragment("<section>content</section>")).
		Render(themed(t, models.ThemeDarkProfessional), &buf)
	if err != nil {
		t.Fatalf("render layout: %v", err)
	}
	out := buf.String()
	for _, token := range []string{
		"<title>Home &lt;1&gt;</title>",
		"<header>nav</header>",
		`<main id="page"><section>content</section></main>`,
		`data-theme="theme2"`,
		"font-family: serif",
		`hx-boost="true"`,
	} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected %q in output: %s", token, out)
		}
	}
}

func TestDocumentRequiresThemeProvider(t *testing.T) {
	defer func() {
		r := recover()
		if r != theme.ErrNoProvider {
			t.Fatalf("expected ErrNoProvider panic, got %v", r)
		}
	}()
	_ = Document("x", templ.NopComponent, templ.NopComponent).Render(context.Background(), io.Discard)
}
