package components

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"

	"themeapp/internal/catalog"
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

func sampleProducts(n int) []catalog.Product {
	products := make([]catalog.Product, n)
	for i := range products {
		products[i] = catalog.Product{
			ID:          i + 1,
			Title:       "Product",
			Price:       decimal.RequireFromString("22.3"),
			Description: "Desc",
			Image:       "https://img/x.jpg",
			Rating:      catalog.Rating{Rate: 4.1, Count: 10},
		}
	}
	return products
}

func TestLinkState(t *testing.T) {
	if got := linkState(navigation.About, navigation.About); got != "active" {
		t.Fatalf("expected active state when pages match, got %q", got)
	}
	if got := linkState(navigation.Home, navigation.About); got != "inactive" {
		t.Fatalf("expected inactive state when pages differ, got %q", got)
	}
}

func TestHeaderMarksCurrentPage(t *testing.T) {
	ctx := themedContext(t, models.ThemeMinimalLight)
	out := render(t, ctx, Header(navigation.Contact))

	if !strings.Contains(out, `href="/?page=Contact" data-state="active"`) {
		t.Fatalf("expected contact link to be active: %s", out)
	}
	if !strings.Contains(out, `href="/" data-state="inactive"`) {
		t.Fatalf("expected home link to be inactive: %s", out)
	}
	if !strings.Contains(out, styles.Header(models.ThemeMinimalLight).NavActive) {
		t.Fatalf("expected active nav classes in output: %s", out)
	}
}

func TestThemeSelectorListsOptionsAndHighlightsCurrent(t *testing.T) {
	ctx := themedContext(t, models.ThemeColorfulCreative)
	out := render(t, ctx, ThemeSelector(navigation.About))

	for _, token := range []string{"Minimal Light", "Dark Professional", "Colorful Creative", `name="page" value="About"`, `action="/theme"`} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected %q in selector output: %s", token, out)
		}
	}
	if strings.Count(out, "font-semibold") != 1 {
		t.Fatalf("expected exactly one highlighted option: %s", out)
	}
	if !strings.Contains(out, `value="theme3" title=`) {
		t.Fatalf("expected theme3 option: %s", out)
	}
}

func TestProductGridRendersOneCardPerProduct(t *testing.T) {
	ctx := themedContext(t, models.ThemeDarkProfessional)
	out := render(t, ctx, ProductGrid(catalog.Loaded{Products: sampleProducts(6)}))

	if got := strings.Count(out, `data-component="product-card"`); got != 6 {
		t.Fatalf("expected 6 cards, got %d", got)
	}
	for _, token := range []string{"$22.3", ">4.1<", styles.Card(models.ThemeDarkProfessional).Price} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected %q in grid output: %s", token, out)
		}
	}
}

func TestProductGridEmptyState(t *testing.T) {
	ctx := themedContext(t, models.ThemeMinimalLight)
	out := render(t, ctx, ProductGrid(catalog.Loaded{Products: []catalog.Product{}}))

	if strings.Contains(out, "product-card") {
		t.Fatalf("expected no cards: %s", out)
	}
	if !strings.Contains(out, "No products available at the moment.") {
		t.Fatalf("expected empty state message: %s", out)
	}
}

func TestProductGridLoadingShowsSixSkeletonsAndTriggersFetch(t *testing.T) {
	ctx := themedContext(t, models.ThemeColorfulCreative)
	out := render(t, ctx, ProductGrid(catalog.Loading{}))

	if got := strings.Count(out, `data-component="product-skeleton"`); got != 6 {
		t.Fatalf("expected 6 skeletons, got %d", got)
	}
	if !strings.Contains(out, `hx-get="/products" hx-trigger="load"`) {
		t.Fatalf("expected loading grid to request its content: %s", out)
	}
	if !strings.Contains(out, styles.Home(models.ThemeColorfulCreative).Skeleton) {
		t.Fatalf("expected themed skeleton classes: %s", out)
	}
}

func TestProductGridFailureOffersRetry(t *testing.T) {
	ctx := themedContext(t, models.ThemeMinimalLight)
	out := render(t, ctx, ProductGrid(catalog.Failed{Message: "Failed to fetch products"}))

	for _, token := range []string{"Failed to load products", "Failed to fetch products", `hx-get="/products/retry"`, "Retry"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected %q in error panel: %s", token, out)
		}
	}
	if strings.Contains(out, "product-skeleton") {
		t.Fatalf("failed state must not render skeletons: %s", out)
	}
}

func TestProductGridRetryLoadingCarriesRetryMarker(t *testing.T) {
	ctx := themedContext(t, models.ThemeMinimalLight)
	out := render(t, ctx, ProductGrid(catalog.Loading{Retry: true}))

	if got := strings.Count(out, `data-component="product-skeleton"`); got != 6 {
		t.Fatalf("expected 6 skeletons while retrying, got %d", got)
	}
	if !strings.Contains(out, `hx-get="/products?retry=1" hx-trigger="load"`) {
		t.Fatalf("expected retry grid to request the retry load: %s", out)
	}
}

func TestSuccessBannerSchedulesDismissal(t *testing.T) {
	ctx := themedContext(t, models.ThemeDarkProfessional)
	out := render(t, ctx, SuccessBanner(3*time.Second))

	for _, token := range []string{"Message sent successfully!", `hx-trigger="load delay:3000ms"`, `hx-get="/contact/banner"`, styles.Contact(models.ThemeDarkProfessional).Success} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected %q in banner: %s", token, out)
		}
	}
}

func TestSubmitButtonDisabledUntilReady(t *testing.T) {
	ctx := themedContext(t, models.ThemeMinimalLight)

	if out := render(t, ctx, SubmitButton(false)); !strings.Contains(out, " disabled>") {
		t.Fatalf("expected disabled button: %s", out)
	}
	if out := render(t, ctx, SubmitButton(true)); strings.Contains(out, " disabled>") {
		t.Fatalf("expected enabled button: %s", out)
	}
}

func TestComponentsPanicOutsideProvider(t *testing.T) {
	defer func() {
		if r := recover(); r != theme.ErrNoProvider {
			t.Fatalf("expected ErrNoProvider, got %v", r)
		}
	}()
	_ = ProductCard(catalog.Product{}).Render(context.Background(), new(bytes.Buffer))
}
