package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const sixProducts = `[
{"id":1,"title":"Backpack","price":109.95,"description":"Fits a laptop","category":"men's clothing","image":"https://img/1.jpg","rating":{"rate":3.9,"count":120}},
{"id":2,"title":"T-Shirt","price":22.3,"description":"Slim fit","category":"men's clothing","image":"https://img/2.jpg","rating":{"rate":4.1,"count":259}},
{"id":3,"title":"Jacket","price":55.99,"description":"Warm","category":"men's clothing","image":"https://img/3.jpg","rating":{"rate":4.7,"count":500}},
{"id":4,"title":"Casual Slim","price":15.99,"description":"Cotton","category":"men's clothing","image":"https://img/4.jpg","rating":{"rate":2.1,"count":430}},
{"id":5,"title":"Bracelet","price":695,"description":"Silver","category":"jewelery","image":"https://img/5.jpg","rating":{"rate":4.6,"count":400}},
{"id":6,"title":"Ring","price":168,"description":"Gold","category":"jewelery","image":"https://img/6.jpg","rating":{"rate":3.9,"count":70}}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client, &calls
}

func TestFetchProductsRequestsConfiguredLimit(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		require.Equal(t, "6", r.URL.Query().Get("limit"))
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sixProducts)
	})

	products, err := client.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 6)
	require.Equal(t, int32(1), atomic.LoadInt32(calls))

	require.Equal(t, "Backpack", products[0].Title)
	require.Equal(t, "Ring", products[5].Title)
	require.True(t, products[0].Price.Equal(decimal.RequireFromString("109.95")))
	require.Equal(t, "$109.95", "$"+products[0].Price.StringFixed(2))
	require.InDelta(t, 3.9, products[0].Rating.Rate, 0.0001)
	require.Equal(t, 120, products[0].Rating.Count)
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{})
	require.NoError(t, err)
	require.Equal(t, defaultBaseURL, client.baseURL)
	require.Equal(t, 6, client.Limit())
}

func TestFetchProductsNonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.FetchProducts(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	require.Equal(t, "Failed to fetch products", Message(err))
}

func TestFetchProductsDecodeError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "{not json")
	})

	_, err := client.FetchProducts(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnavailable)
	require.Contains(t, Message(err), "decode response")
}

func TestMessageFallback(t *testing.T) {
	require.Equal(t, "", Message(nil))
	require.Equal(t, "Failed to load products", Message(errors.New("  ")))
	require.Equal(t, "network down", Message(errors.New("network down")))
}

func TestNextAcceptsOnlyDocumentedTransitions(t *testing.T) {
	products := []Product{{ID: 1, Title: "One"}}

	cases := []struct {
		name  string
		state State
		event Event
		want  State
	}{
		{"mount", Idle{}, Mounted{}, Loading{}},
		{"success", Loading{}, Succeeded{Products: products}, Loaded{Products: products}},
		{"failure", Loading{}, Errored{Err: ErrUnavailable}, Failed{Message: "Failed to fetch products"}},
		{"retry", Failed{Message: "x"}, Retried{}, Loading{Retry: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Next(tc.state, tc.event)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	rejected := []struct {
		name  string
		state State
		event Event
	}{
		{"idle retry", Idle{}, Retried{}},
		{"loading mount", Loading{}, Mounted{}},
		{"loaded retry", Loaded{}, Retried{}},
		{"loaded mount", Loaded{}, Mounted{}},
		{"failed success", Failed{}, Succeeded{}},
	}
	for _, tc := range rejected {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Next(tc.state, tc.event)
			require.ErrorIs(t, err, ErrInvalidTransition)
			require.Equal(t, tc.state, got)
		})
	}
}

func TestLoadedEmpty(t *testing.T) {
	next, err := Next(Loading{}, Succeeded{})
	require.NoError(t, err)
	loaded, ok := next.(Loaded)
	require.True(t, ok)
	require.True(t, loaded.Empty())
	require.NotNil(t, loaded.Products)
}

func TestStart(t *testing.T) {
	require.Equal(t, Loading{}, Start(false))
	require.Equal(t, Loading{Retry: true}, Start(true))
}

func TestFetcherLoadSuccessAndEmpty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "[]")
	})

	state, ok, err := NewFetcher(client).Load(context.Background(), Start(false))
	require.NoError(t, err)
	require.True(t, ok)
	loaded, isLoaded := state.(Loaded)
	require.True(t, isLoaded)
	require.True(t, loaded.Empty())
}

func TestFetcherRetryIssuesExactlyOneRequest(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, sixProducts)
	})
	fetcher := NewFetcher(client)

	state, ok, err := fetcher.Load(context.Background(), Start(false))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Failed{Message: "Failed to fetch products"}, state)
	require.Equal(t, int32(1), atomic.LoadInt32(calls))

	fail.Store(false)
	retrying, err := Next(state, Retried{})
	require.NoError(t, err)

	state, ok, err = fetcher.Load(context.Background(), retrying)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, state.(Loaded).Products, 6)
	require.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestFetcherLoadRequiresLoadingState(t *testing.T) {
	_, _, err := NewFetcher(stubSource{}).Load(context.Background(), Idle{})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

type stubSource struct {
	products []Product
	err      error
	onFetch  func()
}

func (s stubSource) FetchProducts(context.Context) ([]Product, error) {
	if s.onFetch != nil {
		s.onFetch()
	}
	return s.products, s.err
}

func TestFetcherDiscardsResultAfterTeardown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	source := stubSource{
		products: []Product{{ID: 1}},
		onFetch:  cancel,
	}

	state, ok, err := NewFetcher(source).Load(ctx, Loading{})
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, Loading{}, state)
}
