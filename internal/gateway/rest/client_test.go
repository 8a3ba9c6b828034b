package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gunvolt24/cartsync/internal/cache/memory"
	"github.com/Gunvolt24/cartsync/internal/domain"
	"github.com/Gunvolt24/cartsync/internal/gateway/rest"
	"github.com/Gunvolt24/cartsync/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

const cartBody = `{"id":7,"cartItems":[{"id":70,"cartId":7,"productId":1,"quantity":2},{"id":71,"cartId":7,"productId":2,"quantity":1}]}`

func newClient(t *testing.T, srv *httptest.Server, opts ...rest.Option) *rest.Client {
	t.Helper()
	c, err := rest.NewClient(rest.Config{
		BaseURL: srv.URL + "/api",
		UserID:  "u-1",
		Timeout: time.Second,
		Breaker: rest.BreakerConfig{MaxFailures: 2, OpenTimeout: time.Minute},
	}, validate.NewSnapshotValidator(), noopLogger{}, opts...)
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	_, err := rest.NewClient(rest.Config{BaseURL: "not a url", UserID: "u"}, nil, noopLogger{})
	assert.Error(t, err)

	_, err = rest.NewClient(rest.Config{BaseURL: "http://localhost"}, nil, noopLogger{})
	assert.Error(t, err)
}

func TestFetch_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/cart", r.URL.Path)
		assert.Equal(t, "u-1", r.URL.Query().Get("userId"))
		_, _ = io.WriteString(w, cartBody)
	}))
	defer srv.Close()

	snap, err := newClient(t, srv).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, snap.ID)
	require.Len(t, snap.Lines, 2)
	q, ok := snap.Quantity(1)
	assert.True(t, ok)
	assert.Equal(t, 2, q)
}

func TestFetch_EmptyItemsIsEmptyCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":3,"cartItems":[]}`)
	}))
	defer srv.Close()

	snap, err := newClient(t, srv).Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())
	assert.NotNil(t, snap.Lines)
}

func TestWrite_SendsAbsoluteQuantity(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/cart", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, cartBody)
	}))
	defer srv.Close()

	snap, err := newClient(t, srv).Write(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"userId": "u-1", "productId": float64(2), "quantity": float64(1)}, got)
	assert.Equal(t, 2, snap.ItemCount())
}

func TestErrors_Taxonomy(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		kind    error
		status  int
	}{
		{
			name: "rejected",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "quantity out of range", http.StatusUnprocessableEntity)
			},
			kind:   rest.ErrRejected,
			status: http.StatusUnprocessableEntity,
		},
		{
			name:    "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, `{"id":`) },
			kind:    rest.ErrDecode,
		},
		{
			name: "invalid snapshot",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"id":1,"cartItems":[{"id":1,"cartId":1,"productId":1,"quantity":-4}]}`)
			},
			kind: rest.ErrDecode,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := newClient(t, srv).Write(context.Background(), 1, 1)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var apiErr *rest.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "write", apiErr.Op)
			assert.Equal(t, tt.status, apiErr.Status)
		})
	}
}

func TestRejected_CarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such product", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newClient(t, srv).Write(context.Background(), 5, 1)
	var apiErr *rest.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "no such product", apiErr.Body)
	assert.Contains(t, err.Error(), "status 404")
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := newClient(t, srv)
	srv.Close()

	_, err := c.Fetch(context.Background())
	assert.ErrorIs(t, err, rest.ErrTransport)
	assert.True(t, rest.IsServerSide(err))
}

func TestBreaker_OpensOnServerErrorsOnly(t *testing.T) {
	var hits atomic.Int32
	status := atomic.Int32{}
	status.Store(http.StatusBadRequest)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()
	c := newClient(t, srv)
	ctx := context.Background()

	// client errors never trip it
	for i := 0; i < 3; i++ {
		_, err := c.Write(ctx, 1, 1)
		assert.ErrorIs(t, err, rest.ErrRejected)
	}
	assert.EqualValues(t, 3, hits.Load())

	status.Store(http.StatusBadGateway)
	for i := 0; i < 2; i++ {
		_, err := c.Write(ctx, 1, 1)
		assert.ErrorIs(t, err, rest.ErrRejected)
	}
	assert.EqualValues(t, 5, hits.Load())

	_, err := c.Write(ctx, 1, 1)
	assert.ErrorIs(t, err, rest.ErrTransport, "open breaker short-circuits")
	assert.EqualValues(t, 5, hits.Load())
}

func TestFetch_ConcurrentCallsShareOneRequest(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = io.WriteString(w, cartBody)
	}))
	defer srv.Close()
	c := newClient(t, srv)

	var wg sync.WaitGroup
	snaps := make([]*domain.CartSnapshot, 5)
	for i := range snaps {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := c.Fetch(context.Background())
			assert.NoError(t, err)
			snaps[i] = s
		}(i)
	}
	require.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, hits.Load())
	assert.NotSame(t, snaps[0], snaps[1], "each caller gets its own copy")
	assert.Equal(t, snaps[0], snaps[1])
}

func TestFetch_CancelledWaiterDoesNotFailOthers(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = io.WriteString(w, cartBody)
	}))
	defer srv.Close()
	c := newClient(t, srv)

	short, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Fetch(short)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)

	type result struct {
		snap *domain.CartSnapshot
		err  error
	}
	second := make(chan result, 1)
	go func() {
		s, err := c.Fetch(context.Background())
		second <- result{s, err}
	}()

	assert.ErrorIs(t, <-firstErr, context.DeadlineExceeded)
	close(release)

	got := <-second
	require.NoError(t, got.err)
	require.NotNil(t, got.snap)
	assert.EqualValues(t, 1, hits.Load(), "second caller joined the shared request")
}

func TestShoppingResults_Query(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shopping-results", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "7", q.Get("cartId"))
		assert.Equal(t, "1,4", q.Get("storeIds"))
		assert.Equal(t, "2.5", q.Get("radius"))
		assert.Equal(t, "45.5", q.Get("lat"))
		assert.Equal(t, "-73.6", q.Get("long"))
		_, _ = io.WriteString(w, `[{"storeId":1,"storeName":"A","storeLocation":"X","products":[{"productName":"milk","price":2.5,"quantity":2}],"total":5}]`)
	}))
	defer srv.Close()

	res, err := newClient(t, srv).ShoppingResults(context.Background(), 7, domain.ShoppingFilter{
		StoreIDs: []int{1, 4}, Radius: 2.5, Latitude: 45.5, Longitude: -73.6,
	})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "A", res[0].StoreName)
	assert.InDelta(t, 5.0, res[0].Products[0].Total(), 1e-9)
}

func TestShoppingResults_NoFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "7", q.Get("cartId"))
		for _, k := range []string{"storeIds", "radius", "lat", "long"} {
			assert.False(t, q.Has(k), k)
		}
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	res, err := newClient(t, srv).ShoppingResults(context.Background(), 7, domain.ShoppingFilter{})
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestEnrichment_UsesCacheAndToleratesFailures(t *testing.T) {
	var productHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/cart":
			_, _ = io.WriteString(w, cartBody)
		case "/api/product":
			productHits.Add(1)
			if r.URL.Query().Get("id") == "2" {
				http.Error(w, "gone", http.StatusNotFound)
				return
			}
			_, _ = io.WriteString(w, `{"productId":1,"productName":"Milk","description":"2L","price":3.49,"stock":9,"categoryId":4,"imagePath":"milk.png"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cache := memory.NewProductCache(10, time.Minute)
	c := newClient(t, srv, rest.WithProductEnrichment(cache))
	ctx := context.Background()

	snap, err := c.Fetch(ctx)
	require.NoError(t, err)
	l1, _ := snap.Line(1)
	l2, _ := snap.Line(2)
	require.NotNil(t, l1.Product)
	assert.Equal(t, "Milk", l1.Product.Name)
	assert.Nil(t, l2.Product, "failed lookup leaves the line bare")
	assert.EqualValues(t, 2, productHits.Load())

	_, err = c.Fetch(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, productHits.Load(), "only the uncached product is asked again")
}

func TestProduct_MismatchedIDIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"productId":99,"productName":"x"}`)
	}))
	defer srv.Close()

	_, err := newClient(t, srv).Product(context.Background(), 1)
	assert.ErrorIs(t, err, rest.ErrDecode)
}

func TestIsServerSide(t *testing.T) {
	assert.False(t, rest.IsServerSide(nil))
	assert.True(t, rest.IsServerSide(errors.New("plain")))
	assert.False(t, rest.IsServerSide(&rest.Error{Kind: rest.ErrDecode}))
	assert.False(t, rest.IsServerSide(&rest.Error{Kind: rest.ErrRejected, Status: 409}))
	assert.True(t, rest.IsServerSide(&rest.Error{Kind: rest.ErrRejected, Status: 503}))
}
