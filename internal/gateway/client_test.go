package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"shopkeeper/internal/gateway"
)

type notifierRecorder struct {
	mu       sync.Mutex
	messages []string
	kinds    []string
}

func (n *notifierRecorder) Notify(message, kind string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	n.kinds = append(n.kinds, kind)
}

func (n *notifierRecorder) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

type busyRecorder struct {
	states []bool
}

func (b *busyRecorder) SetLoading(loading bool) { b.states = append(b.states, loading) }

func newTestClient(t *testing.T, handler http.Handler) (*gateway.Client, *notifierRecorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	notifier := &notifierRecorder{}
	client, err := gateway.NewClient(srv.URL, notifier)
	require.NoError(t, err)
	return client, notifier
}

func TestClientCall(t *testing.T) {
	t.Run("SuccessReturnsDataWithoutToast", func(t *testing.T) {
		client, notifier := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			require.Equal(t, "/admin/action", r.URL.Path)
			require.Equal(t, "rsam_get_products", r.PostFormValue("action"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":true,"data":{"message":"ok"}}`))
		}))

		data, err := client.Call(context.Background(), "rsam_get_products", url.Values{}, nil)
		require.NoError(t, err)
		require.JSONEq(t, `{"message":"ok"}`, string(data))
		require.Equal(t, 0, notifier.count())
	})

	t.Run("FailureEnvelopeRaisesErrorToast", func(t *testing.T) {
		client, notifier := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":false,"data":{"message":"product name is required"}}`))
		}))

		_, err := client.Call(context.Background(), "rsam_save_product", url.Values{}, nil)
		require.EqualError(t, err, "product name is required")
		require.Equal(t, 1, notifier.count())
		require.Equal(t, "error", notifier.kinds[0])
		require.Equal(t, "product name is required", notifier.messages[0])
	})

	t.Run("FailureWithoutMessageUsesGenericString", func(t *testing.T) {
		client, notifier := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":false,"data":null}`))
		}))

		_, err := client.Call(context.Background(), "rsam_get_products", url.Values{}, nil)
		require.EqualError(t, err, "An error occurred.")
		require.Equal(t, 1, notifier.count())
	})

	t.Run("ForbiddenStatusCarriesEnvelopeMessage", func(t *testing.T) {
		client, notifier := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"success":false,"data":{"message":"Invalid nonce."}}`))
		}))

		_, err := client.Call(context.Background(), "rsam_get_products", url.Values{}, nil)
		require.EqualError(t, err, "Invalid nonce.")
		require.Equal(t, 1, notifier.count())
	})

	t.Run("TransportFailureRaisesGenericToast", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		notifier := &notifierRecorder{}
		client, err := gateway.NewClient(srv.URL, notifier)
		require.NoError(t, err)

		_, err = client.Call(context.Background(), "rsam_get_products", url.Values{}, nil)
		require.EqualError(t, err, "An error occurred.")
		require.Equal(t, 1, notifier.count())
	})
}

func TestClientBusyGuard(t *testing.T) {
	release := make(chan struct{})
	arrived := make(chan struct{})
	var requestCount int
	var mu sync.Mutex

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requestCount++
		mu.Unlock()
		close(arrived)
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{}}`))
	}))

	done := make(chan error, 1)
	go func() {
		_, err := client.Call(context.Background(), "rsam_save_product", url.Values{}, &busyRecorder{})
		done <- err
	}()
	<-arrived

	// The second gated call must be rejected locally, without a request.
	busy := &busyRecorder{}
	_, err := client.Call(context.Background(), "rsam_save_supplier", url.Values{}, busy)
	require.EqualError(t, err, "Loading...")
	require.Empty(t, busy.states)

	close(release)
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 1, requestCount)
}

func TestClientBootstrap(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/session", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"ajax_url": "/admin/action",
			"nonce": "abc123",
			"caps": ["manage_records", "delete_records"],
			"strings": {"loading": "Loading...", "errorOccurred": "An error occurred."}
		}`))
	}))

	require.NoError(t, client.Bootstrap(context.Background()))
	require.Equal(t, []string{"manage_records", "delete_records"}, client.Caps())
	require.Equal(t, "Loading...", client.Strings().Loading)
}
