package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ltonetwork/lto/testing/fake"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestTransport_Do(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/ping", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Accept"))

		if r.Method == http.MethodPost {
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))

			data, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			w.Write(data)
			return
		}

		w.Write([]byte(`pong`))
	}))
	defer srv.Close()

	transport := NewTransport("test", srv.URL+"/api/", nil)

	before := testutil.ToFloat64(promRequests.WithLabelValues("test", "200"))

	data, err := transport.Do(context.Background(), http.MethodGet, "/ping", nil)
	require.NoError(t, err)
	require.Equal(t, "pong", string(data))

	data, err = transport.Do(context.Background(), http.MethodPost, "/ping", []byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, "{}", string(data))

	require.Equal(t, before+2, testutil.ToFloat64(promRequests.WithLabelValues("test", "200")))
}

func TestTransport_Do_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/json":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":112,"message":"invalid signature"}`))
		case "/text":
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("unavailable\n"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	transport := NewTransport("test", srv.URL, srv.Client())

	_, err := transport.Do(context.Background(), http.MethodGet, "/json", nil)
	require.EqualError(t, err, "server responded with status 400: invalid signature")

	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	require.Equal(t, http.StatusBadRequest, respErr.Status)

	_, err = transport.Do(context.Background(), http.MethodGet, "/text", nil)
	require.EqualError(t, err, "server responded with status 503: unavailable")

	_, err = transport.Do(context.Background(), http.MethodGet, "/missing", nil)
	require.EqualError(t, err, "server responded with status 404")
}

func TestTransport_Do_Failures(t *testing.T) {
	transport := NewTransport("test", "http://127.0.0.1:0", nil)

	_, err := transport.Do(context.Background(), "bad method", "/", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to create request: ")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = transport.Do(ctx, http.MethodGet, "/", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "request failed: ")
}

func TestTransport_WithLogger(t *testing.T) {
	logger, check := fake.CheckLogField("client", `"test"`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	transport := NewTransport("test", srv.URL, nil).WithLogger(logger)

	_, err := transport.Do(context.Background(), http.MethodGet, "/", nil)
	require.NoError(t, err)

	check(t)
}
