package node

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ltonetwork/lto/client"
	"github.com/ltonetwork/lto/core/txn"
	"github.com/ltonetwork/lto/testing/fake"
	"github.com/stretchr/testify/require"
)

func TestClient_Broadcast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transactions/broadcast", r.URL.Path)

		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		w.Write(data)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithHTTPClient(srv.Client()))

	tx := makeTx()

	accepted, err := c.Broadcast(context.Background(), tx)
	require.NoError(t, err)
	require.Equal(t, tx, accepted)
	require.Equal(t, txn.TypeAlias, accepted.Type)
}

func TestClient_Broadcast_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":4,"version":2,"senderPublicKey":"","timestamp":0,"proofs":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	_, err := c.Broadcast(context.Background(), makeTx())
	require.EqualError(t, err, "invalid response: type 4 instead of 10")

	_, err = c.Broadcast(context.Background(), &txn.Transaction{Type: 99})
	require.EqualError(t, err, "unknown transaction type 99")

	_, err = c.Broadcast(context.Background(), &txn.Transaction{Type: txn.TypeOrder})
	require.EqualError(t, err, "order can't be broadcast")

	_, err = c.Broadcast(context.Background(), &txn.Transaction{Type: txn.TypeAlias})
	require.EqualError(t, err, "failed to serialize tx: failed to encode: "+
		"body does not match transaction type 10")

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{`))
	}))
	defer bad.Close()

	_, err = NewClient(bad.URL).Broadcast(context.Background(), makeTx())
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid response: ")

	srv.Close()

	_, err = c.Broadcast(context.Background(), makeTx())
	require.Error(t, err)
	require.Contains(t, err.Error(), "couldn't broadcast: request failed: ")
}

func TestClient_Broadcast_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":112,"message":"State check failed"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	_, err := c.Broadcast(context.Background(), makeTx())
	require.EqualError(t, err,
		"couldn't broadcast: server responded with status 400: State check failed")

	var respErr *client.ResponseError
	require.True(t, errors.As(err, &respErr))
}

func TestClient_GetTransaction(t *testing.T) {
	data, err := makeTx().Serialize(NewClient("").context)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/transactions/info/A":
			w.Write(data)
		case "/transactions/info/B":
			w.WriteHeader(http.StatusNotFound)
		case "/transactions/info/C":
			w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	tx, err := c.GetTransaction(context.Background(), "A")
	require.NoError(t, err)
	require.Equal(t, makeTx(), tx)

	_, err = c.GetTransaction(context.Background(), "B")
	require.Equal(t, ErrNotFound, err)

	_, err = c.GetTransaction(context.Background(), "C")
	require.EqualError(t, err, "invalid response: failed to decode: missing transaction type")

	_, err = c.GetTransaction(context.Background(), "D")
	require.EqualError(t, err, "couldn't get tx: server responded with status 500")
}

func TestClient_WaitForTransaction(t *testing.T) {
	data, err := makeTx().Serialize(NewClient("").context)
	require.NoError(t, err)

	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Write(data)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithPollInterval(time.Millisecond))

	tx, err := c.WaitForTransaction(context.Background(), "A", time.Minute)
	require.NoError(t, err)
	require.Equal(t, makeTx(), tx)
	require.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_WaitForTransaction_NoTimeout(t *testing.T) {
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithPollInterval(time.Millisecond))

	_, err := c.WaitForTransaction(context.Background(), "A", 0)
	require.True(t, errors.Is(err, ErrNotFound))
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))

	_, err = c.WaitForTransaction(context.Background(), "A", -time.Second)
	require.True(t, errors.Is(err, ErrNotFound))
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_WaitForTransaction_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/transactions/info/bad" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	logger, check := fake.CheckLog("sending request")

	c := NewClient(srv.URL, WithPollInterval(time.Millisecond), WithLogger(logger))

	_, err := c.WaitForTransaction(context.Background(), "A", 20*time.Millisecond)
	require.True(t, errors.Is(err, ErrNotFound))
	require.Contains(t, err.Error(), "couldn't wait for tx A: ")

	_, err = c.WaitForTransaction(context.Background(), "bad", time.Minute)
	require.EqualError(t, err,
		"couldn't wait for tx bad: couldn't get tx: server responded with status 500")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = c.WaitForTransaction(ctx, "A", time.Minute)
	require.Error(t, err)

	check(t)
}

// -----------------------------------------------------------------------------
// Utility functions

func makeTx() *txn.Transaction {
	return &txn.Transaction{
		Type:            txn.TypeAlias,
		Version:         2,
		SenderPublicKey: []byte{1, 2, 3},
		Fee:             100000000,
		Timestamp:       1000,
		ID:              "A",
		Proofs:          txn.Proofs{{1}},
		Body:            txn.Alias{ChainID: 'L', Alias: "bob"},
	}
}
