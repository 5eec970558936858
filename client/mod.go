// Package client implements the HTTP transport shared by the clients of the
// node and the matcher APIs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ltonetwork/lto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// maxResponseSize is the limit of the body read from a response.
const maxResponseSize = 4 << 20

var promRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "lto_client_requests_total",
	Help: "total number of requests sent to the APIs",
}, []string{"client", "status"})

func init() {
	lto.PromCollectors = append(lto.PromCollectors, promRequests)
}

// ResponseError is returned when the API answers with an error status.
type ResponseError struct {
	Status  int
	Message string
}

// Error implements error.
func (e *ResponseError) Error() string {
	if e.Message == "" {
		return "server responded with status " + strconv.Itoa(e.Status)
	}

	return "server responded with status " + strconv.Itoa(e.Status) + ": " + e.Message
}

// Transport sends JSON requests to an API.
type Transport struct {
	name    string
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewTransport returns a transport for the API at the base URL. The name
// labels the logs and the metrics.
func NewTransport(name, baseURL string, client *http.Client) Transport {
	if client == nil {
		client = http.DefaultClient
	}

	return Transport{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
		logger:  lto.Logger.With().Str("client", name).Logger(),
	}
}

// WithLogger returns a copy of the transport that uses the logger.
func (t Transport) WithLogger(logger zerolog.Logger) Transport {
	t.logger = logger.With().Str("client", t.name).Logger()
	return t
}

// WithHTTPClient returns a copy of the transport that uses the HTTP client.
func (t Transport) WithHTTPClient(client *http.Client) Transport {
	if client != nil {
		t.http = client
	}

	return t
}

// Do sends the request and returns the body of the response. A nil payload
// sends a request without body.
func (t Transport) Do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, body)
	if err != nil {
		return nil, xerrors.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := t.logger.With().Stringer("request", xid.New()).Logger()
	logger.Debug().Str("method", method).Str("path", path).Msg("sending request")

	resp, err := t.http.Do(req)
	if err != nil {
		promRequests.WithLabelValues(t.name, "error").Inc()
		return nil, xerrors.Errorf("request failed: %v", err)
	}

	defer resp.Body.Close()

	promRequests.WithLabelValues(t.name, strconv.Itoa(resp.StatusCode)).Inc()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, xerrors.Errorf("failed to read response: %v", err)
	}

	logger.Trace().Int("status", resp.StatusCode).Int("size", len(data)).Msg("response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ResponseError{
			Status:  resp.StatusCode,
			Message: messageOf(data),
		}
	}

	return data, nil
}

// messageOf returns the message of an error response of the API, or the raw
// body when it is not a JSON error.
func messageOf(data []byte) string {
	var m struct {
		Message string `json:"message"`
	}

	err := json.Unmarshal(data, &m)
	if err == nil && m.Message != "" {
		return m.Message
	}

	return strings.TrimSpace(string(data))
}
