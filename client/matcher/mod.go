// Package matcher implements the client of the matcher API that receives the
// orders and their cancellations.
package matcher

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ltonetwork/lto/client"
	"github.com/ltonetwork/lto/core/txn"
	"github.com/ltonetwork/lto/serde"
	serdejson "github.com/ltonetwork/lto/serde/json"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// NativeAsset is the name of the native token in the paths of the API.
const NativeAsset = "LTO"

// Response is the answer of the matcher to an order or a cancellation.
type Response struct {
	Status  string          `json:"status"`
	Message json.RawMessage `json:"message,omitempty"`
}

// Client is the client of a matcher.
type Client struct {
	transport client.Transport
	context   serde.Context
}

// Option is the type of options to create a client.
type Option func(*Client)

// WithHTTPClient is an option to set the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.transport = cl.transport.WithHTTPClient(c)
	}
}

// WithLogger is an option to set the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(cl *Client) {
		cl.transport = cl.transport.WithLogger(l)
	}
}

// NewClient returns a client of the matcher at the URL.
func NewClient(matcherURL string, opts ...Option) *Client {
	c := &Client{
		transport: client.NewTransport("matcher", matcherURL, nil),
		context:   serdejson.NewContext(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SubmitOrder places the order in the order book.
func (c *Client) SubmitOrder(ctx context.Context, order *txn.Transaction) (Response, error) {
	if order.Type != txn.TypeOrder {
		return Response{}, xerrors.Errorf("invalid order type %d", order.Type)
	}

	resp, err := c.post(ctx, "/matcher/orderbook", order)
	if err != nil {
		return resp, xerrors.Errorf("couldn't submit order: %w", err)
	}

	return resp, nil
}

// CancelOrder cancels an order of the asset pair. An empty asset identifier
// is the native token.
func (c *Client) CancelOrder(ctx context.Context, cancel *txn.Transaction,
	amountAsset, priceAsset txn.Base58) (Response, error) {

	if cancel.Type != txn.TypeCancelOrder {
		return Response{}, xerrors.Errorf("invalid cancel order type %d", cancel.Type)
	}

	path := "/matcher/orderbook/" + assetName(amountAsset) + "/" + assetName(priceAsset) + "/cancel"

	resp, err := c.post(ctx, path, cancel)
	if err != nil {
		return resp, xerrors.Errorf("couldn't cancel order: %w", err)
	}

	return resp, nil
}

func (c *Client) post(ctx context.Context, path string, tx *txn.Transaction) (Response, error) {
	data, err := c.context.Encode(tx)
	if err != nil {
		return Response{}, xerrors.Errorf("failed to serialize: %v", err)
	}

	body, err := c.transport.Do(ctx, http.MethodPost, path, data)
	if err != nil {
		return Response{}, err
	}

	var resp Response

	err = c.context.Unmarshal(body, &resp)
	if err != nil {
		return Response{}, xerrors.Errorf("invalid response: %v", err)
	}

	return resp, nil
}

func assetName(id txn.Base58) string {
	if len(id) == 0 {
		return NativeAsset
	}

	return id.String()
}
