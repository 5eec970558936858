// Package node implements the client of the node API used to broadcast the
// transactions and follow their inclusion.
package node

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ltonetwork/lto/client"
	"github.com/ltonetwork/lto/core/txn"
	"github.com/ltonetwork/lto/serde"
	"github.com/ltonetwork/lto/serde/json"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// ErrNotFound is returned when the node does not know the transaction.
var ErrNotFound = xerrors.New("transaction not found")

const defaultPollInterval = 500 * time.Millisecond

// Client is the client of a node.
type Client struct {
	transport    client.Transport
	context      serde.Context
	factory      txn.TransactionFactory
	pollInterval time.Duration
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

// WithPollInterval is an option to set the first interval between two
// lookups of a transaction. The interval then grows exponentially.
func WithPollInterval(d time.Duration) Option {
	return func(cl *Client) {
		cl.pollInterval = d
	}
}

// NewClient returns a client of the node at the URL.
func NewClient(nodeURL string, opts ...Option) *Client {
	c := &Client{
		transport:    client.NewTransport("node", nodeURL, nil),
		context:      json.NewContext(),
		factory:      txn.NewTransactionFactory(),
		pollInterval: defaultPollInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Broadcast sends the transaction to the node and returns the transaction as
// accepted by the node.
func (c *Client) Broadcast(ctx context.Context, tx *txn.Transaction) (*txn.Transaction, error) {
	kind, err := tx.GetKind()
	if err != nil {
		return nil, err
	}

	if !kind.Broadcast {
		return nil, xerrors.Errorf("%s can't be broadcast", kind.Name)
	}

	data, err := tx.Serialize(c.context)
	if err != nil {
		return nil, xerrors.Errorf("failed to serialize tx: %v", err)
	}

	resp, err := c.transport.Do(ctx, http.MethodPost, "/transactions/broadcast", data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't broadcast: %w", err)
	}

	accepted, err := c.factory.TransactionOf(c.context, resp)
	if err != nil {
		return nil, xerrors.Errorf("invalid response: %v", err)
	}

	if accepted.Type != tx.Type {
		return nil, xerrors.Errorf("invalid response: type %d instead of %d",
			accepted.Type, tx.Type)
	}

	return accepted, nil
}

// GetTransaction returns the transaction with the identifier. It returns
// ErrNotFound when the node does not know it.
func (c *Client) GetTransaction(ctx context.Context, id string) (*txn.Transaction, error) {
	resp, err := c.transport.Do(ctx, http.MethodGet, "/transactions/info/"+url.PathEscape(id), nil)
	if err != nil {
		var respErr *client.ResponseError
		if errors.As(err, &respErr) && respErr.Status == http.StatusNotFound {
			return nil, ErrNotFound
		}

		return nil, xerrors.Errorf("couldn't get tx: %w", err)
	}

	tx, err := c.factory.TransactionOf(c.context, resp)
	if err != nil {
		return nil, xerrors.Errorf("invalid response: %v", err)
	}

	return tx, nil
}

// WaitForTransaction polls the node until the transaction is found, the
// timeout expires or the context is done. A timeout of zero or less asks the
// node only once.
func (c *Client) WaitForTransaction(ctx context.Context, id string, timeout time.Duration) (*txn.Transaction, error) {
	var policy backoff.BackOff = &backoff.StopBackOff{}

	if timeout > 0 {
		exp := backoff.NewExponentialBackOff()
		exp.InitialInterval = c.pollInterval
		exp.MaxElapsedTime = timeout
		policy = exp
	}

	var tx *txn.Transaction

	op := func() error {
		var err error
		tx, err = c.GetTransaction(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}

		return nil
	}

	err := backoff.Retry(op, backoff.WithContext(policy, ctx))
	if err != nil {
		return nil, xerrors.Errorf("couldn't wait for tx %s: %w", id, err)
	}

	return tx, nil
}
