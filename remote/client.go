// Package remote generates datasets on a mandel server. Requests go through
// the irpc DatasetProvider service, carried over a websocket connection.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/coder/websocket"
	"github.com/marben/irpc"

	mandel "github.com/marben/mandel_data"
)

// ServerError is an error reported by the server for one request.
type ServerError struct {
	Message string
	Invalid bool
}

func (e *ServerError) Error() string {
	return "server: " + e.Message
}

// Is reports rejected parameters as mandel.ErrInvalidParameter.
func (e *ServerError) Is(target error) bool {
	return e.Invalid && target == mandel.ErrInvalidParameter
}

// Client is a DatasetProvider backed by a mandel server. It is safe for
// concurrent use; requests share one connection.
type Client struct {
	ep     *irpc.Endpoint
	remote *mandel.DatasetProviderIrpcClient
	logger *slog.Logger
}

var _ mandel.DatasetProvider = (*Client)(nil)

// Dial connects to the irpc endpoint at url, e.g. ws://localhost:8080/irpc.
// ctx bounds the handshake only.
func Dial(ctx context.Context, url string, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "remote", "url", url)

	logger.Debug("connecting")
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	ep := irpc.NewEndpoint(websocket.NetConn(context.Background(), conn, websocket.MessageBinary))
	remote, err := mandel.NewDatasetProviderIrpcClient(ep)
	if err != nil {
		ep.Close()
		return nil, fmt.Errorf("new DatasetProvider client: %w", err)
	}
	logger.Debug("connected")

	return &Client{ep: ep, remote: remote, logger: logger}, nil
}

// Generate asks the server for the dataset of p. Parameters are validated
// locally first so obviously bad requests never leave the process.
func (c *Client) Generate(ctx context.Context, p mandel.GenerationParameters) (mandel.Dataset, error) {
	if err := p.Validate(); err != nil {
		return mandel.Dataset{}, err
	}

	c.logger.Debug("requesting dataset", "width", p.Width, "height", p.Height)
	ds, err := c.remote.Generate(ctx, p)
	if err != nil {
		return mandel.Dataset{}, c.requestError(ctx, err)
	}

	if want := ds.Metadata.NumX * ds.Metadata.NumY; len(ds.Points) != want {
		return mandel.Dataset{}, fmt.Errorf("server sent %d points, metadata says %d", len(ds.Points), want)
	}
	return ds, nil
}

// requestError separates transport failures from errors the server returned.
// Server errors arrive as text only; those carrying the ErrInvalidParameter
// prefix are parameter rejections.
func (c *Client) requestError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("request aborted: %w", context.Cause(ctx))
	}
	if c.ep.Context().Err() != nil {
		return fmt.Errorf("connection to server lost: %w", err)
	}

	msg := err.Error()
	return &ServerError{
		Message: msg,
		Invalid: strings.HasPrefix(msg, mandel.ErrInvalidParameter.Error()),
	}
}

// Close ends the session.
func (c *Client) Close() error {
	if err := c.ep.Close(); err != nil && !errors.Is(err, irpc.ErrEndpointClosedByCounterpart) {
		return err
	}
	return nil
}
