package mandel

import (
	"context"
)

//go:generate go run github.com/marben/irpc/cmd/irpc@v0.0.0-20260109104542-2d3fde99869b

// DatasetProvider produces a complete dataset for a viewport.
// Implementations never return a partial dataset together with an error.
// The irpc stubs in api_irpc.go serve it over a network connection.
type DatasetProvider interface {
	Generate(ctx context.Context, p GenerationParameters) (Dataset, error)
}

// Response is the server reply to one GenerationParameters request.
// Exactly one of Dataset and Error is set.
type Response struct {
	Dataset *Dataset `json:"dataset,omitempty"`
	Error   string   `json:"error,omitempty"`
	// Invalid marks errors caused by the request parameters.
	Invalid bool `json:"invalid,omitempty"`
}
