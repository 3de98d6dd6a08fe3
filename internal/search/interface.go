package search

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/weiawesome/catalog-service/internal/query"
)

var (
	// ErrNotFound is returned by Get when the index holds no document with the id.
	ErrNotFound = errors.New("document not found")
	// ErrUnavailable wraps transport failures, timeouts and 5xx/429 responses.
	// Callers may retry.
	ErrUnavailable = errors.New("search backend unavailable")
)

// Client defines the search backend operations used by the catalog.
type Client interface {
	// Get returns the _source of the document id in index.
	Get(ctx context.Context, index, id string) (json.RawMessage, error)
	// Search returns the _source of every hit for body in index, in hit order.
	// A missing index yields no hits.
	Search(ctx context.Context, index string, body query.Document) ([]json.RawMessage, error)
}
