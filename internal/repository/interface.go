package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/weiawesome/catalog-service/internal/domain"
	"github.com/weiawesome/catalog-service/internal/search"
)

var (
	// ErrNotFound reports an id without a document, or a list query without hits.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable reports that the search backend could not be reached in time.
	ErrUnavailable = search.ErrUnavailable
)

// Store defines the read operations of a catalog entity repository.
type Store[T any] interface {
	FetchByID(ctx context.Context, id string) (T, error)
	FetchList(ctx context.Context, params domain.QueryParams) ([]T, error)
}

// Descriptor binds an entity type to its index and to the decoder of its
// backend documents.
type Descriptor[T any] struct {
	Name   string
	Index  string
	Decode func(source []byte) (T, error)
}

// JSONDescriptor returns a Descriptor that decodes documents with encoding/json.
func JSONDescriptor[T any](name, index string) Descriptor[T] {
	return Descriptor[T]{
		Name:  name,
		Index: index,
		Decode: func(source []byte) (T, error) {
			var v T
			err := json.Unmarshal(source, &v)
			return v, err
		},
	}
}
