package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/weiawesome/catalog-service/internal/cache"
	"github.com/weiawesome/catalog-service/internal/query"
	"github.com/weiawesome/catalog-service/internal/search"
)

// fakeSearch serves fixed documents and records every call.
type fakeSearch struct {
	mu       sync.Mutex
	docs     map[string]json.RawMessage
	hits     []json.RawMessage
	err      error
	delay    time.Duration
	onCall   func()
	gets     int
	searches int
	aborted  int
	queries  []query.Document
}

var _ search.Client = (*fakeSearch)(nil)

func (f *fakeSearch) wait(ctx context.Context) error {
	if f.onCall != nil {
		f.onCall()
	}
	if f.delay == 0 {
		return nil
	}
	select {
	case <-time.After(f.delay):
		return nil
	case <-ctx.Done():
		f.mu.Lock()
		f.aborted++
		f.mu.Unlock()
		return ctx.Err()
	}
}

func (f *fakeSearch) abortedCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.aborted
}

func (f *fakeSearch) Get(ctx context.Context, index, id string) (json.RawMessage, error) {
	f.mu.Lock()
	f.gets++
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	doc, ok := f.docs[id]
	if !ok {
		return nil, search.ErrNotFound
	}
	return doc, nil
}

func (f *fakeSearch) Search(ctx context.Context, index string, body query.Document) ([]json.RawMessage, error) {
	f.mu.Lock()
	f.searches++
	f.queries = append(f.queries, body)
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}

func (f *fakeSearch) calls() (gets, searches int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets, f.searches
}

// countingCache records writes made through it.
type countingCache struct {
	cache.Cache
	mu   sync.Mutex
	sets []string
}

func (c *countingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.sets = append(c.sets, key)
	c.mu.Unlock()
	return c.Cache.Set(ctx, key, value, ttl)
}

func (c *countingCache) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sets)
}
