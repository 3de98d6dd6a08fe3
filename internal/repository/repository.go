// Package repository implements cache-aside access to catalog entities: reads
// go to the cache first, fall back to the search backend and write the result
// back with a fixed TTL.
package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/weiawesome/catalog-service/internal/cache"
	"github.com/weiawesome/catalog-service/internal/domain"
	"github.com/weiawesome/catalog-service/internal/query"
	"github.com/weiawesome/catalog-service/internal/search"
	"github.com/weiawesome/catalog-service/pkg/log"
)

// DefaultTTL is how long a fetched entity or list stays cached.
const DefaultTTL = 5 * time.Minute

// Options tunes a Repository. Zero timeouts mean no per-call deadline.
type Options struct {
	Prefix        string
	TTL           time.Duration
	Codec         cache.Codec
	SearchTimeout time.Duration
	CacheTimeout  time.Duration
}

// Repository is a cache-aside store for one entity type.
type Repository[T any] struct {
	search search.Client
	cache  cache.Cache
	desc   Descriptor[T]
	opts   Options
	sf     singleflight.Group
	wg     sync.WaitGroup

	mu      sync.Mutex
	flights map[string]*flight
}

// flight is the shared work behind one singleflight key. Its context outlives
// any single caller and is cancelled once every caller waiting on it has left.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

var _ Store[struct{}] = (*Repository[struct{}])(nil)

// New creates a repository for the entity described by desc.
func New[T any](searchClient search.Client, c cache.Cache, desc Descriptor[T], opts Options) *Repository[T] {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Codec == nil {
		opts.Codec = cache.JSON
	}
	return &Repository[T]{
		search:  searchClient,
		cache:   c,
		desc:    desc,
		opts:    opts,
		flights: make(map[string]*flight),
	}
}

// FetchByID returns the entity id, from the cache when possible.
// It returns ErrNotFound when the backend has no such document; nothing is
// cached in that case.
func (r *Repository[T]) FetchByID(ctx context.Context, id string) (T, error) {
	key := withPrefix(r.opts.Prefix, IDKey(r.desc.Index, id))

	v, err := r.do(ctx, key, func(ctx context.Context) (interface{}, error) {
		var item T
		if r.fromCache(ctx, key, &item) {
			return item, nil
		}

		sctx, cancel := withTimeout(ctx, r.opts.SearchTimeout)
		defer cancel()

		raw, err := r.search.Get(sctx, r.desc.Index, id)
		if err != nil {
			return nil, r.backendError(ctx, err, fmt.Sprintf("get %s %s", r.desc.Name, id))
		}

		item, err = r.desc.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s %s: %w", r.desc.Name, id, err)
		}

		r.store(ctx, key, item)
		return item, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}

// FetchList returns the entities matching params, from the cache when
// possible. An empty result is reported as ErrNotFound and is not cached.
// The returned slice may be shared with concurrent callers and must not be
// modified.
func (r *Repository[T]) FetchList(ctx context.Context, params domain.QueryParams) ([]T, error) {
	key := withPrefix(r.opts.Prefix, ListKey(r.desc.Index, params))

	v, err := r.do(ctx, key, func(ctx context.Context) (interface{}, error) {
		var items []T
		if r.fromCache(ctx, key, &items) && len(items) > 0 {
			return items, nil
		}

		sctx, cancel := withTimeout(ctx, r.opts.SearchTimeout)
		defer cancel()

		hits, err := r.search.Search(sctx, r.desc.Index, query.Build(params))
		if err != nil {
			return nil, r.backendError(ctx, err, "search "+r.desc.Name)
		}
		if len(hits) == 0 {
			return nil, fmt.Errorf("%s list: %w", r.desc.Name, ErrNotFound)
		}

		items = make([]T, 0, len(hits))
		for _, raw := range hits {
			item, err := r.desc.Decode(raw)
			if err != nil {
				return nil, fmt.Errorf("failed to decode %s hit: %w", r.desc.Name, err)
			}
			items = append(items, item)
		}

		r.store(ctx, key, items)
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]T), nil
}

// do runs fn once per key for all concurrent callers. fn gets a context that
// keeps the callers' values but not their cancellation, so one caller leaving
// does not fail the others. A caller whose own context ends returns at once.
func (r *Repository[T]) do(ctx context.Context, key string, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	f := r.join(ctx, key)
	defer r.leave(key, f)

	ch := r.sf.DoChan(key, func() (interface{}, error) {
		return fn(f.ctx)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *Repository[T]) join(ctx context.Context, key string) *flight {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.flights[key]
	if !ok {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: fctx, cancel: cancel}
		r.flights[key] = f
	}
	f.waiters++
	return f
}

func (r *Repository[T]) leave(key string, f *flight) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f.waiters--
	if f.waiters > 0 {
		return
	}
	// Nobody is waiting: stop the work and make the next caller start afresh
	// instead of joining a cancelled call.
	f.cancel()
	r.sf.Forget(key)
	delete(r.flights, key)
}

// Flush blocks until every pending cache write has finished.
func (r *Repository[T]) Flush() {
	r.wg.Wait()
}

// fromCache decodes the value under key into dst. Cache failures and
// undecodable values count as misses.
func (r *Repository[T]) fromCache(ctx context.Context, key string, dst interface{}) bool {
	cctx, cancel := withTimeout(ctx, r.opts.CacheTimeout)
	defer cancel()

	data, err := r.cache.Get(cctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			l := r.logger(ctx)
			l.Warn().Err(err).Str(log.FieldCacheKey, key).Msg("cache get error")
		}
		return false
	}

	if err := r.opts.Codec.Unmarshal(data, dst); err != nil {
		l := r.logger(ctx)
		l.Warn().Err(err).Str(log.FieldCacheKey, key).Str(log.FieldCodec, r.opts.Codec.Name()).
			Msg("discarding undecodable cache entry")
		return false
	}

	return true
}

// store writes value under key in the background. Lookups abandoned by every
// caller are not written.
func (r *Repository[T]) store(ctx context.Context, key string, value interface{}) {
	if ctx.Err() != nil {
		return
	}

	data, err := r.opts.Codec.Marshal(value)
	if err != nil {
		l := r.logger(ctx)
		l.Warn().Err(err).Str(log.FieldCacheKey, key).Msg("cache encode error")
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		cctx, cancel := withTimeout(context.Background(), r.opts.CacheTimeout)
		defer cancel()

		if err := r.cache.Set(cctx, key, data, r.opts.TTL); err != nil {
			l := r.logger(ctx)
			l.Warn().Err(err).Str(log.FieldCacheKey, key).Msg("cache set error")
		}
	}()
}

// logger returns the context logger tagged with the entity and its index.
func (r *Repository[T]) logger(ctx context.Context) zerolog.Logger {
	l := log.Ctx(ctx)
	return l.With().Str(log.FieldEntity, r.desc.Name).Str(log.FieldIndex, r.desc.Index).Logger()
}

// backendError maps a search client error. A deadline hit by the per-call
// timeout is retryable; an abandoned lookup reports its context error.
func (r *Repository[T]) backendError(ctx context.Context, err error, op string) error {
	if errors.Is(err, search.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrUnavailable) {
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
