package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/weiawesome/catalog-service/internal/cache"
	"github.com/weiawesome/catalog-service/internal/domain"
	"github.com/weiawesome/catalog-service/internal/query"
	"github.com/weiawesome/catalog-service/internal/repository"
	"github.com/weiawesome/catalog-service/internal/search"
)

const (
	moviesIndex  = "movies"
	genresIndex  = "genres"
	personsIndex = "persons"
)

// memorySearch is an in-memory search backend that evaluates the subset of
// the query DSL produced by query.Build.
type memorySearch struct {
	mu       sync.Mutex
	indexes  map[string][]map[string]interface{}
	err      error
	searches int
	gets     int
}

var _ search.Client = (*memorySearch)(nil)

func newMemorySearch() *memorySearch {
	return &memorySearch{indexes: map[string][]map[string]interface{}{}}
}

func (m *memorySearch) add(t *testing.T, index string, doc interface{}) {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &generic))

	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexes[index] = append(m.indexes[index], generic)
}

func (m *memorySearch) Get(ctx context.Context, index, id string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++

	if m.err != nil {
		return nil, m.err
	}
	for _, doc := range m.indexes[index] {
		if doc["id"] == id {
			return json.Marshal(doc)
		}
	}
	return nil, search.ErrNotFound
}

func (m *memorySearch) Search(ctx context.Context, index string, body query.Document) ([]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches++

	if m.err != nil {
		return nil, m.err
	}

	// Normalise to the shape the backend would receive.
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	var req map[string]interface{}
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}

	var matched []map[string]interface{}
	q, _ := req["query"].(map[string]interface{})
	for _, doc := range m.indexes[index] {
		if matches(doc, q) {
			matched = append(matched, doc)
		}
	}

	if clauses, ok := req["sort"].([]interface{}); ok && len(clauses) > 0 {
		for field, order := range clauses[0].(map[string]interface{}) {
			desc := order.(map[string]interface{})["order"] == "desc"
			sort.SliceStable(matched, func(i, j int) bool {
				return less(matched[i][field], matched[j][field], desc)
			})
		}
	}

	from := int(req["from"].(float64))
	size := int(req["size"].(float64))
	if from > len(matched) {
		from = len(matched)
	}
	end := from + size
	if end > len(matched) {
		end = len(matched)
	}

	hits := make([]json.RawMessage, 0, end-from)
	for _, doc := range matched[from:end] {
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		hits = append(hits, raw)
	}
	return hits, nil
}

func (m *memorySearch) calls() (gets, searches int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gets, m.searches
}

func matches(doc, clause map[string]interface{}) bool {
	if clause == nil {
		return true
	}
	if _, ok := clause["match_all"]; ok {
		return true
	}
	if n, ok := clause["nested"].(map[string]interface{}); ok {
		path := n["path"].(string)
		term := n["query"].(map[string]interface{})["term"].(map[string]interface{})
		items, _ := doc[path].([]interface{})
		for _, item := range items {
			if ref, ok := item.(map[string]interface{}); ok && ref["id"] == term[path+".id"] {
				return true
			}
		}
		return false
	}
	if mm, ok := clause["multi_match"].(map[string]interface{}); ok {
		want := strings.ToLower(mm["query"].(string))
		for _, f := range mm["fields"].([]interface{}) {
			for _, text := range fieldText(doc, f.(string)) {
				if strings.Contains(strings.ToLower(text), want) {
					return true
				}
			}
		}
		return false
	}
	if b, ok := clause["bool"].(map[string]interface{}); ok {
		for _, key := range []string{"filter", "must"} {
			list, _ := b[key].([]interface{})
			for _, c := range list {
				if !matches(doc, c.(map[string]interface{})) {
					return false
				}
			}
		}
		if should, ok := b["should"].([]interface{}); ok && len(should) > 0 {
			for _, c := range should {
				if matches(doc, c.(map[string]interface{})) {
					return true
				}
			}
			return false
		}
		return true
	}
	panic(fmt.Sprintf("unsupported clause %v", clause))
}

// fieldText returns the string values at a dotted path, descending into
// arrays of objects.
func fieldText(doc map[string]interface{}, path string) []string {
	head, rest, nested := strings.Cut(path, ".")
	v := doc[head]
	if !nested {
		if s, ok := v.(string); ok {
			return []string{s}
		}
		return nil
	}
	var out []string
	items, _ := v.([]interface{})
	for _, item := range items {
		if obj, ok := item.(map[string]interface{}); ok {
			out = append(out, fieldText(obj, rest)...)
		}
	}
	return out
}

// less orders values with missing ones last in either direction.
func less(a, b interface{}, desc bool) bool {
	if a == nil || b == nil {
		return a != nil
	}
	switch av := a.(type) {
	case float64:
		if desc {
			return av > b.(float64)
		}
		return av < b.(float64)
	case string:
		if desc {
			return av > b.(string)
		}
		return av < b.(string)
	}
	return false
}

// fakeFiles is a storage.Storage over a fixed set of keys.
type fakeFiles struct {
	keys  map[string]bool
	err   error
	local bool
}

func (f *fakeFiles) Exists(ctx context.Context, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.keys[key], nil
}

func (f *fakeFiles) GetURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.local {
		return "file:///srv/media/" + key, nil
	}
	return fmt.Sprintf("https://media.test/%s?expires=%d", key, int(expires.Seconds())), nil
}

type stores struct {
	backend *memorySearch
	films   *repository.Repository[domain.Film]
	genres  *repository.Repository[domain.Genre]
	persons *repository.Repository[domain.Person]
}

func newStores(t *testing.T) *stores {
	t.Helper()

	backend := newMemorySearch()
	c := cache.NewMemoryCache(time.Minute)
	opts := repository.Options{Prefix: "catalog", TTL: time.Minute, CacheTimeout: time.Second, SearchTimeout: time.Second}

	s := &stores{
		backend: backend,
		films:   repository.New(backend, c, repository.JSONDescriptor[domain.Film]("film", moviesIndex), opts),
		genres:  repository.New(backend, c, repository.JSONDescriptor[domain.Genre]("genre", genresIndex), opts),
		persons: repository.New(backend, c, repository.JSONDescriptor[domain.Person]("person", personsIndex), opts),
	}
	t.Cleanup(func() {
		s.films.Flush()
		s.genres.Flush()
		s.persons.Flush()
		c.Close()
	})
	return s
}

func rating(v float64) *float64 { return &v }

func str(v string) *string { return &v }

var testPaging = Paging{DefaultPageSize: 50, MaxPageSize: 100}
