package repository

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/weiawesome/catalog-service/internal/domain"
)

// CanonicalParams serializes p as escaped field=value pairs sorted by field
// name. Every field is always present, so two parameter sets produce the same
// string exactly when all their fields are equal.
func CanonicalParams(p domain.QueryParams) string {
	v := url.Values{}
	v.Set("offset", strconv.Itoa(p.Offset))
	v.Set("page_size", strconv.Itoa(p.PageSize))
	v.Set("sort", p.Sort)
	v.Set("genre", p.GenreID)
	v.Set("person", p.PersonID)
	v.Set("query", p.Query)
	return v.Encode()
}

// ListKey derives the cache key of a list query against index.
func ListKey(index string, p domain.QueryParams) string {
	return fmt.Sprintf("%s:list:%016x", index, xxhash.Sum64String(CanonicalParams(p)))
}

// IDKey derives the cache key of a single document of index.
func IDKey(index, id string) string {
	return index + ":id:" + id
}

func withPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return strings.TrimSuffix(prefix, ":") + ":" + key
}
