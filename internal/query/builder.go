// Package query turns catalog list parameters into Elasticsearch query bodies.
package query

import (
	"strings"

	"github.com/weiawesome/catalog-service/internal/domain"
)

// Fuzziness is the fuzziness applied to full-text matches.
const Fuzziness = "AUTO"

// Document is a search request body in the Elasticsearch query DSL.
type Document map[string]interface{}

// TextFields are the fields a free-text query is matched against.
var TextFields = []string{
	"title",
	"description",
	"name",
	"genre.name",
	"directors.name",
	"actors.name",
	"writers.name",
}

// RoleFields are the nested person collections of a film document.
var RoleFields = []string{"directors", "actors", "writers"}

// Build returns the query body for p. Every filter that is set contributes its
// own clause to one bool query, so filters never replace each other.
func Build(p domain.QueryParams) Document {
	body := Document{
		"from": p.Offset,
		"size": p.PageSize,
	}

	if sort := sortClause(p.Sort); sort != nil {
		body["sort"] = sort
	}

	var filter, must []interface{}

	if p.GenreID != "" {
		filter = append(filter, nestedTerm("genre", p.GenreID))
	}
	if p.PersonID != "" {
		filter = append(filter, personClause(p.PersonID))
	}
	if strings.TrimSpace(p.Query) != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     p.Query,
				"fields":    TextFields,
				"fuzziness": Fuzziness,
			},
		})
	}

	if len(filter) == 0 && len(must) == 0 {
		body["query"] = map[string]interface{}{
			"match_all": map[string]interface{}{},
		}
		return body
	}

	boolQuery := map[string]interface{}{}
	if len(filter) > 0 {
		boolQuery["filter"] = filter
	}
	if len(must) > 0 {
		boolQuery["must"] = must
	}
	body["query"] = map[string]interface{}{"bool": boolQuery}

	return body
}

// sortClause maps "field" to ascending and "-field" to descending order.
func sortClause(sort string) []interface{} {
	order := "asc"
	if strings.HasPrefix(sort, "-") {
		order = "desc"
		sort = sort[1:]
	}
	if sort == "" {
		return nil
	}
	return []interface{}{
		map[string]interface{}{
			sort: map[string]interface{}{"order": order},
		},
	}
}

// nestedTerm matches documents where at least one element of the nested
// collection at path has id == id.
func nestedTerm(path, id string) map[string]interface{} {
	return map[string]interface{}{
		"nested": map[string]interface{}{
			"path": path,
			"query": map[string]interface{}{
				"term": map[string]interface{}{
					path + ".id": id,
				},
			},
		},
	}
}

// personClause matches films where id appears in any role collection.
func personClause(id string) map[string]interface{} {
	should := make([]interface{}, 0, len(RoleFields))
	for _, field := range RoleFields {
		should = append(should, nestedTerm(field, id))
	}
	return map[string]interface{}{
		"bool": map[string]interface{}{
			"should":               should,
			"minimum_should_match": 1,
		},
	}
}
