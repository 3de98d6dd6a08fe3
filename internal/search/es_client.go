package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/weiawesome/catalog-service/internal/query"
)

type esClient struct {
	client *elasticsearch.Client
}

// NewESClient creates an Elasticsearch-backed search client.
func NewESClient(client *elasticsearch.Client) Client {
	return &esClient{client: client}
}

func (c *esClient) Get(ctx context.Context, index, id string) (json.RawMessage, error) {
	res, err := c.client.Get(index, id, c.client.Get.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: get %s/%s: %w", ErrUnavailable, index, id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.IsError() {
		return nil, responseError(res)
	}

	var doc esGetResponse
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode get response: %w", err)
	}
	if !doc.Found {
		return nil, ErrNotFound
	}

	return doc.Source, nil
}

func (c *esClient) Search(ctx context.Context, index string, body query.Document) ([]json.RawMessage, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	res, err := c.client.Search(
		c.client.Search.WithContext(ctx),
		c.client.Search.WithIndex(index),
		c.client.Search.WithBody(bytes.NewReader(data)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: search %s: %w", ErrUnavailable, index, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if res.IsError() {
		return nil, responseError(res)
	}

	var result esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	sources := make([]json.RawMessage, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		sources = append(sources, hit.Source)
	}

	return sources, nil
}

// responseError classifies an error response. Overload and server errors are
// retryable, anything else is a request problem.
func responseError(res *esapi.Response) error {
	if res.StatusCode >= http.StatusInternalServerError || res.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", ErrUnavailable, res.String())
	}
	return fmt.Errorf("elasticsearch error: %s", res.String())
}

type esGetResponse struct {
	Found  bool            `json:"found"`
	Source json.RawMessage `json:"_source"`
}

// esSearchResponse is the generic Elasticsearch search response structure.
type esSearchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Ping verifies that the cluster answers an Info request.
func Ping(ctx context.Context, client *elasticsearch.Client) error {
	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: info: %w", ErrUnavailable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError(res)
	}
	return nil
}
