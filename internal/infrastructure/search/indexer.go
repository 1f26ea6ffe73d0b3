package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	DefaultSize = 10
	MaxSize     = 50
	timeout     = 3 * time.Second
)

// Indexer keeps one Elasticsearch index in sync with a collection.
// A nil client turns every call into a no-op so search stays optional.
type Indexer struct {
	es     *elasticsearch.Client
	Index  string
	Fields []string
}

func NewIndexer(es *elasticsearch.Client, index string, fields ...string) *Indexer {
	return &Indexer{es: es, Index: index, Fields: fields}
}

func (i *Indexer) Enabled() bool {
	return i != nil && i.es != nil && i.Index != ""
}

// Put indexes doc under id, replacing any previous version.
func (i *Indexer) Put(ctx context.Context, id string, doc any) error {
	if !i.Enabled() {
		return nil
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: i.Index, DocumentID: id, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s/%s: %s", i.Index, id, res.Status())
	}
	return nil
}

// Remove deletes id from the index. Unknown ids are fine.
func (i *Indexer) Remove(ctx context.Context, id string) error {
	if !i.Enabled() {
		return nil
	}
	req := esapi.DeleteRequest{Index: i.Index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete %s/%s: %s", i.Index, id, res.Status())
	}
	return nil
}

// Search runs a multi_match query over Fields and returns the stored sources.
func (i *Indexer) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	out := []map[string]any{}
	if !i.Enabled() {
		return out, nil
	}
	if size <= 0 || size > MaxSize {
		size = DefaultSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": i.Fields,
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	res, err := i.es.Search(i.es.Search.WithContext(c), i.es.Search.WithIndex(i.Index), i.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		// a missing index just means nothing was indexed yet
		if res.StatusCode == 404 {
			return out, nil
		}
		return nil, fmt.Errorf("es search %s: %s", i.Index, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
