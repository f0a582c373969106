package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/bg-companion-api/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// CompIndex mirrors comps into an Elasticsearch index for name search.
type CompIndex struct {
	ES   *elasticsearch.Client
	Name string
}

func NewCompIndex(es *elasticsearch.Client, index string) *CompIndex {
	return &CompIndex{ES: es, Name: index}
}

type compDoc struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	CoreCards  []string `json:"core_cards"`
	AddonCards []string `json:"addon_cards"`
	HeroCards  []string `json:"hero_cards"`
	SpellCards []string `json:"spell_cards"`
	CreatedBy  string   `json:"created_by"`
	CreatedAt  string   `json:"created_at"`
}

// Index upserts the comp document keyed by its id.
func (x *CompIndex) Index(ctx context.Context, c *entity.Comp) error {
	b, err := json.Marshal(compDoc{
		ID:         c.ID,
		Name:       c.Name,
		CoreCards:  c.CoreCards,
		AddonCards: c.AddonCards,
		HeroCards:  c.HeroCards,
		SpellCards: c.SpellCards,
		CreatedBy:  c.CreatedBy,
		CreatedAt:  c.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Name, DocumentID: c.ID, Body: bytes.NewReader(b), Refresh: "false"}
	cctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(cctx, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Remove deletes the comp document. A missing document is not an error.
func (x *CompIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.Name, DocumentID: id}
	cctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(cctx, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search matches query against comp names, restricted to the owner's comps.
func (x *CompIndex) Search(ctx context.Context, ownerID, query string, size int) ([]entity.Comp, error) {
	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": []any{
					map[string]any{"match": map[string]any{"name": map[string]any{"query": query, "fuzziness": "AUTO"}}},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"created_by.keyword": ownerID}},
				},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(cctx),
		x.ES.Search.WithIndex(x.Name),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source compDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Comp, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		d := h.Source
		created, _ := time.Parse(time.RFC3339Nano, d.CreatedAt)
		out = append(out, entity.Comp{
			ID:         d.ID,
			Name:       d.Name,
			CoreCards:  d.CoreCards,
			AddonCards: d.AddonCards,
			HeroCards:  d.HeroCards,
			SpellCards: d.SpellCards,
			CreatedAt:  created,
			CreatedBy:  d.CreatedBy,
		})
	}
	return out, nil
}
