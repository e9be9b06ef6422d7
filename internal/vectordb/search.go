package vectordb

import (
	"context"
	"fmt"
	"time"

	"github.com/qdrant/go-client/qdrant"
	"github.com/siftbot/gh-sift/pkg/models"
)

// SearchNearest finds the nearest open items of the same repo and kind,
// excluding the query item itself, ranked by cosine similarity.
func (c *Client) SearchNearest(ctx context.Context, collection string, vector []float32, item *models.Item, limit int) ([]models.Candidate, error) {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatchKeyword("repo", item.Repo),
			qdrant.NewMatchKeyword("kind", string(item.Kind)),
			qdrant.NewMatchKeyword("state", "open"),
		},
		MustNot: []*qdrant.Condition{
			qdrant.NewMatchInt("number", int64(item.Number)),
		},
	}

	points, err := c.qdrant.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
		Filter:         filter,
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]models.Candidate, 0, len(points))
	for _, point := range points {
		candidate := payloadToCandidate(point.Payload)
		candidate.Similarity = float64(point.Score)
		results = append(results, candidate)
	}

	return results, nil
}

// SearchByText finds items near an arbitrary query vector with no
// item-identity filtering (used by the search command)
func (c *Client) SearchByText(ctx context.Context, collection string, vector []float32, limit int, threshold float64) ([]models.Candidate, error) {
	scoreThreshold := float32(threshold)

	points, err := c.qdrant.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		ScoreThreshold: &scoreThreshold,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]models.Candidate, 0, len(points))
	for _, point := range points {
		candidate := payloadToCandidate(point.Payload)
		candidate.Similarity = float64(point.Score)
		results = append(results, candidate)
	}

	return results, nil
}

// payloadToCandidate converts a Qdrant payload to a Candidate
func payloadToCandidate(payload map[string]*qdrant.Value) models.Candidate {
	candidate := models.Candidate{}

	if v := payload["org"]; v != nil {
		candidate.Item.Org = v.GetStringValue()
	}
	if v := payload["repo"]; v != nil {
		candidate.Item.Repo = v.GetStringValue()
	}
	if v := payload["number"]; v != nil {
		candidate.Item.Number = int(v.GetIntegerValue())
	}
	if v := payload["kind"]; v != nil {
		candidate.Item.Kind = models.ItemKind(v.GetStringValue())
	}
	if v := payload["title"]; v != nil {
		candidate.Item.Title = v.GetStringValue()
	}
	if v := payload["summary"]; v != nil {
		candidate.Summary = v.GetStringValue()
	}
	if v := payload["state"]; v != nil {
		candidate.Item.State = v.GetStringValue()
	}
	if v := payload["author"]; v != nil {
		candidate.Item.Author = v.GetStringValue()
	}
	if v := payload["url"]; v != nil {
		candidate.Item.URL = v.GetStringValue()
	}
	if v := payload["created_at"]; v != nil {
		candidate.Item.CreatedAt, _ = time.Parse(time.RFC3339, v.GetStringValue())
	}

	return candidate
}
