package vectordb

import (
	"context"
	"fmt"
	"time"

	"github.com/qdrant/go-client/qdrant"
	"github.com/siftbot/gh-sift/pkg/models"
)

// Upsert inserts or updates a single item vector along with its summary
// payload. The point id is deterministic on (repo, number, kind), so
// repeated runs overwrite rather than duplicate.
func (c *Client) Upsert(ctx context.Context, collection string, item *models.Item, summary string, vector []float32) error {
	point := itemToPoint(item, summary, vector)

	_, err := c.qdrant.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("upsert failed: %w", err)
	}
	return nil
}

// UpsertBatch inserts or updates multiple item vectors
func (c *Client) UpsertBatch(ctx context.Context, collection string, items []*models.Item, summaries []string, vectors [][]float32) error {
	if len(items) != len(vectors) || len(items) != len(summaries) {
		return fmt.Errorf("items, summaries and vectors length mismatch")
	}

	points := make([]*qdrant.PointStruct, len(items))
	for i, item := range items {
		points[i] = itemToPoint(item, summaries[i], vectors[i])
	}

	_, err := c.qdrant.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("batch upsert failed: %w", err)
	}
	return nil
}

// Delete removes a point by ID
func (c *Client) Delete(ctx context.Context, collection string, id string) error {
	_, err := c.qdrant.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{
					Ids: []*qdrant.PointId{qdrant.NewIDUUID(id)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

// itemToPoint converts an Item to a Qdrant point
func itemToPoint(item *models.Item, summary string, vector []float32) *qdrant.PointStruct {
	return &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(item.UUID()),
		Vectors: qdrant.NewVectors(vector...),
		Payload: map[string]*qdrant.Value{
			"org":        qdrant.NewValueString(item.Org),
			"repo":       qdrant.NewValueString(item.Repo),
			"number":     qdrant.NewValueInt(int64(item.Number)),
			"kind":       qdrant.NewValueString(string(item.Kind)),
			"title":      qdrant.NewValueString(item.Title),
			"summary":    qdrant.NewValueString(summary),
			"state":      qdrant.NewValueString(item.State),
			"author":     qdrant.NewValueString(item.Author),
			"url":        qdrant.NewValueString(item.URL),
			"created_at": qdrant.NewValueString(item.CreatedAt.Format(time.RFC3339)),
		},
	}
}
