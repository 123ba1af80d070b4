package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onlinelabs/website/internal/models"
)

const leadsCollection = "leads"

// ErrLeadExists is returned when a lead with the same ID was already stored.
var ErrLeadExists = errors.New("lead already exists")

type Client struct {
	client *firestore.Client
}

func New(ctx context.Context, projectID string) (*Client, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClient: %w", err)
	}
	return &Client{client: client}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// TryCreateLead stores a new lead under its ID. Create fails if the document exists.
func (c *Client) TryCreateLead(ctx context.Context, lead models.Lead) error {
	docRef := c.client.Collection(leadsCollection).Doc(lead.ID)
	_, err := docRef.Create(ctx, lead)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ErrLeadExists
		}
		return fmt.Errorf("failed to create lead %s: %w", lead.ID, err)
	}
	return nil
}

// MarkRelayed records that the lead reached the mail relay.
func (c *Client) MarkRelayed(ctx context.Context, id string) error {
	_, err := c.client.Collection(leadsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "relayed", Value: true},
	})
	if err != nil {
		return fmt.Errorf("failed to mark lead %s relayed: %w", id, err)
	}
	return nil
}

// TrimOldLeads deletes the oldest leads by createdAt until at most maxLeads remain.
func (c *Client) TrimOldLeads(ctx context.Context, maxLeads int) error {
	collectionRef := c.client.Collection(leadsCollection)

	countSnapshot, err := collectionRef.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to get lead count for trimming: %w", err)
	}
	raw, ok := countSnapshot["all"]
	if !ok {
		return fmt.Errorf("count aggregation result for trimming was invalid: 'all' key missing")
	}
	count, err := countValue(raw)
	if err != nil {
		return err
	}

	numToDelete := excess(count, maxLeads)
	if numToDelete == 0 {
		return nil
	}
	slog.Info("Trimming stored leads", "current", count, "max", maxLeads, "deleting", numToDelete)

	iter := collectionRef.
		OrderBy("createdAt", firestore.Asc).
		Limit(numToDelete).
		Documents(ctx)
	defer iter.Stop()

	bulkWriter := c.client.BulkWriter(ctx)
	defer bulkWriter.End()

	deleted := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to iterate leads for trimming: %w", err)
		}
		if _, err := bulkWriter.Delete(doc.Ref); err != nil {
			slog.Warn("Failed to queue lead delete", "id", doc.Ref.ID, "error", err)
			continue
		}
		deleted++
	}

	if deleted > 0 {
		bulkWriter.Flush()
		slog.Info("Flushed lead deletes", "count", deleted)
	}
	return nil
}

// countValue reads an aggregation count, which the client may report as a
// plain int64 or as a protobuf value.
func countValue(v any) (int64, error) {
	switch val := v.(type) {
	case int64:
		return val, nil
	case *firestorepb.Value:
		return val.GetIntegerValue(), nil
	default:
		return 0, fmt.Errorf("count aggregation result for trimming has unexpected type %T", v)
	}
}

func excess(count int64, max int) int {
	if max < 0 || count <= int64(max) {
		return 0
	}
	return int(count - int64(max))
}
