package contact

import (
	"context"

	"github.com/onlinelabs/website/internal/models"
)

// LeadStore abstracts the storage layer for leads.
type LeadStore interface {
	TryCreateLead(ctx context.Context, lead models.Lead) error
	MarkRelayed(ctx context.Context, id string) error
	TrimOldLeads(ctx context.Context, maxLeads int) error
}

// Relay abstracts the mail relay.
type Relay interface {
	Relay(ctx context.Context, lead models.Lead) error
}
