// Package contact implements the contact funnel: validate, persist, relay.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/onlinelabs/website/internal/models"
	"github.com/onlinelabs/website/internal/notifier"
	"github.com/onlinelabs/website/internal/storage"
	"github.com/onlinelabs/website/internal/validator"
)

// ErrRelayFailed means the lead could not be delivered to the team. The
// caller should offer the direct email fallback.
var ErrRelayFailed = errors.New("contact: relay failed")

type Service struct {
	store     LeadStore
	relay     Relay
	validator *validator.Validator
	maxLeads  int
	now       func() time.Time
	newID     func() string
}

// NewService wires the funnel. store may be nil, in which case leads are
// only relayed.
func NewService(store LeadStore, relay Relay, maxLeads int) *Service {
	return &Service{
		store:     store,
		relay:     relay,
		validator: validator.New(),
		maxLeads:  maxLeads,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Submit validates the request and hands the lead to the store and the
// relay. Validation failures are *apperr.ValidationError; delivery failures
// are ErrRelayFailed.
func (s *Service) Submit(ctx context.Context, req models.ContactRequest) (*models.Lead, error) {
	req = normalize(req)
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	lead := models.Lead{
		ID:        s.newID(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Website:   req.Website,
		Message:   req.Message,
		Interests: req.Interests,
		CreatedAt: s.now().UTC(),
		UserAgent: req.UserAgent,
		RemoteIP:  req.RemoteIP,
	}

	stored := s.persist(ctx, lead)

	err := s.relay.Relay(ctx, lead)
	switch {
	case err == nil:
		lead.Relayed = true
		if stored {
			if err := s.store.MarkRelayed(ctx, lead.ID); err != nil {
				slog.Warn("Failed to mark lead relayed", "lead", lead.ID, "error", err)
			}
		}
	case errors.Is(err, notifier.ErrRelayDisabled) && stored:
		slog.Warn("Mail relay disabled, lead only stored", "lead", lead.ID)
	default:
		slog.Error("Failed to relay lead", "lead", lead.ID, "stored", stored, "error", err)
		return &lead, fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}

	slog.Info("Contact lead accepted", "lead", lead.ID, "interests", lead.Interests, "relayed", lead.Relayed)
	return &lead, nil
}

// persist stores the lead and trims the collection. Failures are logged and
// reported as false.
func (s *Service) persist(ctx context.Context, lead models.Lead) bool {
	if s.store == nil {
		return false
	}
	if err := s.store.TryCreateLead(ctx, lead); err != nil {
		if errors.Is(err, storage.ErrLeadExists) {
			slog.Warn("Lead ID collision", "lead", lead.ID)
		} else {
			slog.Warn("Failed to store lead", "lead", lead.ID, "error", err)
		}
		return false
	}
	if s.maxLeads > 0 {
		if err := s.store.TrimOldLeads(ctx, s.maxLeads); err != nil {
			slog.Warn("Failed to trim old leads", "error", err)
		}
	}
	return true
}

func normalize(req models.ContactRequest) models.ContactRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.Company = strings.TrimSpace(req.Company)
	req.Website = strings.TrimSpace(req.Website)
	req.Message = strings.TrimSpace(req.Message)

	var interests []string
	for _, tag := range req.Interests {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" && !slices.Contains(interests, tag) {
			interests = append(interests, tag)
		}
	}
	req.Interests = interests
	return req
}
