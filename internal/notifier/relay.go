// Package notifier forwards contact leads to the mail relay webhook.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/onlinelabs/website/internal/models"
)

// ErrRelayDisabled is returned when no webhook URL is configured.
var ErrRelayDisabled = errors.New("mail relay disabled")

type Client struct {
	webhookURL  string
	recipient   string
	client      *http.Client
	rateLimiter *rate.Limiter
}

func New(webhookURL, recipient string) *Client {
	return &Client{
		webhookURL:  webhookURL,
		recipient:   recipient,
		client:      &http.Client{Timeout: 10 * time.Second},
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

type relayPayload struct {
	To      string      `json:"to"`
	ReplyTo string      `json:"replyTo"`
	Subject string      `json:"subject"`
	Text    string      `json:"text"`
	Lead    relayedLead `json:"lead"`
}

type relayedLead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company,omitempty"`
	Website   string    `json:"website,omitempty"`
	Message   string    `json:"message"`
	Interests []string  `json:"interests"`
	CreatedAt time.Time `json:"createdAt"`
}

// Relay posts the lead to the webhook once. Any non-2xx response is an
// error carrying the start of the response body.
func (c *Client) Relay(ctx context.Context, lead models.Lead) error {
	if c.webhookURL == "" {
		return ErrRelayDisabled
	}

	body, err := json.Marshal(formatLead(lead, c.recipient))
	if err != nil {
		return fmt.Errorf("failed to marshal relay payload: %w", err)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("mail relay throttled: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	slog.Warn("Mail relay rejected lead", "lead", lead.ID, "status", resp.StatusCode)
	return fmt.Errorf("mail relay status: %s, body: %s", resp.Status, strings.TrimSpace(string(respBody)))
}

func formatLead(lead models.Lead, recipient string) relayPayload {
	var text strings.Builder
	fmt.Fprintf(&text, "Naam: %s\n", lead.Name)
	fmt.Fprintf(&text, "E-mail: %s\n", lead.Email)
	fmt.Fprintf(&text, "Telefoon: %s\n", lead.Phone)
	if lead.Company != "" {
		fmt.Fprintf(&text, "Bedrijf: %s\n", lead.Company)
	}
	if lead.Website != "" {
		fmt.Fprintf(&text, "Website: %s\n", lead.Website)
	}
	if len(lead.Interests) > 0 {
		fmt.Fprintf(&text, "Interesse: %s\n", strings.Join(lead.Interests, ", "))
	}
	fmt.Fprintf(&text, "\n%s\n", lead.Message)

	interests := lead.Interests
	if interests == nil {
		interests = []string{}
	}

	return relayPayload{
		To:      recipient,
		ReplyTo: lead.Email,
		Subject: "Nieuwe aanvraag van " + lead.Name,
		Text:    text.String(),
		Lead: relayedLead{
			ID:        lead.ID,
			Name:      lead.Name,
			Email:     lead.Email,
			Phone:     lead.Phone,
			Company:   lead.Company,
			Website:   lead.Website,
			Message:   lead.Message,
			Interests: interests,
			CreatedAt: lead.CreatedAt,
		},
	}
}
