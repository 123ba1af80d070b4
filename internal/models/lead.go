package models

import "time"

// Interests is the closed set of interest tags a lead can select.
var Interests = []string{"seo", "sea", "social", "content", "web", "data", "training", "geo"}

// ContactRequest is the contact form payload as posted by the browser.
type ContactRequest struct {
	Name      string   `json:"name" validate:"required,max=120"`
	Email     string   `json:"email" validate:"required,email"`
	Phone     string   `json:"phone" validate:"required,min=6,max=32"`
	Company   string   `json:"company" validate:"max=120"`
	Website   string   `json:"website" validate:"omitempty,url"`
	Message   string   `json:"message" validate:"required,max=5000"`
	Interests []string `json:"interests" validate:"max=8,dive,oneof=seo sea social content web data training geo"`

	// Set by the HTTP layer, never decoded from the body.
	UserAgent string `json:"-"`
	RemoteIP  string `json:"-"`
}

// Lead is a stored contact funnel submission.
type Lead struct {
	ID        string    `firestore:"-"`
	Name      string    `firestore:"name"`
	Email     string    `firestore:"email"`
	Phone     string    `firestore:"phone"`
	Company   string    `firestore:"company,omitempty"`
	Website   string    `firestore:"website,omitempty"`
	Message   string    `firestore:"message"`
	Interests []string  `firestore:"interests"`
	CreatedAt time.Time `firestore:"createdAt"`
	UserAgent string    `firestore:"userAgent,omitempty"`
	RemoteIP  string    `firestore:"remoteIP,omitempty"`
	Relayed   bool      `firestore:"relayed"`
}
