package identitywebhook

import (
	"net/http"
)

// EventType is the identity-provider event name.
type EventType string

const (
	EventUserCreated EventType = "user.created"
	EventUserUpdated EventType = "user.updated"
	EventUserDeleted EventType = "user.deleted"
)

// EmailAddress is one address attached to an identity-provider profile.
type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// EventData is the profile snapshot inside a provider event. Field names
// follow the provider's wire format, not our API conventions.
type EventData struct {
	ID             string         `json:"id"`
	FirstName      *string        `json:"first_name"`
	LastName       *string        `json:"last_name"`
	ImageURL       *string        `json:"image_url"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
}

// Event is one verified identity-provider webhook delivery.
type Event struct {
	Type EventType `json:"type"`
	Data EventData `json:"data"`
}

// Verifier authenticates a raw webhook delivery and decodes it. Injecting it
// keeps signature schemes out of the controller and lets tests substitute a
// pass-through implementation.
type Verifier interface {
	Verify(payload []byte, headers http.Header) (*Event, error)
}
