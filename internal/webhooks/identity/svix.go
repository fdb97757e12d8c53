package identitywebhook

import (
	"encoding/json"
	"fmt"
	"net/http"

	svix "github.com/svix/svix-webhooks/go"

	pkgerrors "github.com/studocs/studocs-backend/pkg/errors"
)

// SvixVerifier checks svix signatures with the shared endpoint secret and
// decodes the verified payload.
type SvixVerifier struct {
	wh *svix.Webhook
}

// NewSvixVerifier builds the production verifier from the provider's signing
// secret.
func NewSvixVerifier(secret string) (*SvixVerifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("webhook signing secret required")
	}
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("init svix verifier: %w", err)
	}
	return &SvixVerifier{wh: wh}, nil
}

// Verify authenticates the delivery and returns the decoded event. An invalid
// or missing signature is a validation error so the provider sees a 4xx and
// does not retry forever with a bad secret.
func (v *SvixVerifier) Verify(payload []byte, headers http.Header) (*Event, error) {
	if err := v.wh.Verify(payload, headers); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid webhook signature")
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode webhook payload")
	}
	return &event, nil
}
