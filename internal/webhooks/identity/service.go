package identitywebhook

import (
	"context"
	"strings"

	"github.com/studocs/studocs-backend/internal/users"
	pkgerrors "github.com/studocs/studocs-backend/pkg/errors"
)

type directory interface {
	Sync(ctx context.Context, input users.SyncInput) (*users.UserDTO, error)
	DeleteByExternalID(ctx context.Context, externalID string) error
}

// Service applies verified identity-provider events to the user directory.
type Service struct {
	users directory
}

func NewService(users directory) (*Service, error) {
	if users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "users service required")
	}
	return &Service{users: users}, nil
}

// HandleEvent routes one verified event. Unknown event types are acknowledged
// without action so new provider events never cause retry storms.
func (s *Service) HandleEvent(ctx context.Context, event *Event) error {
	if event == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "event required")
	}
	if strings.TrimSpace(event.Data.ID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "event data id required")
	}

	switch event.Type {
	case EventUserCreated, EventUserUpdated:
		_, err := s.users.Sync(ctx, syncInputFromEvent(event))
		return err
	case EventUserDeleted:
		err := s.users.DeleteByExternalID(ctx, event.Data.ID)
		// A delete for an identity we never stored is already done.
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil
		}
		return err
	default:
		return nil
	}
}

func syncInputFromEvent(event *Event) users.SyncInput {
	name := displayName(event.Data.FirstName, event.Data.LastName)
	input := users.SyncInput{
		ExternalID: event.Data.ID,
		Name:       &name,
		AvatarURL:  event.Data.ImageURL,
	}
	if len(event.Data.EmailAddresses) > 0 {
		email := event.Data.EmailAddresses[0].EmailAddress
		input.Email = &email
	}
	return input
}

// displayName joins the non-blank name parts. A fully blank result is handed
// to the directory as-is, which substitutes its placeholder.
func displayName(first, last *string) string {
	parts := make([]string, 0, 2)
	for _, p := range []*string{first, last} {
		if p == nil {
			continue
		}
		if trimmed := strings.TrimSpace(*p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
