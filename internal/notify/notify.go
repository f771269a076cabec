// Package notify delivers messages outside the API: email over SMTP, SMS and
// mobile push over SNS, and group registration with the chat provider.
package notify

import (
	"context"
	"errors"
)

// ErrDisabled is returned by a channel that has no configuration.
var ErrDisabled = errors.New("notification channel disabled")

// Email is a single HTML message.
type Email struct {
	To      []string
	Subject string
	HTML    string
}

// Push is an APNS alert plus custom payload keys.
type Push struct {
	Title    string
	Subtitle string
	Body     string
	Category string
	Data     map[string]string
}

type Mailer interface {
	Send(ctx context.Context, e Email) error
}

// Messenger sends SMS and push notifications and registers devices for push.
type Messenger interface {
	SendSMS(ctx context.Context, phone, text string) error
	Push(ctx context.Context, endpointARN string, p Push) error
	// RegisterDevice returns the endpoint ARN for an APNS device token.
	RegisterDevice(ctx context.Context, token string) (string, error)
}

// ChatGroup is a group conversation announced to the chat provider.
type ChatGroup struct {
	Identifier  string `json:"group_identifier"`
	FamilyID    string `json:"family_id"`
	ContactType string `json:"contact_type"`
	ContactID   int64  `json:"contact_id"`
}

type ChatRegistrar interface {
	RegisterGroup(ctx context.Context, g ChatGroup) error
}
