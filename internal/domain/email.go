package domain

import "context"

// Mailer sends one message. Implementations live in adapters/email.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders <name>_subject, <name>.html and <name>.txt with data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// AccountEmailData is what the account templates know about the recipient.
type AccountEmailData struct {
	Email     string
	FirstName string
	Roles     []string
}

// Account notifications.
const (
	TemplateWelcome      = "welcome"
	TemplateRolesChanged = "roles_changed"
)

// EmailService sends account notifications. Callers treat failures as non-fatal.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *AccountEmailData) error
	SendRolesChanged(ctx context.Context, data *AccountEmailData) error
}
