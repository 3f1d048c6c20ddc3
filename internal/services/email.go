package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"projectledger/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

func (s *emailService) SendWelcomeMessage(ctx context.Context, data *domain.AccountEmailData) error {
	return s.send(ctx, domain.TemplateWelcome, data)
}

func (s *emailService) SendRolesChanged(ctx context.Context, data *domain.AccountEmailData) error {
	return s.send(ctx, domain.TemplateRolesChanged, data)
}

func (s *emailService) send(ctx context.Context, template string, data *domain.AccountEmailData) error {
	if data == nil || data.Email == "" {
		return errors.New("email: recipient is required")
	}
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", template, err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("send %s: %w", template, err)
	}
	s.logger.InfoContext(ctx, "email sent", "template", template, "to", data.Email)
	return nil
}
