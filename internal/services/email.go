package services

import (
	"context"
	"fmt"
	"log/slog"

	"courtside/internal/domain"
)

type emailService struct {
	mailer domain.Mailer
	logger *slog.Logger
}

// NewEmailService creates an EmailService that renders application emails and
// sends them through the given mailer.
func NewEmailService(mailer domain.Mailer, logger *slog.Logger) domain.EmailService {
	return &emailService{
		mailer: mailer,
		logger: logger,
	}
}

func (s *emailService) SendJoinConfirmation(ctx context.Context, data *domain.JoinConfirmationEmailData) error {
	subject := fmt.Sprintf("You're in: %s", data.EventTitle)
	text := fmt.Sprintf(
		"Hi %s,\n\nYour participation in %q (%s) is confirmed.\n\nSee you on court!",
		data.AccountName, data.EventTitle, data.SiteRegion,
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your participation in <strong>%s</strong> (%s) is confirmed.</p><p>See you on court!</p>",
		data.AccountName, data.EventTitle, data.SiteRegion,
	)
	if err := s.mailer.Send(data.Email, subject, html, text); err != nil {
		s.logger.ErrorContext(ctx, "join confirmation email failed", "to", data.Email, "event", data.EventTitle, "err", err)
		return fmt.Errorf("send join confirmation: %w", err)
	}
	return nil
}
