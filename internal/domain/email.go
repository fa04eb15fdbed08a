package domain

import "context"

// Mailer sends a single email. Implementations: SES, noop.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// JoinConfirmationEmailData carries the fields rendered into the
// join-confirmation email sent after a successful join.
type JoinConfirmationEmailData struct {
	Email       string
	AccountName string
	EventTitle  string
	SiteRegion  string
}

// EmailService renders and sends application emails. Sending is best effort;
// callers must not fail the triggering operation on email errors.
type EmailService interface {
	SendJoinConfirmation(ctx context.Context, data *JoinConfirmationEmailData) error
}
