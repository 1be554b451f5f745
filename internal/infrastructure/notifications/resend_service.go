package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// ResendServiceImpl implements domain.EmailSender with the Resend API
type ResendServiceImpl struct {
	client *resend.Client
	log    zerolog.Logger
}

// NewResendService creates an email sender. Without an API key messages are
// logged and given a local id.
func NewResendService(apiKey string, log zerolog.Logger) *ResendServiceImpl {
	s := &ResendServiceImpl{log: log.With().Str("component", "email").Logger()}
	if apiKey != "" {
		s.client = resend.NewClient(apiKey)
	}
	return s
}

// SendEmail implements domain.EmailSender
func (s *ResendServiceImpl) SendEmail(ctx context.Context, msg domain.EmailMessage) (string, error) {
	if len(msg.To) == 0 {
		return "", domain.Invalid("to", "at least one recipient is required")
	}
	if s.client == nil {
		id := "mock_" + uuid.NewString()
		s.log.Info().Str("id", id).Strs("to", msg.To).Str("subject", msg.Subject).Msg("mock email")
		return id, nil
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	s.log.Debug().Str("id", sent.Id).Strs("to", msg.To).Msg("email sent")
	return sent.Id, nil
}
