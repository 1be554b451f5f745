package notifications

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioServiceImpl implements domain.SMSSender
type TwilioServiceImpl struct {
	client     *twilio.RestClient
	fromNumber string
	log        zerolog.Logger
}

// NewTwilioService creates a new Twilio SMS sender
func NewTwilioService(accountSID, authToken, fromNumber string, log zerolog.Logger) *TwilioServiceImpl {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioServiceImpl{
		client:     client,
		fromNumber: fromNumber,
		log:        log.With().Str("component", "sms").Logger(),
	}
}

// Configured reports whether real messages will be sent
func (t *TwilioServiceImpl) Configured() bool {
	return t.fromNumber != ""
}

// SendSMS implements domain.SMSSender
func (t *TwilioServiceImpl) SendSMS(ctx context.Context, to, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// If credentials are not configured, log instead of sending
	if !t.Configured() {
		t.log.Info().Str("to", to).Str("body", message).Msg("mock sms")
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	if resp.Sid != nil {
		t.log.Debug().Str("sid", *resp.Sid).Msg("sms sent")
	}
	return nil
}
