package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/westley-wess/portfolio/config"
	"github.com/westley-wess/portfolio/errs"
)

// MessageCreator is the part of the Twilio REST API the SMS sender uses
type MessageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSSender texts hire request confirmations through Twilio
type SMSSender struct {
	api  MessageCreator
	from string
}

// NewSMSSender builds a sender from TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and
// TWILIO_FROM_NUMBER. It returns nil when any of them is unset.
func NewSMSSender(cfg map[string]string) *SMSSender {
	sid := config.GetString(cfg, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(cfg, "TWILIO_AUTH_TOKEN", "")
	from := config.GetString(cfg, "TWILIO_FROM_NUMBER", "")
	if sid == "" || token == "" || from == "" {
		return nil
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
	})
	return NewSMSSenderWithAPI(client.Api, from)
}

func NewSMSSenderWithAPI(api MessageCreator, from string) *SMSSender {
	return &SMSSender{api: api, from: from}
}

// Send texts body to the given number. A nil sender reports the missing
// configuration.
func (s *SMSSender) Send(ctx context.Context, to, body string) error {
	if s == nil {
		return errs.NewConfigMissingError("TWILIO_ACCOUNT_SID")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		notificationsSent.WithLabelValues("sms", "failed").Inc()
		return fmt.Errorf("failed to send SMS via Twilio: %w", err)
	}
	notificationsSent.WithLabelValues("sms", "sent").Inc()

	if resp != nil && resp.Sid != nil {
		log.Info().Str("messageSid", *resp.Sid).Msg("Successfully sent SMS via Twilio")
	}
	return nil
}
