package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const emailSubject = "Door code update"

// smsSender is the slice of the Twilio API the service uses. Satisfied by
// *twilio.RestClient's Api service; replaced by a double in tests.
type smsSender interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// emailSender is the slice of the SendGrid client the service uses.
type emailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// Service implements reconcile.Notifier: every message goes to the whole
// SMS roster and, when configured, to the email roster as well.
type Service struct {
	sms       smsSender
	email     emailSender
	fromPhone string
	fromEmail string
	numbers   []string
	addresses []string
	log       *zap.Logger
}

// NewService creates the notifier with a live Twilio client and, when a
// SendGrid key is configured, a live SendGrid client.
func NewService(cfg Config, log *zap.Logger) *Service {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})

	s := &Service{
		sms:       client.Api,
		fromPhone: cfg.FromNumber,
		numbers:   cfg.SMSNumbers(),
		log:       log,
	}
	if cfg.EmailEnabled() {
		s.email = sendgrid.NewSendClient(cfg.SendgridAPIKey)
		s.fromEmail = cfg.FromEmail
		s.addresses = cfg.EmailAddresses()
	}
	return s
}

// Notify sends message to every configured recipient. Recipients are
// independent: a failed send is captured and the remaining recipients are
// still attempted. The combined error covers all failed sends.
func (s *Service) Notify(ctx context.Context, message string) error {
	var errs error

	for _, to := range s.numbers {
		params := &openapi.CreateMessageParams{}
		params.SetTo(to)
		params.SetFrom(s.fromPhone)
		params.SetBody(message)

		if _, err := s.sms.CreateMessage(params); err != nil {
			s.log.Warn("SMS send failed", zap.String("to", to), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("sms to %s: %w", to, err))
			continue
		}
		s.log.Debug("SMS sent", zap.String("to", to))
	}

	if s.email != nil {
		from := mail.NewEmail("", s.fromEmail)
		for _, to := range s.addresses {
			m := mail.NewSingleEmail(from, emailSubject, mail.NewEmail("", to), message, message)
			resp, err := s.email.SendWithContext(ctx, m)
			if err != nil {
				s.log.Warn("Email send failed", zap.String("to", to), zap.Error(err))
				errs = multierr.Append(errs, fmt.Errorf("email to %s: %w", to, err))
				continue
			}
			if resp != nil && resp.StatusCode >= 300 {
				s.log.Warn("Email send rejected", zap.String("to", to), zap.Int("status", resp.StatusCode))
				errs = multierr.Append(errs, fmt.Errorf("email to %s: status %d", to, resp.StatusCode))
				continue
			}
			s.log.Debug("Email sent", zap.String("to", to))
		}
	}

	return errs
}
