package notify

import (
	"fmt"
	"strings"
)

// Config holds the operator notification channels. SMS is the primary
// channel; the email copy is enabled by setting a SendGrid API key.
type Config struct {
	// TwilioAccountSID and TwilioAuthToken are the Twilio credentials.
	TwilioAccountSID string `mapstructure:"twilio_account_sid" default:""`
	TwilioAuthToken  string `mapstructure:"twilio_auth_token" default:""`
	// FromNumber is the Twilio sender number (E.164).
	FromNumber string `mapstructure:"from_number" default:""`
	// SMSRecipients is the fixed operator roster, comma-separated.
	SMSRecipients string `mapstructure:"sms_recipients" default:""`

	// SendgridAPIKey enables an email copy of every notification when set.
	SendgridAPIKey string `mapstructure:"sendgrid_api_key" default:""`
	// FromEmail is the sender address for the email copy.
	FromEmail string `mapstructure:"from_email" default:""`
	// EmailRecipients is the email roster, comma-separated.
	EmailRecipients string `mapstructure:"email_recipients" default:""`
}

// SMSNumbers returns the parsed SMS roster.
func (c Config) SMSNumbers() []string {
	return splitList(c.SMSRecipients)
}

// EmailAddresses returns the parsed email roster.
func (c Config) EmailAddresses() []string {
	return splitList(c.EmailRecipients)
}

// EmailEnabled reports whether the email copy channel is configured.
func (c Config) EmailEnabled() bool {
	return c.SendgridAPIKey != ""
}

// Validate checks that the SMS channel is fully configured, and that the
// email channel is fully configured whenever it is enabled.
func (c Config) Validate() error {
	if c.TwilioAccountSID == "" || c.TwilioAuthToken == "" || c.FromNumber == "" {
		return fmt.Errorf("notify: twilio_account_sid, twilio_auth_token and from_number are required")
	}
	if len(c.SMSNumbers()) == 0 {
		return fmt.Errorf("notify: sms_recipients is required")
	}
	if c.EmailEnabled() && (c.FromEmail == "" || len(c.EmailAddresses()) == 0) {
		return fmt.Errorf("notify: from_email and email_recipients are required when sendgrid_api_key is set")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
