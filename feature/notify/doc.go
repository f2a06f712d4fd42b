// Package notify delivers reconciliation notifications to the operator
// roster.
//
// SMS via Twilio is the primary channel. An email copy via SendGrid can be
// enabled by configuring a SendGrid API key; both channels receive the same
// message body. Each recipient is an independent delivery attempt: one
// failed send never blocks the rest of the roster.
package notify
