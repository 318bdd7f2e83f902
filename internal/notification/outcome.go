package notification

import "fmt"

type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
)

type OutcomeStatus string

const (
	OutcomeSent    OutcomeStatus = "sent"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeFailed  OutcomeStatus = "failed"
)

// Outcome is the result of one channel attempt for one lead. It lives for a
// single dispatch and is only logged, never stored.
type Outcome struct {
	Channel   Channel       `json:"channel"`
	LeadID    string        `json:"lead_id"`
	Status    OutcomeStatus `json:"status"`
	Recipient string        `json:"recipient,omitempty"`
	Reason    string        `json:"reason,omitempty"`
}

type Result struct {
	Email    Outcome `json:"email"`
	WhatsApp Outcome `json:"whatsapp"`
}

// ChannelDeliveryError wraps a provider failure with the channel and recipient.
type ChannelDeliveryError struct {
	Channel   Channel
	Recipient string
	Err       error
}

func (e *ChannelDeliveryError) Error() string {
	return fmt.Sprintf("%s delivery to %s failed: %v", e.Channel, e.Recipient, e.Err)
}

func (e *ChannelDeliveryError) Unwrap() error {
	return e.Err
}
