package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// ChannelDelivery reports the outcome of one delivery attempt over an
// external channel. Failures are data, not errors: a rejected or timed-out
// attempt comes back as Accepted == false so the caller can record the flag
// and move on.
type ChannelDelivery struct {
	Accepted bool
	Detail   string
}

// ChannelClient defines the contract for the external email and messaging
// relays. Implementations degrade gracefully: an unconfigured or unreachable
// relay yields a non-accepted delivery, never an error that would interrupt
// fan-out.
type ChannelClient interface {
	// SendEmail attempts delivery of a notification to the user's mailbox.
	SendEmail(ctx context.Context, userID kernel.UUID, subject, body string) ChannelDelivery

	// SendMessage attempts delivery of a notification to the user's
	// messaging account.
	SendMessage(ctx context.Context, userID kernel.UUID, text string) ChannelDelivery
}
