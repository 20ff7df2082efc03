package inbound

import (
	"context"
	"github.com/mengeshaster/transcriber-twilio/domain"
)

// CallListingPort assembles the per-caller view of captured calls.
type CallListingPort interface {
	List(ctx context.Context, caller string) ([]domain.AugmentedCallDetails, error)
}
