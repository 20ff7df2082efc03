package dto

import "github.com/mengeshaster/transcriber-twilio/domain"

type CallListingResponse struct {
	Caller string                        `json:"caller"`
	Calls  []domain.AugmentedCallDetails `json:"calls"`
}
