package notify

import (
	"context"
	"log/slog"
)

type DeliveryStatus string

const (
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
	DeliveryPending   DeliveryStatus = "pending"
)

type DeliveryResult struct {
	Status DeliveryStatus
	Detail string
}

// SMSGateway delivers a free-text message to a phone number. The result is
// shown to the operator, so implementations must report failure instead of
// swallowing it.
type SMSGateway interface {
	Send(ctx context.Context, phone, text string) (DeliveryResult, error)
}

// LogGateway is the development gateway: it writes the message to the log and
// reports it as delivered. A production deployment swaps in a real SMS
// provider behind the same interface.
type LogGateway struct{}

func (LogGateway) Send(ctx context.Context, phone, text string) (DeliveryResult, error) {
	slog.Info("SMS (stub)", "phone", phone, "text", text)
	return DeliveryResult{Status: DeliveryDelivered, Detail: "logged"}, nil
}
