package services

import (
	"context"

	"github.com/rewardof/FieldBookingApp/internal/models"
)

// JSONPublisher is satisfied by *mq.Publisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// AMQPEventPublisher routes each booking event by its type.
type AMQPEventPublisher struct {
	pub JSONPublisher
}

func NewAMQPEventPublisher(pub JSONPublisher) *AMQPEventPublisher {
	return &AMQPEventPublisher{pub: pub}
}

func (p *AMQPEventPublisher) PublishBookingEvent(ctx context.Context, event models.BookingEvent) error {
	return p.pub.PublishJSON(ctx, string(event.Type), event)
}
