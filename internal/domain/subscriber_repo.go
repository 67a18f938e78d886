package domain

import (
	"context"
	"time"
)

// Subscriber is a chat that gets a message when the schedule changes.
type Subscriber struct {
	ChatID int64
	Name   string
	Since  time.Time
}

type SubscriberRepo interface {
	SaveSubscriber(ctx context.Context, s Subscriber) error
	ListSubscribers(ctx context.Context) ([]Subscriber, error)
	RemoveSubscriber(ctx context.Context, chatID int64) error
}
