package service

import (
	"context"
	"time"

	"shift-tracker/internal/domain"
)

// SubscriberService keeps the chats that want schedule change messages.
type SubscriberService struct {
	Repo domain.SubscriberRepo
	Now  func() time.Time
}

func NewSubscriberService(repo domain.SubscriberRepo) *SubscriberService {
	return &SubscriberService{Repo: repo, Now: time.Now}
}

func (s *SubscriberService) Subscribe(ctx context.Context, chatID int64, name string) error {
	return s.Repo.SaveSubscriber(ctx, domain.Subscriber{ChatID: chatID, Name: name, Since: s.Now()})
}

func (s *SubscriberService) Unsubscribe(ctx context.Context, chatID int64) error {
	return s.Repo.RemoveSubscriber(ctx, chatID)
}

func (s *SubscriberService) List(ctx context.Context) ([]domain.Subscriber, error) {
	return s.Repo.ListSubscribers(ctx)
}
