package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-portfolio-app/internal/data"
	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/validation"

	"github.com/google/uuid"
)

// RecentWindow is how far back a subscription counts as recent.
const RecentWindow = 30 * 24 * time.Hour

// SubscriberRepository defines the interface for database operations on subscribers.
type SubscriberRepository interface {
	List(ctx context.Context) ([]data.Subscriber, error)
	GetByEmail(ctx context.Context, email string) (*data.Subscriber, error)
	GetByToken(ctx context.Context, token string) (*data.Subscriber, error)
	Create(ctx context.Context, s *data.Subscriber) error
	Reactivate(ctx context.Context, id int64, token string) error
	Deactivate(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, since time.Time) (data.NewsletterStats, error)
}

// NewsletterService manages newsletter subscriptions.
type NewsletterService struct {
	repo     SubscriberRepository
	validate *validation.Validator
	log      logger.Logger
	now      func() time.Time
	newToken func() string
}

// NewNewsletterService creates a new NewsletterService.
func NewNewsletterService(repo SubscriberRepository, v *validation.Validator, log logger.Logger) *NewsletterService {
	return &NewsletterService{
		repo:     repo,
		validate: v,
		log:      log,
		now:      time.Now,
		newToken: uuid.NewString,
	}
}

// List returns all subscribers together with the aggregate counters.
func (s *NewsletterService) List(ctx context.Context) ([]data.Subscriber, data.NewsletterStats, error) {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, data.NewsletterStats{}, err
	}
	stats, err := s.repo.Stats(ctx, s.now().Add(-RecentWindow))
	if err != nil {
		return nil, data.NewsletterStats{}, err
	}
	return subs, stats, nil
}

// Delete removes a subscriber permanently.
func (s *NewsletterService) Delete(ctx context.Context, id int64) error {
	return mapRepoErr(s.repo.Delete(ctx, id), ErrEmailExists)
}

// Subscribe registers an email address. Subscribing an active address is a
// no-op; an inactive one is reactivated with a fresh token. issued reports
// whether a new unsubscribe token was generated.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (sub *data.Subscriber, issued bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Var(email, "required,email,max=255"); err != nil {
		return nil, false, &ValidationError{Details: map[string]string{"email": "email"}}
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing.Active:
		return existing, false, nil
	case err == nil:
		token := s.newToken()
		if err := s.repo.Reactivate(ctx, existing.ID, token); err != nil {
			return nil, false, mapRepoErr(err, ErrEmailExists)
		}
		s.log.With(map[string]interface{}{"subscriber_id": existing.ID}).Info("subscriber reactivated")
		sub, err = s.repo.GetByEmail(ctx, email)
		if err != nil {
			return nil, false, err
		}
		return sub, true, nil
	case !errors.Is(err, data.ErrNotFound):
		return nil, false, err
	}

	sub = &data.Subscriber{Email: email, Token: s.newToken()}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, false, mapRepoErr(err, ErrEmailExists)
	}
	s.log.With(map[string]interface{}{"subscriber_id": sub.ID}).Info("new subscriber")
	return sub, true, nil
}

// Unsubscribe deactivates the subscriber owning token. Repeating it is harmless.
func (s *NewsletterService) Unsubscribe(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrNotFound
	}
	sub, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return mapRepoErr(err, ErrEmailExists)
	}
	if !sub.Active {
		return nil
	}
	return mapRepoErr(s.repo.Deactivate(ctx, sub.ID, s.now()), ErrEmailExists)
}
