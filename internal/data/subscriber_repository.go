package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const subscriberColumns = `id, email, active, token, subscribed_at, unsubscribed_at`

// SubscriberRepository handles database operations for newsletter subscribers.
type SubscriberRepository struct {
	db *sqlx.DB
}

// NewSubscriberRepository creates a new SubscriberRepository.
func NewSubscriberRepository(db *sqlx.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// List returns every subscriber, most recent first.
func (r *SubscriberRepository) List(ctx context.Context) ([]Subscriber, error) {
	subs := []Subscriber{}
	query := "SELECT " + subscriberColumns + " FROM newsletter_subscribers ORDER BY subscribed_at DESC, id DESC"
	if err := r.db.SelectContext(ctx, &subs, query); err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subs, nil
}

// GetByEmail retrieves a subscriber by email address.
func (r *SubscriberRepository) GetByEmail(ctx context.Context, email string) (*Subscriber, error) {
	return r.getOne(ctx, "email", email)
}

// GetByToken retrieves a subscriber by unsubscribe token.
func (r *SubscriberRepository) GetByToken(ctx context.Context, token string) (*Subscriber, error) {
	return r.getOne(ctx, "token", token)
}

func (r *SubscriberRepository) getOne(ctx context.Context, column string, value interface{}) (*Subscriber, error) {
	var s Subscriber
	query := "SELECT " + subscriberColumns + " FROM newsletter_subscribers WHERE " + column + " = ?"
	if err := r.db.GetContext(ctx, &s, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subscriber by %s: %w", column, err)
	}
	return &s, nil
}

// Create inserts an active subscriber.
func (r *SubscriberRepository) Create(ctx context.Context, s *Subscriber) error {
	s.Active = true
	s.SubscribedAt = time.Now().UTC()
	s.UnsubscribedAt = nil

	query := `INSERT INTO newsletter_subscribers (email, active, token, subscribed_at, unsubscribed_at)
		VALUES (:email, :active, :token, :subscribed_at, :unsubscribed_at)`
	result, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert subscriber: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	s.ID = id
	return nil
}

// Reactivate marks a previously unsubscribed row active again with a fresh token.
func (r *SubscriberRepository) Reactivate(ctx context.Context, id int64, token string) error {
	query := `UPDATE newsletter_subscribers SET active = ?, token = ?, subscribed_at = ?, unsubscribed_at = NULL
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, true, token, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to reactivate subscriber: %w", err)
	}
	return expectAffected(result)
}

// Deactivate marks a subscriber inactive and records when.
func (r *SubscriberRepository) Deactivate(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE newsletter_subscribers SET active = ?, unsubscribed_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, false, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate subscriber: %w", err)
	}
	return expectAffected(result)
}

// Delete removes a subscriber by its ID.
func (r *SubscriberRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM newsletter_subscribers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete subscriber: %w", err)
	}
	return expectAffected(result)
}

// Stats returns the total, active and recent subscriber counts.
// Recent means subscribed at or after since.
func (r *SubscriberRepository) Stats(ctx context.Context, since time.Time) (NewsletterStats, error) {
	var stats NewsletterStats
	query := `SELECT COUNT(*) AS total,
		COALESCE(SUM(CASE WHEN active THEN 1 ELSE 0 END), 0) AS active,
		COALESCE(SUM(CASE WHEN subscribed_at >= ? THEN 1 ELSE 0 END), 0) AS recent
		FROM newsletter_subscribers`
	if err := r.db.GetContext(ctx, &stats, query, since.UTC()); err != nil {
		return NewsletterStats{}, fmt.Errorf("failed to compute newsletter stats: %w", err)
	}
	return stats, nil
}
