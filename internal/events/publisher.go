// Package events publishes expense lifecycle messages to the message broker.
package events

import (
	"context"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
)

// Publisher emits expense lifecycle events
type Publisher interface {
	PublishExpenseCreated(ctx context.Context, expense *models.Expense) error
	PublishExpenseDeleted(ctx context.Context, userID, expenseID uuid.UUID) error
	Close() error
}

// NoopPublisher discards every event. It is used when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (NoopPublisher) PublishExpenseCreated(ctx context.Context, expense *models.Expense) error {
	return nil
}

func (NoopPublisher) PublishExpenseDeleted(ctx context.Context, userID, expenseID uuid.UUID) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
