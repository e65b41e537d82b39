package memory

import (
	"context"

	"github.com/mercata/storefront/services/user-service/internal/application/auth"
)

// NoopPublisher satisfies auth.EventPublisher when no broker is available
// (dev environments, unit tests).
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (NoopPublisher) PublishUserRegistered(ctx context.Context, evt auth.UserRegisteredEvent) error {
	return nil
}

func (NoopPublisher) PublishAccountLocked(ctx context.Context, evt auth.AccountLockedEvent) error {
	return nil
}
