package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mercata/storefront/services/user-service/internal/domain"
)

// UserRepo is an in-memory credential store used by tests and as the dev
// fallback when no database is configured. The mutex gives every lockout
// update the same single-record atomicity the SQL adapter gets from
// single-statement UPDATEs.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string // email -> userID
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u.ID == "" {
		return domain.User{}, domain.ErrInternal(nil)
	}
	u.Email = normalizeEmail(u.Email)
	if _, exists := r.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *UserRepo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.byID[u.ID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}

	u.Email = normalizeEmail(u.Email)
	if u.Email != old.Email {
		if _, exists := r.byEmail[u.Email]; exists {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		delete(r.byEmail, old.Email)
	}

	u.CreatedAt = old.CreatedAt
	u.UpdatedAt = time.Now()

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound()
	}
	delete(r.byID, id)
	delete(r.byEmail, u.Email)
	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepo) RecordFailedAttempt(ctx context.Context, id string, now time.Time) (int, *time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return 0, nil, domain.ErrUserNotFound()
	}

	attempts, lockedUntil := domain.NextFailureState(u.FailedAttempts, now)
	u.FailedAttempts = attempts
	if lockedUntil != nil {
		u.LockedUntil = lockedUntil
	}
	u.UpdatedAt = now

	r.byID[id] = u
	return u.FailedAttempts, u.LockedUntil, nil
}

func (r *UserRepo) ResetLockout(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.UpdatedAt = time.Now()

	r.byID[id] = u
	return nil
}
