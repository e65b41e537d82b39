package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mercata/storefront/services/user-service/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]string // email -> id

	// injected errors (if set, method returns error)
	getByIDErr    error
	getByEmailErr error
	createErr     error
	updateErr     error
	deleteErr     error
	listErr       error
	recordErr     error
	resetErr      error

	// record calls
	resetIDs   []string
	deletedIDs []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]string{},
	}
}

func (f *fakeUserRepo) put(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u.ID
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	id, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return f.byID[id], nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u.ID
	return u, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return domain.User{}, f.updateErr
	}
	old, ok := f.byID[u.ID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	if u.Email != old.Email {
		if _, exists := f.byEmail[u.Email]; exists {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		delete(f.byEmail, old.Email)
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u.ID
	return u, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrUserNotFound()
	}
	delete(f.byID, id)
	delete(f.byEmail, u.Email)
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) RecordFailedAttempt(ctx context.Context, id string, now time.Time) (int, *time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recordErr != nil {
		return 0, nil, f.recordErr
	}
	u, ok := f.byID[id]
	if !ok {
		return 0, nil, domain.ErrUserNotFound()
	}
	attempts, lockedUntil := domain.NextFailureState(u.FailedAttempts, now)
	u.FailedAttempts = attempts
	if lockedUntil != nil {
		u.LockedUntil = lockedUntil
	}
	f.byID[id] = u
	return u.FailedAttempts, u.LockedUntil, nil
}

func (f *fakeUserRepo) ResetLockout(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resetErr != nil {
		return f.resetErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.FailedAttempts = 0
	u.LockedUntil = nil
	f.byID[id] = u
	f.resetIDs = append(f.resetIDs, id)
	return nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func newFakeHasher() *fakeHasher {
	return &fakeHasher{
		hashFn: func(pw string) (string, error) { return "hash:" + pw, nil },
		compareFn: func(hash, pw string) error {
			if hash == "hash:"+pw {
				return nil
			}
			return errors.New("mismatch")
		},
	}
}

func (f *fakeHasher) Hash(pw string) (string, error) { return f.hashFn(pw) }
func (f *fakeHasher) Compare(hash, pw string) error  { return f.compareFn(hash, pw) }

type fakeSigner struct {
	signErr error
}

func (f *fakeSigner) SignSessionToken(userID string, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	return "tok:" + userID, nil
}

func (f *fakeSigner) VerifySessionToken(token string) (SessionClaims, error) {
	if len(token) > 4 && token[:4] == "tok:" {
		return SessionClaims{UserID: token[4:]}, nil
	}
	return SessionClaims{}, domain.ErrSessionInvalid()
}

type fakePublisher struct {
	mu         sync.Mutex
	registered []UserRegisteredEvent
	locked     []AccountLockedEvent
	err        error
}

func (f *fakePublisher) PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.registered = append(f.registered, evt)
	return nil
}

func (f *fakePublisher) PublishAccountLocked(ctx context.Context, evt AccountLockedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.locked = append(f.locked, evt)
	return nil
}

/*
Helpers
*/

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock(t time.Time) *testClock { return &testClock{t: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakeSigner, *fakePublisher, *testClock) {
	t.Helper()

	users := newFakeUserRepo()
	hasher := newFakeHasher()
	signer := &fakeSigner{}
	pub := &fakePublisher{}
	clock := newTestClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	svc := NewService(users, hasher, signer, pub, Config{SessionTTL: time.Hour}).
		WithClock(clock.Now)

	return svc, users, hasher, signer, pub, clock
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected domain error %q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected domain code %q, got %v", code, err)
	}
}

func domainCode(e *domain.Error) string { return e.Code }
