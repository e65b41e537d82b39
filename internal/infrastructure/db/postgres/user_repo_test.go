package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mercata/storefront/services/user-service/internal/domain"
)

var userCols = []string{
	"id", "username", "email", "password_hash",
	"failed_attempts", "locked_until", "is_admin", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepo(db), mock
}

func sampleRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(userCols).
		AddRow("u1", "bob", "b@x.com", "$2a$10$hash", 0, nil, false, now, now)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM users\s+WHERE email = \$1`).
		WithArgs("b@x.com").
		WillReturnRows(sampleRow(now))

	u, err := repo.GetByEmail(context.Background(), "  B@X.com ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.ID != "u1" || u.Username != "bob" || u.LockedUntil != nil {
		t.Fatalf("unexpected user %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users\s+WHERE email = \$1`).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	if !domain.Is(err, "user_not_found") {
		t.Fatalf("expected user_not_found, got %v", err)
	}
}

func TestUserRepo_Create_Duplicate(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("u1", "bob", "b@x.com", "hash", false).
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

	_, err := repo.Create(context.Background(), domain.User{
		ID: "u1", Username: "bob", Email: "b@x.com", PasswordHash: "hash",
	})
	if !domain.Is(err, "email_already_exists") {
		t.Fatalf("expected email_already_exists, got %v", err)
	}
}

func TestUserRepo_Create_MissingFields(t *testing.T) {
	t.Parallel()

	repo, _ := newMockRepo(t)

	_, err := repo.Create(context.Background(), domain.User{ID: "u1", Email: "b@x.com"})
	if !domain.Is(err, "missing_field") {
		t.Fatalf("expected missing_field, got %v", err)
	}
}

func TestUserRepo_RecordFailedAttempt_BelowThreshold(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`UPDATE users\s+SET failed_attempts = failed_attempts \+ 1`).
		WithArgs("u1", domain.LockoutThreshold, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"failed_attempts", "locked_until"}).AddRow(1, nil))

	attempts, lockedUntil, err := repo.RecordFailedAttempt(context.Background(), "u1", now)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if attempts != 1 || lockedUntil != nil {
		t.Fatalf("got attempts=%d until=%v", attempts, lockedUntil)
	}
}

func TestUserRepo_RecordFailedAttempt_TripsLock(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	now := time.Now()
	lockUntil := now.Add(domain.LockoutDuration)

	mock.ExpectQuery(`UPDATE users\s+SET failed_attempts = failed_attempts \+ 1`).
		WithArgs("u1", domain.LockoutThreshold, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"failed_attempts", "locked_until"}).AddRow(3, lockUntil))

	attempts, lockedUntil, err := repo.RecordFailedAttempt(context.Background(), "u1", now)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("got attempts=%d", attempts)
	}
	if lockedUntil == nil || !lockedUntil.Equal(lockUntil) {
		t.Fatalf("expected lock, got %v", lockedUntil)
	}
}

func TestUserRepo_RecordFailedAttempt_UnknownUser(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`UPDATE users\s+SET failed_attempts = failed_attempts \+ 1`).
		WithArgs("ghost", domain.LockoutThreshold, sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	_, _, err := repo.RecordFailedAttempt(context.Background(), "ghost", time.Now())
	if !domain.Is(err, "user_not_found") {
		t.Fatalf("expected user_not_found, got %v", err)
	}
}

func TestUserRepo_ResetLockout(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE users\s+SET failed_attempts = 0`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ResetLockout(context.Background(), "u1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
}

func TestUserRepo_ResetLockout_UnknownUser(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE users\s+SET failed_attempts = 0`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ResetLockout(context.Background(), "ghost")
	if !domain.Is(err, "user_not_found") {
		t.Fatalf("expected user_not_found, got %v", err)
	}
}

func TestUserRepo_Delete(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestUserRepo_List(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	now := time.Now()
	lock := now.Add(time.Minute)

	rows := sqlmock.NewRows(userCols).
		AddRow("u1", "bob", "b@x.com", "h", 0, nil, false, now, now).
		AddRow("u2", "ann", "a@x.com", "h", 3, lock, true, now, now)

	mock.ExpectQuery(`SELECT (.+) FROM users\s+ORDER BY created_at`).
		WillReturnRows(rows)

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[1].LockedUntil == nil || !users[1].IsAdmin {
		t.Fatalf("unexpected second user %+v", users[1])
	}
}

func TestUserRepo_Update_WritesAllMutableFields(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`UPDATE users\s+SET username = \$2`).
		WithArgs("u1", "bobby", "new@x.com", "hash2", true).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u1", "bobby", "new@x.com", "hash2", 0, nil, true, now, now))

	u, err := repo.Update(context.Background(), domain.User{
		ID: "u1", Username: "bobby", Email: "NEW@x.com", PasswordHash: "hash2", IsAdmin: true,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Username != "bobby" || !u.IsAdmin {
		t.Fatalf("unexpected user %+v", u)
	}
}
