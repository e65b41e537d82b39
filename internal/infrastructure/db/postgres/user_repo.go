package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mercata/storefront/services/user-service/internal/domain"
)

const userColumns = `id, username, email, password_hash, failed_attempts, locked_until, is_admin, created_at, updated_at`

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ---------- helpers ----------

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserRow(row rowScanner) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Username,
		&ur.Email,
		&ur.PasswordHash,
		&ur.FailedAttempts,
		&ur.LockedUntil,
		&ur.IsAdmin,
		&ur.CreatedAt,
		&ur.UpdatedAt,
	)
	return ur, err
}

func toDomainUser(ur userRow) domain.User {
	u := domain.User{
		ID:             ur.ID,
		Username:       ur.Username,
		Email:          ur.Email,
		PasswordHash:   ur.PasswordHash,
		FailedAttempts: ur.FailedAttempts,
		IsAdmin:        ur.IsAdmin,
		CreatedAt:      ur.CreatedAt,
		UpdatedAt:      ur.UpdatedAt,
	}
	if ur.LockedUntil.Valid {
		t := ur.LockedUntil.Time
		u.LockedUntil = &t
	}
	return u
}

func isDuplicate(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "duplicate")
}

// ---------- auth.UserRepo ----------

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
LIMIT 1;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeEmail(u.Email)
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	if u.Username == "" {
		return domain.User{}, domain.ErrMissingField("username")
	}
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}

	const q = `
INSERT INTO users (id, username, email, password_hash, is_admin)
VALUES ($1,$2,$3,$4,$5)
RETURNING ` + userColumns + `;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q,
		u.ID, u.Username, u.Email, u.PasswordHash, u.IsAdmin,
	))
	if err != nil {
		if isDuplicate(err) {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeEmail(u.Email)
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	const q = `
UPDATE users
SET username = $2,
    email = $3,
    password_hash = $4,
    is_admin = $5,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + userColumns + `;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q,
		u.ID, u.Username, u.Email, u.PasswordHash, u.IsAdmin,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		if isDuplicate(err) {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrMissingField("id")
	}

	const q = `DELETE FROM users WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
ORDER BY created_at;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		ur, err := scanUserRow(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, toDomainUser(ur))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

// RecordFailedAttempt is a single UPDATE so two concurrent failures each
// observe a distinct counter value; the lock is set in the same statement
// the moment the incremented counter reaches the threshold.
func (r *UserRepo) RecordFailedAttempt(ctx context.Context, id string, now time.Time) (int, *time.Time, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, nil, domain.ErrMissingField("id")
	}

	const q = `
UPDATE users
SET failed_attempts = failed_attempts + 1,
    locked_until = CASE WHEN failed_attempts + 1 >= $2 THEN $3 ELSE locked_until END,
    updated_at = NOW()
WHERE id = $1
RETURNING failed_attempts, locked_until;
`
	lockUntil := now.Add(domain.LockoutDuration)

	var attempts int
	var lockedUntil sql.NullTime
	err := r.db.QueryRowContext(ctx, q, id, domain.LockoutThreshold, lockUntil).
		Scan(&attempts, &lockedUntil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, domain.ErrUserNotFound()
		}
		return 0, nil, domain.ErrDBUnavailable(err)
	}

	if lockedUntil.Valid {
		t := lockedUntil.Time
		return attempts, &t, nil
	}
	return attempts, nil, nil
}

func (r *UserRepo) ResetLockout(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrMissingField("id")
	}

	const q = `
UPDATE users
SET failed_attempts = 0,
    locked_until = NULL,
    updated_at = NOW()
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}
