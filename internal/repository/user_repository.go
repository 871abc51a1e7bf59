package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/realty-service/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByResetDigest(ctx context.Context, digest string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	MarkVerified(ctx context.Context, id string) error
	SetResetTicket(ctx context.Context, id, digest string, expires time.Time) error
	ResetPassword(ctx context.Context, id, passwordHash string) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `
        id, username, email, password_hash, first_name, last_name, user_type_id,
        is_verified, last_login, password_reset_token, password_reset_expires,
        created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, email, password_hash, first_name, last_name, user_type_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, is_verified, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.RoleID,
	).Scan(&user.ID, &user.Verified, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getWhere(ctx, "id=$1", id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getWhere(ctx, "username=$1", username)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getWhere(ctx, "email=$1", email)
}

func (r *userRepository) GetByResetDigest(ctx context.Context, digest string) (*domain.User, error) {
	return r.getWhere(ctx, "password_reset_token=$1", digest)
}

func (r *userRepository) getWhere(ctx context.Context, cond string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + cond

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.RoleID,
		&user.Verified,
		&user.LastLogin,
		&user.ResetTokenDigest,
		&user.ResetTokenExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	const query = `UPDATE users SET last_login=$1, updated_at=NOW() WHERE id=$2`
	return r.exec(ctx, query, at, id)
}

func (r *userRepository) MarkVerified(ctx context.Context, id string) error {
	const query = `UPDATE users SET is_verified=true, updated_at=NOW() WHERE id=$1`
	return r.exec(ctx, query, id)
}

func (r *userRepository) SetResetTicket(ctx context.Context, id, digest string, expires time.Time) error {
	const query = `
        UPDATE users SET password_reset_token=$1, password_reset_expires=$2, updated_at=NOW()
        WHERE id=$3`
	return r.exec(ctx, query, digest, expires, id)
}

// ResetPassword replaces the password hash and clears the reset ticket in one
// statement, making the ticket single-use.
func (r *userRepository) ResetPassword(ctx context.Context, id, passwordHash string) error {
	const query = `
        UPDATE users SET password_hash=$1, password_reset_token=NULL,
               password_reset_expires=NULL, updated_at=NOW()
        WHERE id=$2`
	return r.exec(ctx, query, passwordHash, id)
}

func (r *userRepository) exec(ctx context.Context, query string, args ...any) error {
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
