package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/openride/rideauth/internal/application/ports"
	"github.com/openride/rideauth/internal/domain"
	domerrors "github.com/openride/rideauth/internal/domain/errors"
)

const (
	insertUserSQL = `INSERT INTO users (id, first_name, last_name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	getUserByEmailSQL = `SELECT id, first_name, last_name, email, created_at, updated_at
		FROM users WHERE email = $1`
	getUserByIDSQL = `SELECT id, first_name, last_name, email, created_at, updated_at
		FROM users WHERE id = $1`
	getUserCredentialsSQL = `SELECT id, first_name, last_name, email, password_hash, created_at, updated_at
		FROM users WHERE email = $1`
)

// UserRepository implements ports.UserRepository on PostgreSQL.
type UserRepository struct {
	pool poolIface
}

func NewUserRepository(pool poolIface) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.pool.Exec(ctx, insertUserSQL,
		user.ID.UUID, user.FullName.First, user.FullName.Last, user.Email,
		user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if isUniqueViolation(err) {
		return domerrors.ErrEmailTaken
	}
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, getUserByEmailSQL, email), false)
}

func (r *UserRepository) GetByID(ctx context.Context, id domain.PrincipalID) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, getUserByIDSQL, id.UUID), false)
}

// GetCredentialsByEmail is the only lookup that loads the password hash.
func (r *UserRepository) GetCredentialsByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, getUserCredentialsSQL, email), true)
}

func scanUser(row pgx.Row, withHash bool) (*domain.User, error) {
	var (
		u   domain.User
		id  uuid.UUID
		err error
	)
	if withHash {
		err = row.Scan(&id, &u.FullName.First, &u.FullName.Last, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	} else {
		err = row.Scan(&id, &u.FullName.First, &u.FullName.Last, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.ID = domain.NewPrincipalID(id)
	return &u, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
