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
	insertCaptainSQL = `INSERT INTO captains (id, first_name, last_name, email, password_hash,
			vehicle_color, vehicle_plate, vehicle_capacity, vehicle_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	getCaptainByEmailSQL = `SELECT id, first_name, last_name, email,
			vehicle_color, vehicle_plate, vehicle_capacity, vehicle_type, created_at, updated_at
		FROM captains WHERE email = $1`
	getCaptainByIDSQL = `SELECT id, first_name, last_name, email,
			vehicle_color, vehicle_plate, vehicle_capacity, vehicle_type, created_at, updated_at
		FROM captains WHERE id = $1`
	getCaptainCredentialsSQL = `SELECT id, first_name, last_name, email, password_hash,
			vehicle_color, vehicle_plate, vehicle_capacity, vehicle_type, created_at, updated_at
		FROM captains WHERE email = $1`
)

// CaptainRepository implements ports.CaptainRepository on PostgreSQL.
type CaptainRepository struct {
	pool poolIface
}

func NewCaptainRepository(pool poolIface) *CaptainRepository {
	return &CaptainRepository{pool: pool}
}

func (r *CaptainRepository) Create(ctx context.Context, captain *domain.Captain) error {
	_, err := r.pool.Exec(ctx, insertCaptainSQL,
		captain.ID.UUID, captain.FullName.First, captain.FullName.Last, captain.Email,
		captain.PasswordHash, captain.Vehicle.Color, captain.Vehicle.Plate,
		captain.Vehicle.Capacity, string(captain.Vehicle.Type),
		captain.CreatedAt, captain.UpdatedAt)
	if isUniqueViolation(err) {
		return domerrors.ErrEmailTaken
	}
	return err
}

func (r *CaptainRepository) GetByEmail(ctx context.Context, email string) (*domain.Captain, error) {
	return scanCaptain(r.pool.QueryRow(ctx, getCaptainByEmailSQL, email), false)
}

func (r *CaptainRepository) GetByID(ctx context.Context, id domain.PrincipalID) (*domain.Captain, error) {
	return scanCaptain(r.pool.QueryRow(ctx, getCaptainByIDSQL, id.UUID), false)
}

// GetCredentialsByEmail is the only lookup that loads the password hash.
func (r *CaptainRepository) GetCredentialsByEmail(ctx context.Context, email string) (*domain.Captain, error) {
	return scanCaptain(r.pool.QueryRow(ctx, getCaptainCredentialsSQL, email), true)
}

func scanCaptain(row pgx.Row, withHash bool) (*domain.Captain, error) {
	var (
		c           domain.Captain
		id          uuid.UUID
		vehicleType string
		err         error
	)
	if withHash {
		err = row.Scan(&id, &c.FullName.First, &c.FullName.Last, &c.Email, &c.PasswordHash,
			&c.Vehicle.Color, &c.Vehicle.Plate, &c.Vehicle.Capacity, &vehicleType,
			&c.CreatedAt, &c.UpdatedAt)
	} else {
		err = row.Scan(&id, &c.FullName.First, &c.FullName.Last, &c.Email,
			&c.Vehicle.Color, &c.Vehicle.Plate, &c.Vehicle.Capacity, &vehicleType,
			&c.CreatedAt, &c.UpdatedAt)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	c.ID = domain.NewPrincipalID(id)
	c.Vehicle.Type = domain.VehicleType(vehicleType)
	return &c, nil
}

var _ ports.CaptainRepository = (*CaptainRepository)(nil)
