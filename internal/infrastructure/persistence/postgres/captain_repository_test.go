package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openride/rideauth/internal/domain"
	domerrors "github.com/openride/rideauth/internal/domain/errors"
)

func newTestCaptain() *domain.Captain {
	now := time.Now()
	return &domain.Captain{
		ID:           domain.NewPrincipalID(uuid.New()),
		FullName:     domain.Name{First: "Jon", Last: "Doe"},
		Email:        "jon@x.com",
		PasswordHash: "$2a$10$hash",
		Vehicle:      domain.Vehicle{Color: "red", Plate: "AB-123", Capacity: 4, Type: domain.VehicleCar},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestCaptainRepository_CreateAndUniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	c := newTestCaptain()
	args := []any{c.ID.UUID, c.FullName.First, c.FullName.Last, c.Email, c.PasswordHash,
		c.Vehicle.Color, c.Vehicle.Plate, c.Vehicle.Capacity, string(c.Vehicle.Type),
		c.CreatedAt, c.UpdatedAt}

	mock.ExpectExec(`INSERT INTO captains`).
		WithArgs(args...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO captains`).
		WithArgs(args...).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	repo := NewCaptainRepository(mock)
	require.NoError(t, repo.Create(context.Background(), c))
	assert.ErrorIs(t, repo.Create(context.Background(), c), domerrors.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCaptainRepository_GetByEmail_LoadsVehicle(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	want := newTestCaptain()
	rows := pgxmock.NewRows([]string{"id", "first_name", "last_name", "email",
		"vehicle_color", "vehicle_plate", "vehicle_capacity", "vehicle_type", "created_at", "updated_at"}).
		AddRow(want.ID.UUID, want.FullName.First, want.FullName.Last, want.Email,
			want.Vehicle.Color, want.Vehicle.Plate, want.Vehicle.Capacity, string(want.Vehicle.Type),
			want.CreatedAt, want.UpdatedAt)
	mock.ExpectQuery(`SELECT id, first_name, last_name, email,\s+vehicle_color`).
		WithArgs(want.Email).
		WillReturnRows(rows)

	repo := NewCaptainRepository(mock)
	got, err := repo.GetByEmail(context.Background(), want.Email)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Vehicle, got.Vehicle)
	assert.Empty(t, got.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCaptainRepository_GetCredentialsByEmail_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id", "first_name", "last_name", "email", "password_hash",
		"vehicle_color", "vehicle_plate", "vehicle_capacity", "vehicle_type", "created_at", "updated_at"})
	mock.ExpectQuery(`SELECT id, first_name, last_name, email, password_hash`).
		WithArgs("ghost@x.com").
		WillReturnRows(rows)

	repo := NewCaptainRepository(mock)
	got, err := repo.GetCredentialsByEmail(context.Background(), "ghost@x.com")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
