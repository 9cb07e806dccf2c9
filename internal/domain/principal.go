package domain

import (
	"time"

	"github.com/google/uuid"
)

// PrincipalID is a value object identifying a user or captain.
type PrincipalID struct{ uuid.UUID }

// NewPrincipalID creates a PrincipalID from uuid.
func NewPrincipalID(id uuid.UUID) PrincipalID { return PrincipalID{UUID: id} }

// String returns the canonical string form.
func (p PrincipalID) String() string { return p.UUID.String() }

// Name is the two-part display name shared by both principal kinds.
type Name struct {
	First string `json:"firstname"`
	Last  string `json:"lastname"`
}

// VehicleType is the closed set of vehicle categories a captain may register.
type VehicleType string

const (
	VehicleBike VehicleType = "bike"
	VehicleCar  VehicleType = "car"
	VehicleAuto VehicleType = "auto"
)

// Vehicle is the vehicle a captain drives.
type Vehicle struct {
	Color    string      `json:"color"`
	Plate    string      `json:"plate"`
	Capacity int         `json:"capacity"`
	Type     VehicleType `json:"vehicleType"`
}

// User is a rider account. The password hash never serializes.
type User struct {
	ID           PrincipalID `json:"id"`
	FullName     Name        `json:"fullname"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Captain is a driver account with its registered vehicle.
type Captain struct {
	ID           PrincipalID `json:"id"`
	FullName     Name        `json:"fullname"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Vehicle      Vehicle     `json:"vehicle"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}
