package booking

import (
	"errors"
	"time"
)

// Status enumerates reservation states. Cancellation removes the record from
// the ledger rather than marking a status, so there is no cancelled member.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// Reservation is a ledger record. It refers to a vehicle by identifier; the
// fleet registry stays the sole owner of vehicle data.
type Reservation struct {
	Code          string    `json:"code"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	Vehicle       string    `json:"vehicle"`
	VehicleID     int       `json:"vehicleId"`
	PickupDate    time.Time `json:"pickupDate"`
	ReturnDate    time.Time `json:"returnDate"`
	Days          int       `json:"days"`
	Total         float64   `json:"total"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Errors returned by ledger operations. All are recoverable conditions the
// caller is expected to surface to the user.
var (
	ErrInvalidDateRange    = errors.New("return date must be after pickup date")
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrVehicleUnavailable  = errors.New("vehicle is not available")
	ErrReservationNotFound = errors.New("reservation not found")
)
