package domain

import "time"

// Booking statuses as reported by the salon API.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// Booking is a requested appointment. UserID is empty for guest bookings;
// the contact triple is always populated because the salon API has no
// separate guest-identity table.
type Booking struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId,omitempty"`
	ServiceID       string    `json:"serviceId"`
	ServiceTitle    string    `json:"serviceTitle"`
	BookingDateTime time.Time `json:"bookingDateTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Notes           string    `json:"notes,omitempty"`
	CustomerName    string    `json:"customerName"`
	CustomerPhone   string    `json:"customerPhone"`
	CustomerEmail   string    `json:"customerEmail"`
	Address         string    `json:"address,omitempty"`
	IsHomeService   bool      `json:"isHomeService"`
	Status          string    `json:"status,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}
