package ports

import (
	"context"

	"github.com/threekst/storefront-gateway/internal/core/domain"
)

// GuestConversionResult reports the outcome of the post-booking registration
// offer. Linked is informational only: a false value means the link job was
// handed to the reconciler, never that registration failed.
type GuestConversionResult struct {
	Session *domain.Session
	Linked  bool
}

// BookingService drives the booking wizard and its submission.
type BookingService interface {
	Start(ctx context.Context, sess *domain.Session) (*domain.WizardState, error)
	State(ctx context.Context, sess *domain.Session) (*domain.WizardState, error)

	SelectService(ctx context.Context, sess *domain.Session, sel domain.ServiceSelection) (*domain.WizardState, error)
	SelectLocation(ctx context.Context, sess *domain.Session, location, address string) (*domain.WizardState, error)
	SelectSchedule(ctx context.Context, sess *domain.Session, date, timeSlot string) (*domain.WizardState, error)
	SetContact(ctx context.Context, sess *domain.Session, contact domain.ContactInfo) (*domain.WizardState, error)
	SetNotes(ctx context.Context, sess *domain.Session, notes string) (*domain.WizardState, error)

	Next(ctx context.Context, sess *domain.Session) (*domain.WizardState, error)
	Back(ctx context.Context, sess *domain.Session) (*domain.WizardState, error)

	// Submit targets /bookings or /bookings/guest depending on the session
	// state at the moment of submission. On failure the wizard stays on the
	// confirmation step and the error is returned.
	Submit(ctx context.Context, sess *domain.Session) (*domain.Booking, error)

	// ConvertGuest registers an account after a guest submission and links
	// prior guest bookings best-effort.
	ConvertGuest(ctx context.Context, sess *domain.Session, in RegisterInput) (*GuestConversionResult, error)

	AvailableSlots(ctx context.Context, serviceID, date string) ([]string, error)
}
