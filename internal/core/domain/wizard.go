package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WizardStep identifies one state of the booking wizard.
type WizardStep string

const (
	StepService   WizardStep = "service"
	StepLocation  WizardStep = "location"
	StepDateTime  WizardStep = "datetime"
	StepContact   WizardStep = "contact"
	StepConfirm   WizardStep = "confirm"
	StepSubmitted WizardStep = "submitted"
)

// Location choices for a booking.
const (
	LocationSalon = "salon"
	LocationHome  = "home"
)

// TimeSlots is the fixed set of bookable slot labels offered per day.
var TimeSlots = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM", "1:00 PM",
	"2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM", "6:00 PM",
}

const defaultDurationMinutes = 60

// ServiceSelection is the service chosen at the first step.
type ServiceSelection struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ContactInfo is the guest contact form collected at StepContact.
type ContactInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (c ContactInfo) complete() bool {
	return c.FirstName != "" && c.LastName != "" && c.Email != "" && c.Phone != ""
}

// WizardState is the full state of one booking wizard. Navigation is strictly
// sequential: Advance and Retreat are the only transitions, and Advance is
// legal only while the current step is complete. The contact step exists only
// for guests; authenticated sessions go straight from datetime to confirm.
type WizardState struct {
	Step          WizardStep        `json:"step"`
	Service       *ServiceSelection `json:"service,omitempty"`
	Location      string            `json:"location,omitempty"`
	Address       string            `json:"address,omitempty"`
	Date          string            `json:"date,omitempty"` // YYYY-MM-DD
	TimeSlot      string            `json:"timeSlot,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	Contact       ContactInfo       `json:"contact"`
	BookingID     string            `json:"bookingId,omitempty"`
	GuestBooking  bool              `json:"guestBooking,omitempty"`
	SubmittedAt   time.Time         `json:"submittedAt,omitempty"`
}

// NewWizard returns a wizard positioned at the first step.
func NewWizard() *WizardState {
	return &WizardState{Step: StepService}
}

// StepComplete reports whether the current step's validity predicate holds,
// i.e. whether Advance is allowed. A home-service location additionally
// requires an address.
func (w *WizardState) StepComplete(authenticated bool) bool {
	switch w.Step {
	case StepService:
		return w.Service != nil && w.Service.ID != "" && w.Service.Title != ""
	case StepLocation:
		if w.Location == LocationHome {
			return w.Address != ""
		}
		return w.Location != ""
	case StepDateTime:
		return w.Date != "" && w.TimeSlot != ""
	case StepContact:
		return w.Contact.complete()
	case StepConfirm:
		return true
	default:
		return false
	}
}

// Advance moves the wizard forward by one step. The contact step is skipped
// when the session is authenticated. Advancing past the confirmation step is
// not a navigation transition; that happens through submission.
func (w *WizardState) Advance(authenticated bool) error {
	if !w.StepComplete(authenticated) {
		return ErrStepIncomplete
	}
	switch w.Step {
	case StepService:
		w.Step = StepLocation
	case StepLocation:
		w.Step = StepDateTime
	case StepDateTime:
		if authenticated {
			w.Step = StepConfirm
		} else {
			w.Step = StepContact
		}
	case StepContact:
		w.Step = StepConfirm
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Retreat moves the wizard back by one step, mirroring Advance's skip rule.
func (w *WizardState) Retreat(authenticated bool) error {
	switch w.Step {
	case StepLocation:
		w.Step = StepService
	case StepDateTime:
		w.Step = StepLocation
	case StepContact:
		w.Step = StepDateTime
	case StepConfirm:
		if authenticated {
			w.Step = StepDateTime
		} else {
			w.Step = StepContact
		}
	default:
		return ErrInvalidTransition
	}
	return nil
}

// ReadyToSubmit reports whether the wizard sits on the confirmation step with
// every prior step complete.
func (w *WizardState) ReadyToSubmit(authenticated bool) bool {
	if w.Step != StepConfirm {
		return false
	}
	if w.Service == nil || w.Service.ID == "" {
		return false
	}
	if w.Location == "" || (w.Location == LocationHome && w.Address == "") {
		return false
	}
	if w.Date == "" || w.TimeSlot == "" {
		return false
	}
	if !authenticated && !w.Contact.complete() {
		return false
	}
	return true
}

// Duration returns the selected service's duration, defaulting when the
// catalog entry carries none.
func (w *WizardState) Duration() int {
	if w.Service != nil && w.Service.DurationMinutes > 0 {
		return w.Service.DurationMinutes
	}
	return defaultDurationMinutes
}

// ValidSlot reports whether label is one of the offered time slots.
func ValidSlot(label string) bool {
	for _, s := range TimeSlots {
		if s == label {
			return true
		}
	}
	return false
}

// CombineSlot merges a YYYY-MM-DD date with a 12-hour slot label such as
// "10:00 AM" into a single UTC timestamp.
func CombineSlot(date, slot string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("combine slot: %w", err)
	}

	parts := strings.Fields(strings.ToUpper(strings.TrimSpace(slot)))
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("combine slot: malformed label %q", slot)
	}
	hm := strings.SplitN(parts[0], ":", 2)
	if len(hm) != 2 {
		return time.Time{}, fmt.Errorf("combine slot: malformed label %q", slot)
	}
	hours, err := strconv.Atoi(hm[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("combine slot: %w", err)
	}
	minutes, err := strconv.Atoi(hm[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("combine slot: %w", err)
	}

	switch parts[1] {
	case "PM":
		if hours != 12 {
			hours += 12
		}
	case "AM":
		if hours == 12 {
			hours = 0
		}
	default:
		return time.Time{}, fmt.Errorf("combine slot: malformed label %q", slot)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hours, minutes, 0, 0, time.UTC), nil
}
