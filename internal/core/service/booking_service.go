package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/threekst/storefront-gateway/internal/metrics"
	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

// BookingService drives the booking wizard. Wizard state lives in the wizard
// store keyed by session id; every method loads, transforms through the
// domain transition rules, and saves back. The upstream endpoint for
// submission is chosen by the session state at the moment Submit runs, never
// at wizard start.
type BookingService struct {
	upstream ports.BookingAPI
	auth     ports.AuthService
	wizards  ports.WizardStore
	linkJobs ports.LinkJobRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewBookingService(
	upstream ports.BookingAPI,
	auth ports.AuthService,
	wizards ports.WizardStore,
	linkJobs ports.LinkJobRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *BookingService {
	return &BookingService{
		upstream: upstream,
		auth:     auth,
		wizards:  wizards,
		linkJobs: linkJobs,
		notifier: notifier,
		log:      log,
	}
}

// Start resets the wizard to the first step.
func (s *BookingService) Start(ctx context.Context, sess *domain.Session) (*domain.WizardState, error) {
	state := domain.NewWizard()
	if err := s.wizards.Save(ctx, sess.ID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// State returns the current wizard state.
func (s *BookingService) State(ctx context.Context, sess *domain.Session) (*domain.WizardState, error) {
	return s.wizards.Get(ctx, sess.ID)
}

// SelectService records the chosen service. Selections are accepted only on
// their own step; navigation stays strictly sequential.
func (s *BookingService) SelectService(ctx context.Context, sess *domain.Session, sel domain.ServiceSelection) (*domain.WizardState, error) {
	return s.update(ctx, sess, domain.StepService, func(w *domain.WizardState) error {
		w.Service = &sel
		return nil
	})
}

// SelectLocation records salon or home service; a home service carries the
// customer's address.
func (s *BookingService) SelectLocation(ctx context.Context, sess *domain.Session, location, address string) (*domain.WizardState, error) {
	return s.update(ctx, sess, domain.StepLocation, func(w *domain.WizardState) error {
		if location != domain.LocationSalon && location != domain.LocationHome {
			return domain.ErrStepIncomplete
		}
		w.Location = location
		if location == domain.LocationHome {
			w.Address = address
		} else {
			w.Address = ""
		}
		return nil
	})
}

// SelectSchedule records the date and slot label.
func (s *BookingService) SelectSchedule(ctx context.Context, sess *domain.Session, date, timeSlot string) (*domain.WizardState, error) {
	return s.update(ctx, sess, domain.StepDateTime, func(w *domain.WizardState) error {
		if !domain.ValidSlot(timeSlot) {
			return domain.ErrStepIncomplete
		}
		if _, err := domain.CombineSlot(date, timeSlot); err != nil {
			return domain.ErrStepIncomplete
		}
		w.Date = date
		w.TimeSlot = timeSlot
		return nil
	})
}

// SetContact records the guest contact form. Authenticated sessions never
// reach the contact step, so this only applies to guests.
func (s *BookingService) SetContact(ctx context.Context, sess *domain.Session, contact domain.ContactInfo) (*domain.WizardState, error) {
	return s.update(ctx, sess, domain.StepContact, func(w *domain.WizardState) error {
		w.Contact = contact
		return nil
	})
}

// SetNotes attaches free-form notes; allowed on any step before submission.
func (s *BookingService) SetNotes(ctx context.Context, sess *domain.Session, notes string) (*domain.WizardState, error) {
	state, err := s.wizards.Get(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if state.Step == domain.StepSubmitted {
		return nil, domain.ErrInvalidTransition
	}
	state.Notes = notes
	if err := s.wizards.Save(ctx, sess.ID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Next advances the wizard when the current step is complete.
func (s *BookingService) Next(ctx context.Context, sess *domain.Session) (*domain.WizardState, error) {
	state, err := s.wizards.Get(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if err := state.Advance(sess.Authenticated()); err != nil {
		return nil, err
	}
	if err := s.wizards.Save(ctx, sess.ID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Back retreats one step.
func (s *BookingService) Back(ctx context.Context, sess *domain.Session) (*domain.WizardState, error) {
	state, err := s.wizards.Get(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if err := state.Retreat(sess.Authenticated()); err != nil {
		return nil, err
	}
	if err := s.wizards.Save(ctx, sess.ID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Submit assembles the booking request and sends it through the endpoint
// matching the session state right now. On failure the wizard stays on the
// confirmation step and the error surfaces to the caller.
func (s *BookingService) Submit(ctx context.Context, sess *domain.Session) (*domain.Booking, error) {
	state, err := s.wizards.Get(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	authenticated := sess.Authenticated()
	if !state.ReadyToSubmit(authenticated) {
		return nil, domain.ErrStepIncomplete
	}

	when, err := domain.CombineSlot(state.Date, state.TimeSlot)
	if err != nil {
		return nil, err
	}

	req := ports.BookingRequest{
		ServiceID:       state.Service.ID,
		ServiceTitle:    state.Service.Title,
		BookingDateTime: when,
		DurationMinutes: state.Duration(),
		Notes:           state.Notes,
		Address:         state.Address,
		IsHomeService:   state.Location == domain.LocationHome,
	}

	// Contact fields come from the session when one exists; collected guest
	// fields are never sent for an authenticated submission.
	if authenticated {
		req.UserID = sess.User.ID
		req.CustomerName = sess.User.FullName()
		req.CustomerPhone = sess.User.Phone
		req.CustomerEmail = sess.User.Email
	} else {
		req.CustomerName = state.Contact.FirstName + " " + state.Contact.LastName
		req.CustomerPhone = state.Contact.Phone
		req.CustomerEmail = state.Contact.Email
	}

	var booking *domain.Booking
	if authenticated {
		booking, err = s.upstream.Create(ctx, sess, req)
	} else {
		booking, err = s.upstream.CreateGuest(ctx, req)
	}
	if err != nil {
		metrics.BookingsSubmittedTotal.WithLabelValues(channel(authenticated), "error").Inc()
		s.log.Error().Err(err).Str("session_id", sess.ID).Msg("booking submission failed")
		s.notify(sess.ID, domain.NotifyError, "Booking failed", errMessage(err, "Could not submit your booking"))
		return nil, err
	}

	state.Step = domain.StepSubmitted
	state.BookingID = booking.ID
	state.GuestBooking = !authenticated
	state.SubmittedAt = time.Now().UTC()
	if err := s.wizards.Save(ctx, sess.ID, state); err != nil {
		return nil, err
	}

	metrics.BookingsSubmittedTotal.WithLabelValues(channel(authenticated), "ok").Inc()
	s.log.Info().
		Str("session_id", sess.ID).
		Str("booking_id", booking.ID).
		Bool("guest", !authenticated).
		Msg("booking submitted")
	s.notify(sess.ID, domain.NotifySuccess, "Booking confirmed", "Your appointment has been booked")
	return booking, nil
}

// ConvertGuest registers an account after a guest submission and then links
// prior guest bookings to it. Registration is the source of truth for
// success; the link is best-effort and falls back to the reconciliation
// ledger when the inline call fails.
func (s *BookingService) ConvertGuest(ctx context.Context, sess *domain.Session, in ports.RegisterInput) (*ports.GuestConversionResult, error) {
	state, err := s.wizards.Get(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if state.Step != domain.StepSubmitted || !state.GuestBooking {
		return nil, domain.ErrNotGuestBooking
	}

	authed, err := s.auth.Register(ctx, sess, in)
	if err != nil {
		return nil, err
	}

	result := &ports.GuestConversionResult{Session: authed}
	if err := s.upstream.LinkAll(ctx, in.Email, authed.User.ID); err != nil {
		s.log.Warn().Err(err).Str("email", in.Email).Msg("inline booking link failed, enqueueing job")
		metrics.LinkJobsTotal.WithLabelValues("deferred").Inc()
		s.enqueueLinkJob(ctx, in.Email, authed.User.ID, err)
		return result, nil
	}

	metrics.LinkJobsTotal.WithLabelValues("inline").Inc()
	result.Linked = true
	return result, nil
}

// AvailableSlots proxies the upstream slot lookup.
func (s *BookingService) AvailableSlots(ctx context.Context, serviceID, date string) ([]string, error) {
	return s.upstream.AvailableSlots(ctx, serviceID, date)
}

// enqueueLinkJob hands a failed link to the cron reconciler. A ledger write
// failure is logged and dropped; it must never disturb the registration
// outcome.
func (s *BookingService) enqueueLinkJob(ctx context.Context, email, userID string, cause error) {
	now := time.Now().UTC()
	job := &domain.LinkJob{
		ID:        uuid.NewString(),
		Email:     email,
		UserID:    userID,
		Status:    domain.LinkJobPending,
		LastError: cause.Error(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.linkJobs.Enqueue(ctx, job); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("failed to enqueue link job")
	}
}

func (s *BookingService) update(ctx context.Context, sess *domain.Session, step domain.WizardStep, apply func(*domain.WizardState) error) (*domain.WizardState, error) {
	state, err := s.wizards.Get(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if state.Step != step {
		return nil, domain.ErrInvalidTransition
	}
	if err := apply(state); err != nil {
		return nil, err
	}
	if err := s.wizards.Save(ctx, sess.ID, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *BookingService) notify(sid string, level domain.NotificationLevel, title, msg string) {
	s.notifier.Notify(domain.Notification{
		SessionID: sid,
		Level:     level,
		Title:     title,
		Message:   msg,
		At:        time.Now().UTC(),
	})
}

func channel(authenticated bool) string {
	if authenticated {
		return "account"
	}
	return "guest"
}
