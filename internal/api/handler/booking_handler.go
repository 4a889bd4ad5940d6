package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

// BookingHandler drives the booking wizard and the session's booking history.
type BookingHandler struct {
	bookings ports.BookingService
	upstream ports.BookingAPI
}

func NewBookingHandler(bookings ports.BookingService, upstream ports.BookingAPI) *BookingHandler {
	return &BookingHandler{bookings: bookings, upstream: upstream}
}

// --- Request / Response types ---

type selectServiceRequest struct {
	ID              string `json:"id" validate:"required"`
	Title           string `json:"title" validate:"required"`
	DurationMinutes int    `json:"durationMinutes" validate:"gte=0"`
}

type selectLocationRequest struct {
	Location string `json:"location" validate:"required,oneof=salon home"`
	Address  string `json:"address"`
}

type selectScheduleRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot string `json:"timeSlot" validate:"required"`
}

type contactRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
}

type notesRequest struct {
	Notes string `json:"notes" validate:"max=500"`
}

type wizardResponse struct {
	State      *domain.WizardState `json:"state"`
	CanAdvance bool                `json:"canAdvance"`
}

type submitResponse struct {
	Booking      *domain.Booking `json:"booking"`
	GuestBooking bool            `json:"guestBooking"`
}

type convertGuestResponse struct {
	Session sessionResponse `json:"session"`
	Linked  bool            `json:"linked"`
}

func (h *BookingHandler) wizardJSON(c echo.Context, sess *domain.Session, state *domain.WizardState) error {
	return c.JSON(http.StatusOK, wizardResponse{
		State:      state,
		CanAdvance: state.StepComplete(sess.Authenticated()),
	})
}

// StartWizard resets the wizard to its first step.
//
// @Summary      Start the booking wizard
// @Tags         booking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  wizardResponse
// @Router       /booking/wizard [post]
func (h *BookingHandler) StartWizard(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	state, err := h.bookings.Start(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return h.wizardJSON(c, sess, state)
}

// WizardState returns the current wizard state.
//
// @Summary      Get the booking wizard state
// @Tags         booking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  wizardResponse
// @Failure      404  {object}  map[string]string
// @Router       /booking/wizard [get]
func (h *BookingHandler) WizardState(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	state, err := h.bookings.State(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return h.wizardJSON(c, sess, state)
}

// SelectService records the chosen salon service.
//
// @Summary      Select a service
// @Tags         booking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      selectServiceRequest  true  "Service selection"
// @Success      200   {object}  wizardResponse
// @Failure      422   {object}  map[string]string
// @Router       /booking/wizard/service [put]
func (h *BookingHandler) SelectService(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req selectServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	state, err := h.bookings.SelectService(c.Request().Context(), sess, domain.ServiceSelection{
		ID:              req.ID,
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return err
	}
	return h.wizardJSON(c, sess, state)
}

// SelectLocation records salon or home service, with the address for home.
//
// @Summary      Select a location
// @Tags         booking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      selectLocationRequest  true  "Location choice"
// @Success      200   {object}  wizardResponse
// @Failure      422   {object}  map[string]string
// @Router       /booking/wizard/location [put]
func (h *BookingHandler) SelectLocation(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req selectLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	state, err := h.bookings.SelectLocation(c.Request().Context(), sess, req.Location, req.Address)
	if err != nil {
		return err
	}
	return h.wizardJSON(c, sess, state)
}

// SelectSchedule records the date and time slot.
//
// @Summary      Select date and time
// @Tags         booking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      selectScheduleRequest  true  "Date and slot"
// @Success      200   {object}  wizardResponse
// @Failure      422   {object}  map[string]string
// @Router       /booking/wizard/schedule [put]
func (h *BookingHandler) SelectSchedule(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req selectScheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	state, err := h.bookings.SelectSchedule(c.Request().Context(), sess, req.Date, req.TimeSlot)
	if err != nil {
		return err
	}
	return h.wizardJSON(c, sess, state)
}

// SetContact records the guest contact details.
//
// @Summary      Set guest contact details
// @Tags         booking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      contactRequest  true  "Contact details"
// @Success      200   {object}  wizardResponse
// @Failure      422   {object}  map[string]string
// @Router       /booking/wizard/contact [put]
func (h *BookingHandler) SetContact(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	state, err := h.bookings.SetContact(c.Request().Context(), sess, domain.ContactInfo{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}
	return h.wizardJSON(c, sess, state)
}

// SetNotes records free-form notes. Allowed on any step.
//
// @Summary      Set booking notes
// @Tags         booking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      notesRequest  true  "Notes"
// @Success      200   {object}  wizardResponse
// @Router       /booking/wizard/notes [put]
func (h *BookingHandler) SetNotes(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req notesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	state, err := h.bookings.SetNotes(c.Request().Context(), sess, req.Notes)
	if err != nil {
		return err
	}
	return h.wizardJSON(c, sess, state)
}

// Next advances the wizard one step.
//
// @Summary      Advance the wizard
// @Tags         booking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  wizardResponse
// @Failure      422  {object}  map[string]string
// @Router       /booking/wizard/next [post]
func (h *BookingHandler) Next(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	state, err := h.bookings.Next(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return h.wizardJSON(c, sess, state)
}

// Back moves the wizard one step back.
//
// @Summary      Retreat the wizard
// @Tags         booking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  wizardResponse
// @Failure      422  {object}  map[string]string
// @Router       /booking/wizard/back [post]
func (h *BookingHandler) Back(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	state, err := h.bookings.Back(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return h.wizardJSON(c, sess, state)
}

// Submit sends the booking to the salon API.
//
// @Summary      Submit the booking
// @Tags         booking
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  submitResponse
// @Failure      422  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /booking/wizard/submit [post]
func (h *BookingHandler) Submit(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	booking, err := h.bookings.Submit(c.Request().Context(), sess)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, submitResponse{
		Booking:      booking,
		GuestBooking: !sess.Authenticated(),
	})
}

// ConvertGuest registers an account right after a guest booking and links
// earlier guest bookings to it.
//
// @Summary      Convert a guest booking into an account
// @Tags         booking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  convertGuestResponse
// @Failure      409   {object}  map[string]string
// @Router       /booking/wizard/convert [post]
func (h *BookingHandler) ConvertGuest(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.bookings.ConvertGuest(c.Request().Context(), sess, ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, convertGuestResponse{
		Session: toSessionResponse(result.Session),
		Linked:  result.Linked,
	})
}

// Slots lists available time slots for a service on a date.
//
// @Summary      List available time slots
// @Tags         booking
// @Produce      json
// @Param        serviceId  query     string  true  "Service id"
// @Param        date       query     string  true  "Date (YYYY-MM-DD)"
// @Success      200        {array}   string
// @Router       /booking/slots [get]
func (h *BookingHandler) Slots(c echo.Context) error {
	serviceID := c.QueryParam("serviceId")
	date := c.QueryParam("date")
	if serviceID == "" || date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "serviceId and date are required")
	}

	slots, err := h.bookings.AvailableSlots(c.Request().Context(), serviceID, date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, slots)
}

// MyBookings lists the logged-in user's bookings.
//
// @Summary      List my bookings
// @Tags         booking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Booking
// @Failure      401  {object}  map[string]string
// @Router       /bookings [get]
func (h *BookingHandler) MyBookings(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if !sess.Authenticated() {
		return domain.ErrAuthRequired
	}

	bookings, err := h.upstream.ForUser(c.Request().Context(), sess, sess.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// CancelBooking cancels one of the user's bookings.
//
// @Summary      Cancel a booking
// @Tags         booking
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.Booking
// @Failure      401  {object}  map[string]string
// @Router       /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if !sess.Authenticated() {
		return domain.ErrAuthRequired
	}

	booking, err := h.upstream.Cancel(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}
