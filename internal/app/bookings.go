package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hotelos_gateway/internal/adapters/observability"
	"hotelos_gateway/internal/booking"
	"hotelos_gateway/internal/domain"
	"hotelos_gateway/internal/i18n"
)

// BookingBackend is the part of the backend the booking page talks to.
type BookingBackend interface {
	GetHotel(ctx context.Context, id int64) (domain.Hotel, error)
	GetRoom(ctx context.Context, id int64) (domain.Room, error)
	CreateReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error)
}

// OfferInvalidator drops the cached offers of one hotel.
type OfferInvalidator interface {
	Invalidate(ctx context.Context, hotelID int64)
}

type BookingService struct {
	api    BookingBackend
	log    domain.BookingLog
	offers OfferInvalidator
	now    func() time.Time
}

// NewBookingService builds the service. bl and offers may be nil.
func NewBookingService(api BookingBackend, bl domain.BookingLog, offers OfferInvalidator) *BookingService {
	return &BookingService{api: api, log: bl, offers: offers, now: time.Now}
}

// belongsTo fails closed: a room that does not name its hotel matches none.
func belongsTo(r domain.Room, hotelID int64) bool {
	return r.Hotel != nil && r.Hotel.ID != 0 && r.Hotel.ID == hotelID
}

// BookingRequest is the booking page form. It is echoed back on failure.
type BookingRequest struct {
	HotelID         int64              `json:"hotelId"`
	RoomID          int64              `json:"roomId"`
	CheckIn         domain.Date        `json:"checkIn"`
	CheckOut        domain.Date        `json:"checkOut"`
	Guests          int                `json:"guests"`
	GuestForms      booking.GuestForms `json:"guestForms"`
	SpecialRequests string             `json:"specialRequests,omitempty"`
}

type BookingPage struct {
	Hotel      string             `json:"hotel"`
	Room       RoomView           `json:"room"`
	CheckIn    domain.Date        `json:"checkIn"`
	CheckOut   domain.Date        `json:"checkOut"`
	Nights     int                `json:"nights"`
	Total      float64            `json:"total"`
	TotalLabel string             `json:"totalLabel"`
	GuestForms booking.GuestForms `json:"guestForms"`
}

type BookingResult struct {
	AttemptID   string             `json:"attemptId"`
	Reservation domain.Reservation `json:"reservation"`
	Redirect    string             `json:"redirect"`
	Message     string             `json:"message"`
}

// SubmitError carries the localized message and the untouched form.
type SubmitError struct {
	Status    int
	Message   string
	AttemptID string
	Form      BookingRequest
	Err       error
}

func (e *SubmitError) Error() string { return e.Message }
func (e *SubmitError) Unwrap() error { return e.Err }

func (s *BookingService) load(ctx context.Context, hotelID, roomID int64) (domain.Hotel, domain.Room, error) {
	var (
		h domain.Hotel
		r domain.Room
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { h, err = s.api.GetHotel(gctx, hotelID); return err })
	g.Go(func() (err error) { r, err = s.api.GetRoom(gctx, roomID); return err })
	if err := g.Wait(); err != nil {
		return h, r, err
	}
	if !belongsTo(r, hotelID) {
		return h, r, fmt.Errorf("room %d of hotel %d: %w", roomID, hotelID, domain.ErrNotFound)
	}
	return h, r, nil
}

// Prepare renders the booking page for the carried-over selection.
func (s *BookingService) Prepare(ctx context.Context, req BookingRequest, l i18n.Localizer) (BookingPage, error) {
	if !booking.ValidRange(req.CheckIn, req.CheckOut) {
		return BookingPage{}, booking.ErrMissingDates
	}
	if req.Guests > booking.MaxGuests {
		return BookingPage{}, booking.OverCapacity(booking.MaxGuests)
	}
	h, r, err := s.load(ctx, req.HotelID, req.RoomID)
	if err != nil {
		return BookingPage{}, err
	}
	if req.Guests > r.EffectiveCapacity() {
		return BookingPage{}, booking.OverCapacity(r.EffectiveCapacity())
	}
	total := booking.TotalAmount(r.Price, req.CheckIn, req.CheckOut)
	return BookingPage{
		Hotel:      h.Name,
		Room:       roomView(r, l),
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Nights:     booking.Nights(req.CheckIn, req.CheckOut),
		Total:      total,
		TotalLabel: booking.FormatPrice(total),
		GuestForms: req.GuestForms.Resize(req.Guests),
	}, nil
}

// Submit validates the guests and creates a PENDING reservation for user.
// Every attempt by a known user is recorded in the booking log.
func (s *BookingService) Submit(ctx context.Context, user *domain.User, req BookingRequest, l i18n.Localizer) (BookingResult, error) {
	if user == nil {
		return BookingResult{}, &SubmitError{Status: http.StatusUnauthorized, Message: l.T("booking.loginRequired"), Form: req, Err: domain.ErrUnauthorized}
	}
	if req.Guests < 1 {
		req.Guests = len(req.GuestForms)
	}
	overMax := req.Guests > booking.MaxGuests
	if !overMax {
		req.GuestForms = req.GuestForms.Resize(req.Guests)
	}

	a := domain.BookingAttempt{
		ID:       uuid.NewString(),
		UserID:   user.UserID,
		HotelID:  req.HotelID,
		RoomID:   req.RoomID,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Guests:   req.Guests,
	}

	reject := func(status int, p *booking.Problem) (BookingResult, error) {
		a.Outcome, a.Reason = domain.AttemptRejected, p.Error()
		s.record(ctx, a)
		return BookingResult{}, &SubmitError{Status: status, Message: p.Localize(l), AttemptID: a.ID, Form: req, Err: p}
	}
	if !booking.ValidRange(req.CheckIn, req.CheckOut) {
		return reject(http.StatusBadRequest, booking.ErrMissingDates)
	}
	if overMax {
		return reject(http.StatusUnprocessableEntity, booking.OverCapacity(booking.MaxGuests))
	}
	if err := booking.ValidateGuests(req.GuestForms); err != nil {
		var p *booking.Problem
		if errors.As(err, &p) {
			return reject(http.StatusUnprocessableEntity, p)
		}
		return reject(http.StatusUnprocessableEntity, booking.ErrGuestFields)
	}

	fail := func(err error) (BookingResult, error) {
		se := &SubmitError{Status: http.StatusBadGateway, Message: l.T("booking.failed"), AttemptID: a.ID, Form: req, Err: err}
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			se.Status, se.Message = ve.Status, ve.Error()
			a.Outcome = domain.AttemptRejected
		case domain.IsAuthError(err):
			se.Status, se.Message = http.StatusUnauthorized, l.T("common.unauthorized")
			a.Outcome = domain.AttemptFailed
		case errors.Is(err, domain.ErrNotFound):
			se.Status, se.Message = http.StatusNotFound, l.T("booking.roomLoadError")
			a.Outcome = domain.AttemptFailed
		default:
			a.Outcome = domain.AttemptFailed
		}
		a.Reason = err.Error()
		s.record(ctx, a)
		return BookingResult{}, se
	}

	h, r, err := s.load(ctx, req.HotelID, req.RoomID)
	if err != nil {
		return fail(err)
	}
	if req.Guests > r.EffectiveCapacity() {
		return reject(http.StatusUnprocessableEntity, booking.OverCapacity(r.EffectiveCapacity()))
	}
	res := booking.BuildReservation(booking.Draft{
		HotelName:       h.Name,
		Room:            r,
		UserID:          user.UserID,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Guests:          req.GuestForms,
		SpecialRequests: req.SpecialRequests,
	})
	a.TotalAmount = res.TotalAmount

	created, err := s.api.CreateReservation(ctx, res)
	if err != nil {
		return fail(err)
	}
	a.Outcome = domain.AttemptOK
	if s.offers != nil {
		s.offers.Invalidate(ctx, req.HotelID)
	}
	if created.ReservationID != 0 {
		id := created.ReservationID
		a.ReservationID = &id
	} else {
		created = res
	}
	s.record(ctx, a)

	return BookingResult{
		AttemptID:   a.ID,
		Reservation: created,
		Redirect:    "/user",
		Message:     l.T("booking.success"),
	}, nil
}

// record never fails the booking; the log is best effort.
func (s *BookingService) record(ctx context.Context, a domain.BookingAttempt) {
	observability.ObserveBooking(string(a.Outcome))
	a.CreatedAt = s.now().UTC()
	if s.log == nil {
		return
	}
	// the caller may already be gone; the attempt is still worth keeping
	lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := s.log.LogAttempt(lctx, a); err != nil {
		log.Warn().Err(err).Str("attempt", a.ID).Msg("booking attempt not recorded")
	}
}

// Attempts lists recent booking attempts for a hotel.
func (s *BookingService) Attempts(ctx context.Context, hotelID int64, limit int) ([]domain.BookingAttempt, error) {
	if s.log == nil {
		return nil, nil
	}
	return s.log.ListAttempts(ctx, domain.AttemptsQuery{HotelID: hotelID, Limit: limit})
}
