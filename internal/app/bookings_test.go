package app_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"hotelos_gateway/internal/app"
	"hotelos_gateway/internal/booking"
	"hotelos_gateway/internal/domain"
	"hotelos_gateway/internal/i18n"
)

func bookingAPI() *fakeAPI {
	return &fakeAPI{
		hotels: map[int64]domain.Hotel{1: {ID: 1, Name: "Grand"}},
		rooms: map[int64]domain.Room{
			3: {RoomID: 3, RoomNumber: 101, Price: 100, Capacity: ptr(2), Status: domain.RoomAvailable, Hotel: &domain.Hotel{ID: 1}},
			9: {RoomID: 9, RoomNumber: 900, Price: 50, Hotel: &domain.Hotel{ID: 2}},
			11: {RoomID: 11, RoomNumber: 110, Price: 50, Capacity: ptr(2), Status: domain.RoomAvailable},
		},
	}
}

func validRequest() app.BookingRequest {
	return app.BookingRequest{
		HotelID: 1, RoomID: 3, CheckIn: in, CheckOut: out, Guests: 2,
		GuestForms: booking.GuestForms{
			{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", PhoneNumber: "555"},
			{FirstName: "Bo", LastName: "Lee", IsChild: true},
		},
	}
}

var guest = &domain.User{UserID: 5, UserType: domain.UserGuest}

func TestSubmit_Success(t *testing.T) {
	api, bl := bookingAPI(), &fakeLog{}
	svc := app.NewBookingService(api, bl, nil)

	res, err := svc.Submit(context.Background(), guest, validRequest(), i18n.For("en"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Redirect != "/user" || res.Message != "Reservation created successfully." {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(api.created) != 1 {
		t.Fatalf("expected one reservation, got %d", len(api.created))
	}
	r := api.created[0]
	if r.ReservationName != "Grand - Room 101" || r.TotalAmount != 200 || r.Status != domain.ReservationPending {
		t.Fatalf("unexpected reservation: %+v", r)
	}
	if r.Adults != 1 || r.Children != 1 || !r.Guests[0].IsPrimaryGuest || r.Guests[1].IsPrimaryGuest {
		t.Fatalf("unexpected guests: %+v", r.Guests)
	}
	if len(bl.attempts) != 1 {
		t.Fatalf("expected one attempt, got %d", len(bl.attempts))
	}
	a := bl.attempts[0]
	if a.Outcome != domain.AttemptOK || a.ReservationID == nil || *a.ReservationID != 77 || a.ID != res.AttemptID {
		t.Fatalf("unexpected attempt: %+v", a)
	}
}

func TestSubmit_PrimaryChildRejected(t *testing.T) {
	api, bl := bookingAPI(), &fakeLog{}
	req := validRequest()
	req.GuestForms[0].IsChild = true
	req.GuestForms[0].Email = ""

	_, err := app.NewBookingService(api, bl, nil).Submit(context.Background(), guest, req, i18n.For("en"))
	var se *app.SubmitError
	if !errors.As(err, &se) {
		t.Fatalf("expected SubmitError, got %v", err)
	}
	if se.Status != http.StatusUnprocessableEntity || se.Message != "Primary guest must be an adult." {
		t.Fatalf("unexpected error: %d %q", se.Status, se.Message)
	}
	if !errors.Is(err, booking.ErrPrimaryChild) {
		t.Fatalf("expected ErrPrimaryChild in chain")
	}
	if diff := cmp.Diff(req, se.Form); diff != "" {
		t.Fatalf("form must be echoed unchanged (-want +got):\n%s", diff)
	}
	if len(api.created) != 0 {
		t.Fatalf("no reservation must be created")
	}
	if len(bl.attempts) != 1 || bl.attempts[0].Outcome != domain.AttemptRejected {
		t.Fatalf("expected rejected attempt, got %+v", bl.attempts)
	}
}

func TestSubmit_BackendValidationMessage(t *testing.T) {
	api, bl := bookingAPI(), &fakeLog{}
	api.createErr = &domain.ValidationError{Status: http.StatusConflict, Message: "Room not available"}

	_, err := app.NewBookingService(api, bl, nil).Submit(context.Background(), guest, validRequest(), i18n.For("en"))
	var se *app.SubmitError
	if !errors.As(err, &se) {
		t.Fatalf("expected SubmitError, got %v", err)
	}
	if se.Status != http.StatusConflict || se.Message != "Room not available" {
		t.Fatalf("unexpected error: %d %q", se.Status, se.Message)
	}
	if bl.attempts[0].Outcome != domain.AttemptRejected || bl.attempts[0].Reason != "Room not available" {
		t.Fatalf("unexpected attempt: %+v", bl.attempts[0])
	}
}

func TestSubmit_Failures(t *testing.T) {
	cases := []struct {
		name   string
		user   *domain.User
		mutate func(*app.BookingRequest, *fakeAPI)
		status int
		msg    string
	}{
		{"anonymous", nil, func(*app.BookingRequest, *fakeAPI) {}, http.StatusUnauthorized, "Please log in to make a reservation."},
		{"no dates", guest, func(r *app.BookingRequest, _ *fakeAPI) { r.CheckOut = domain.Date{} }, http.StatusBadRequest, "Please select check-in and check-out dates before booking."},
		{"room of other hotel", guest, func(r *app.BookingRequest, _ *fakeAPI) { r.RoomID = 9 }, http.StatusNotFound, "Failed to load room details."},
		{"backend down", guest, func(_ *app.BookingRequest, f *fakeAPI) { f.createErr = domain.ErrUnavailable }, http.StatusBadGateway, "Failed to create reservation. Please try again."},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			api := bookingAPI()
			req := validRequest()
			c.mutate(&req, api)
			_, err := app.NewBookingService(api, &fakeLog{}, nil).Submit(context.Background(), c.user, req, i18n.For("en"))
			var se *app.SubmitError
			if !errors.As(err, &se) {
				t.Fatalf("expected SubmitError, got %v", err)
			}
			if se.Status != c.status || se.Message != c.msg {
				t.Fatalf("got %d %q", se.Status, se.Message)
			}
		})
	}
}

func TestPrepare_TotalAndForms(t *testing.T) {
	req := validRequest()
	req.GuestForms = req.GuestForms[:1]
	page, err := app.NewBookingService(bookingAPI(), nil, nil).Prepare(context.Background(), req, i18n.For("en"))
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if page.Nights != 2 || page.TotalLabel != "$200.00" || len(page.GuestForms) != 2 || page.GuestForms[0].FirstName != "Ann" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestPrepare_RejectsGuestsBeyondCapacity(t *testing.T) {
	svc := app.NewBookingService(bookingAPI(), nil, nil)
	for _, n := range []int{3, booking.MaxGuests + 1, 1 << 60} {
		req := validRequest()
		req.Guests = n
		_, err := svc.Prepare(context.Background(), req, i18n.For("en"))
		var p *booking.Problem
		if !errors.As(err, &p) || p.Key != string(booking.ReasonOverCapacity) {
			t.Fatalf("guests %d: expected over capacity, got %v", n, err)
		}
	}
}

func TestPrepare_RoomWithoutHotelNotFound(t *testing.T) {
	req := validRequest()
	req.RoomID = 11
	_, err := app.NewBookingService(bookingAPI(), nil, nil).Prepare(context.Background(), req, i18n.For("en"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("room that names no hotel must not match, got %v", err)
	}
}

func TestSubmit_OverCapacityRejected(t *testing.T) {
	cases := []struct {
		name   string
		guests int
		msg    string
	}{
		{"room capacity", 3, "The selected room holds at most 2 guests."},
		{"absurd count", 1 << 60, "The selected room holds at most 20 guests."},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			api, bl := bookingAPI(), &fakeLog{}
			req := validRequest()
			req.Guests = c.guests
			req.GuestForms = append(req.GuestForms, booking.GuestForm{FirstName: "Cy", LastName: "Lee"})
			_, err := app.NewBookingService(api, bl, nil).Submit(context.Background(), guest, req, i18n.For("en"))
			var se *app.SubmitError
			if !errors.As(err, &se) {
				t.Fatalf("expected SubmitError, got %v", err)
			}
			if se.Status != http.StatusUnprocessableEntity || se.Message != c.msg {
				t.Fatalf("got %d %q", se.Status, se.Message)
			}
			if len(api.created) != 0 {
				t.Fatalf("no reservation must be created")
			}
			if len(bl.attempts) != 1 || bl.attempts[0].Outcome != domain.AttemptRejected {
				t.Fatalf("expected rejected attempt, got %+v", bl.attempts)
			}
		})
	}
}

type recordingInvalidator struct{ hotels []int64 }

func (r *recordingInvalidator) Invalidate(ctx context.Context, hotelID int64) {
	r.hotels = append(r.hotels, hotelID)
}

func TestSubmit_InvalidatesOffers(t *testing.T) {
	inv := &recordingInvalidator{}
	svc := app.NewBookingService(bookingAPI(), nil, inv)
	if _, err := svc.Submit(context.Background(), guest, validRequest(), i18n.For("en")); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff([]int64{1}, inv.hotels); diff != "" {
		t.Fatalf("invalidated hotels (-want +got):\n%s", diff)
	}

	api := bookingAPI()
	api.createErr = domain.ErrUnavailable
	inv = &recordingInvalidator{}
	_, _ = app.NewBookingService(api, nil, inv).Submit(context.Background(), guest, validRequest(), i18n.For("en"))
	if len(inv.hotels) != 0 {
		t.Fatalf("failed booking must keep the cache, got %v", inv.hotels)
	}
}

func TestSubmit_NextOfferComesFromBackend(t *testing.T) {
	api := bookingAPI()
	api.getOffer = func(id int64, in, out domain.Date) (domain.HotelOffer, error) {
		return datedOffer("Grand"), nil
	}
	offers := app.NewOfferService(api, &fakeCache{}, time.Minute)
	ctx := context.Background()
	if _, err := offers.Offer(ctx, 1, in, out); err != nil {
		t.Fatal(err)
	}
	if _, err := app.NewBookingService(api, nil, offers).Submit(ctx, guest, validRequest(), i18n.For("en")); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := offers.Offer(ctx, 1, in, out); err != nil {
		t.Fatal(err)
	}
	if n := len(api.calls()); n != 2 {
		t.Fatalf("offer after a booking must be refetched, got %d calls", n)
	}
}
