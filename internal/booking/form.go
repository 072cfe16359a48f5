package booking

import (
	"errors"
	"fmt"

	"hotelos_gateway/internal/domain"
)

type FormState int

const (
	Editing FormState = iota
	RoomSelected
	Navigating
)

func (s FormState) String() string {
	switch s {
	case RoomSelected:
		return "room_selected"
	case Navigating:
		return "navigating"
	}
	return "editing"
}

// DisabledReason is an i18n key explaining why booking is not possible yet.
type DisabledReason string

const (
	ReasonMissingDates DisabledReason = "reservationForm.missingDates"
	ReasonNoRoom       DisabledReason = "reservationForm.noRoom"
	ReasonNoRooms      DisabledReason = "reservationForm.noRooms"
	ReasonInvalidRange DisabledReason = "reservationForm.invalidRange"
	ReasonLoading      DisabledReason = "reservationForm.loading"
	ReasonOverCapacity DisabledReason = "reservationForm.overCapacity"
)

const minGuestOptions = 6

// BookingIntent is what the form hands to the booking page. Nothing is
// persisted before the booking page submits.
type BookingIntent struct {
	HotelID  int64       `json:"hotelId"`
	RoomID   int64       `json:"roomId"`
	CheckIn  domain.Date `json:"checkIn"`
	CheckOut domain.Date `json:"checkOut"`
	Guests   int         `json:"guests"`
	Path     string      `json:"path"`
}

// ReservationForm tracks the guest's choice on the hotel page.
type ReservationForm struct {
	HotelID  int64
	CheckIn  domain.Date
	CheckOut domain.Date
	Guests   int
	Loading  bool

	rooms    []domain.Room
	selected *domain.Room
	state    FormState
}

func NewReservationForm(hotelID int64) *ReservationForm {
	return &ReservationForm{HotelID: hotelID, Guests: 1}
}

func (f *ReservationForm) State() FormState { return f.state }

func (f *ReservationForm) Selected() *domain.Room { return f.selected }

func (f *ReservationForm) Rooms() []domain.Room { return f.rooms }

// SetRooms replaces the candidate list. A selection that is no longer
// offered is dropped.
func (f *ReservationForm) SetRooms(rooms []domain.Room) {
	f.rooms = rooms
	if f.selected == nil {
		return
	}
	for i := range rooms {
		if rooms[i].RoomID == f.selected.RoomID {
			f.selected = &f.rooms[i]
			return
		}
	}
	f.selected = nil
	if f.state == RoomSelected {
		f.state = Editing
	}
}

func (f *ReservationForm) SetDates(in, out domain.Date) {
	f.CheckIn, f.CheckOut = in, out
}

func (f *ReservationForm) SetGuests(n int) {
	f.Guests = clampGuests(n)
}

var ErrRoomNotOffered = errors.New("room is not among the available rooms")

func (f *ReservationForm) SelectRoom(roomID int64) error {
	for i := range f.rooms {
		if f.rooms[i].RoomID == roomID {
			f.selected = &f.rooms[i]
			f.state = RoomSelected
			return nil
		}
	}
	return fmt.Errorf("room %d: %w", roomID, ErrRoomNotOffered)
}

// GuestOptions is the upper bound of the guest selector: at least six, never
// hiding the room's capacity or the current choice.
func (f *ReservationForm) GuestOptions() int {
	n := minGuestOptions
	if f.selected != nil && f.selected.EffectiveCapacity() > n {
		n = f.selected.EffectiveCapacity()
	}
	if f.Guests > n {
		n = f.Guests
	}
	return n
}

// DisabledReasons lists every condition that currently blocks booking.
func (f *ReservationForm) DisabledReasons() []DisabledReason {
	var rs []DisabledReason
	if f.CheckIn.IsZero() || f.CheckOut.IsZero() {
		rs = append(rs, ReasonMissingDates)
	} else if !ValidRange(f.CheckIn, f.CheckOut) {
		rs = append(rs, ReasonInvalidRange)
	}
	if len(f.rooms) == 0 {
		rs = append(rs, ReasonNoRooms)
	}
	if f.selected == nil {
		rs = append(rs, ReasonNoRoom)
	} else if f.Guests > f.selected.EffectiveCapacity() {
		rs = append(rs, ReasonOverCapacity)
	}
	if f.Loading {
		rs = append(rs, ReasonLoading)
	}
	return rs
}

func (f *ReservationForm) CanBook() bool { return len(f.DisabledReasons()) == 0 }

// Confirm moves the form to Navigating and returns the booking intent.
func (f *ReservationForm) Confirm() (BookingIntent, error) {
	if rs := f.DisabledReasons(); len(rs) > 0 {
		p := &Problem{Key: string(rs[0])}
		if rs[0] == ReasonOverCapacity {
			p.Args = []any{f.selected.EffectiveCapacity()}
		}
		return BookingIntent{}, p
	}
	f.state = Navigating
	return BookingIntent{
		HotelID:  f.HotelID,
		RoomID:   f.selected.RoomID,
		CheckIn:  f.CheckIn,
		CheckOut: f.CheckOut,
		Guests:   f.Guests,
		Path:     fmt.Sprintf("/book/%d/%d", f.HotelID, f.selected.RoomID),
	}, nil
}
