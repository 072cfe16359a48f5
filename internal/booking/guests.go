package booking

import (
	"fmt"
	"strings"

	"hotelos_gateway/internal/domain"
)

type GuestForm struct {
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Email               string `json:"email,omitempty"`
	PhoneNumber         string `json:"phoneNumber,omitempty"`
	IsChild             bool   `json:"isChild"`
	SpecialRequirements string `json:"specialRequirements,omitempty"`
}

// GuestForms holds one form per seat; index 0 is the primary guest.
type GuestForms []GuestForm

// MaxGuests bounds any guest count taken from a request.
const MaxGuests = 20

// Resize returns a list of exactly n forms, clamped to 1..MaxGuests.
// Survivors are copied unchanged, new seats get empty templates.
func (g GuestForms) Resize(n int) GuestForms {
	n = clampGuests(n)
	out := make(GuestForms, n)
	copy(out, g)
	return out
}

func clampGuests(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MaxGuests:
		return MaxGuests
	}
	return n
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// ValidateGuests checks the primary guest's age before anything else, then
// names for every guest and contact details for the primary.
func ValidateGuests(g GuestForms) error {
	if len(g) == 0 {
		return ErrGuestFields
	}
	if g[0].IsChild {
		return ErrPrimaryChild
	}
	for _, f := range g {
		if blank(f.FirstName) || blank(f.LastName) {
			return ErrGuestFields
		}
	}
	if blank(g[0].Email) || blank(g[0].PhoneNumber) {
		return ErrGuestFields
	}
	return nil
}

// Draft is everything the booking page collected.
type Draft struct {
	HotelName       string
	Room            domain.Room
	UserID          int64
	CheckIn         domain.Date
	CheckOut        domain.Date
	Guests          GuestForms
	SpecialRequests string
}

// BuildReservation assembles the PENDING reservation payload. Callers
// validate the guests first.
func BuildReservation(d Draft) domain.Reservation {
	guests := make([]domain.Guest, len(d.Guests))
	var adults, children int
	for i, f := range d.Guests {
		adult := !f.IsChild || i == 0
		if adult {
			adults++
		} else {
			children++
		}
		guests[i] = domain.Guest{
			FirstName:           strings.TrimSpace(f.FirstName),
			LastName:            strings.TrimSpace(f.LastName),
			Email:               strings.TrimSpace(f.Email),
			PhoneNumber:         strings.TrimSpace(f.PhoneNumber),
			BookedByID:          d.UserID,
			IsPrimaryGuest:      i == 0,
			IsAdult:             adult,
			SpecialRequirements: f.SpecialRequirements,
		}
	}
	r := domain.Reservation{
		ReservationName: ReservationName(d.HotelName, d.Room.RoomNumber),
		Room:            &domain.Room{RoomID: d.Room.RoomID},
		CheckInDate:     d.CheckIn,
		CheckOutDate:    d.CheckOut,
		TotalAmount:     TotalAmount(d.Room.Price, d.CheckIn, d.CheckOut),
		Status:          domain.ReservationPending,
		Adults:          adults,
		Children:        children,
		SpecialRequests: d.SpecialRequests,
		Guests:          guests,
	}
	if d.UserID != 0 {
		r.User = &domain.User{UserID: d.UserID}
	}
	if len(guests) > 0 {
		r.PrimaryGuestPhone = guests[0].PhoneNumber
	}
	return r
}

func ReservationName(hotel string, roomNumber int64) string {
	hotel = strings.TrimSpace(hotel)
	if hotel == "" {
		hotel = "Hotel"
	}
	return fmt.Sprintf("%s - Room %d", hotel, roomNumber)
}
