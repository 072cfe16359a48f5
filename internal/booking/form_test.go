package booking_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"hotelos_gateway/internal/booking"
	"hotelos_gateway/internal/domain"
)

func TestReservationForm_Flow(t *testing.T) {
	f := booking.NewReservationForm(5)
	want := []booking.DisabledReason{booking.ReasonMissingDates, booking.ReasonNoRooms, booking.ReasonNoRoom}
	if diff := cmp.Diff(want, f.DisabledReasons()); diff != "" {
		t.Fatalf("initial reasons (-want +got):\n%s", diff)
	}

	f.SetDates(date(t, "2025-07-01"), date(t, "2025-07-03"))
	f.SetRooms([]domain.Room{*room(11, domain.RoomAvailable, intp(2)), *room(12, domain.RoomAvailable, intp(8))})
	if err := f.SelectRoom(99); !errors.Is(err, booking.ErrRoomNotOffered) {
		t.Fatalf("expected not offered, got %v", err)
	}
	if err := f.SelectRoom(11); err != nil {
		t.Fatalf("select: %v", err)
	}
	if f.State() != booking.RoomSelected {
		t.Fatalf("state %s", f.State())
	}

	f.SetGuests(3)
	if diff := cmp.Diff([]booking.DisabledReason{booking.ReasonOverCapacity}, f.DisabledReasons()); diff != "" {
		t.Fatalf("capacity reasons (-want +got):\n%s", diff)
	}
	var p *booking.Problem
	if _, err := f.Confirm(); !errors.As(err, &p) || p.Error() != "The selected room holds at most 2 guests." {
		t.Fatalf("confirm over capacity: %v", err)
	}

	f.SetGuests(2)
	f.Loading = true
	if f.CanBook() {
		t.Fatalf("must not book while loading")
	}
	f.Loading = false

	intent, err := f.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if intent.Path != "/book/5/11" || intent.Guests != 2 || intent.CheckIn.String() != "2025-07-01" {
		t.Fatalf("intent %+v", intent)
	}
	if f.State() != booking.Navigating {
		t.Fatalf("state %s", f.State())
	}
}

func TestReservationForm_InvalidRange(t *testing.T) {
	f := booking.NewReservationForm(1)
	f.SetDates(date(t, "2025-07-03"), date(t, "2025-07-03"))
	f.SetRooms([]domain.Room{*room(1, domain.RoomAvailable, nil)})
	_ = f.SelectRoom(1)
	if diff := cmp.Diff([]booking.DisabledReason{booking.ReasonInvalidRange}, f.DisabledReasons()); diff != "" {
		t.Fatalf("reasons (-want +got):\n%s", diff)
	}
}

func TestReservationForm_GuestOptions(t *testing.T) {
	f := booking.NewReservationForm(1)
	if n := f.GuestOptions(); n != 6 {
		t.Fatalf("default options %d", n)
	}
	f.SetRooms([]domain.Room{*room(1, domain.RoomAvailable, intp(8))})
	_ = f.SelectRoom(1)
	if n := f.GuestOptions(); n != 8 {
		t.Fatalf("capacity options %d", n)
	}
	f.SetGuests(10)
	if n := f.GuestOptions(); n != 10 {
		t.Fatalf("current guests must stay visible, got %d", n)
	}
}

func TestReservationForm_SelectionDroppedWhenRoomsChange(t *testing.T) {
	f := booking.NewReservationForm(1)
	f.SetRooms([]domain.Room{*room(1, domain.RoomAvailable, nil)})
	_ = f.SelectRoom(1)
	f.SetRooms([]domain.Room{*room(2, domain.RoomAvailable, nil)})
	if f.Selected() != nil || f.State() != booking.Editing {
		t.Fatalf("selection must be dropped: %+v %s", f.Selected(), f.State())
	}
}
