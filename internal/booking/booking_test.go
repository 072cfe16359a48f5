package booking_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"hotelos_gateway/internal/booking"
	"hotelos_gateway/internal/domain"
	"hotelos_gateway/internal/i18n"
)

func date(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func intp(v int) *int { return &v }

func room(id int64, status domain.RoomStatus, capacity *int) *domain.Room {
	return &domain.Room{RoomID: id, RoomNumber: 100 + id, Status: status, Capacity: capacity, Price: 50}
}

func TestCalculatePrice(t *testing.T) {
	cases := []struct {
		base, mod, factor, want float64
	}{
		{100, 1.2, 1.5, 180},
		{100, 0, 0, 100},
		{80, 0, 1.25, 100},
		{99.99, 1.1, 1, 109.99},
		{0, 2, 3, 0},
	}
	for _, tc := range cases {
		if got := booking.CalculatePrice(tc.base, tc.mod, tc.factor); got != tc.want {
			t.Errorf("CalculatePrice(%v,%v,%v) = %v, want %v", tc.base, tc.mod, tc.factor, got, tc.want)
		}
	}
}

func TestRoomPrice_UsesStructuredType(t *testing.T) {
	mod := 1.2
	r := domain.Room{PriceModifier: &mod, RoomType: domain.RoomTypeRef{Type: &domain.RoomType{PriceFactor: 1.5}}}
	if got := booking.RoomPrice(domain.Hotel{BasePrice: 100}, r, nil); got != 180 {
		t.Fatalf("got %v", got)
	}
	// explicit type wins over the embedded one
	if got := booking.RoomPrice(domain.Hotel{BasePrice: 100}, r, &domain.RoomType{PriceFactor: 2}); got != 240 {
		t.Fatalf("got %v", got)
	}
}

func TestNights(t *testing.T) {
	if n := booking.Nights(date(t, "2024-03-01"), date(t, "2024-03-03")); n != 2 {
		t.Fatalf("expected 2 nights, got %d", n)
	}
	if n := booking.Nights(date(t, "2024-03-01"), date(t, "2024-03-01")); n != 1 {
		t.Fatalf("same day must floor to 1, got %d", n)
	}
	if n := booking.Nights(date(t, "2024-03-05"), date(t, "2024-03-01")); n != 1 {
		t.Fatalf("reversed range must floor to 1, got %d", n)
	}
	// crosses the end of February in a leap year
	if n := booking.Nights(date(t, "2024-02-27"), date(t, "2024-03-02")); n != 4 {
		t.Fatalf("expected 4 nights, got %d", n)
	}
	if got := booking.TotalAmount(120.5, date(t, "2024-03-01"), date(t, "2024-03-04")); got != 361.5 {
		t.Fatalf("total %v", got)
	}
}

func TestValidRange(t *testing.T) {
	in, out := date(t, "2025-01-10"), date(t, "2025-01-12")
	if !booking.ValidRange(in, out) {
		t.Fatalf("expected valid")
	}
	if booking.ValidRange(out, in) || booking.ValidRange(in, in) || booking.ValidRange(in, domain.Date{}) {
		t.Fatalf("expected invalid")
	}
}

func TestCandidates_FilterAndDedupe(t *testing.T) {
	offer := domain.HotelOffer{
		CheapestRoomByTypeList: []domain.CheapestRoomByType{
			{Room: room(1, domain.RoomAvailable, intp(1))},
			{Room: room(2, domain.RoomOccupied, intp(4))},
			{Room: room(3, domain.RoomAvailable, intp(4))},
			{Room: nil},
			{Room: room(4, domain.RoomReserved, intp(4))},
			{Room: room(5, domain.RoomAvailable, intp(2))},
		},
		// duplicate of room 3
		CheapestRoom: room(3, domain.RoomAvailable, intp(4)),
	}
	got := booking.Candidates(offer, 3, true)
	var ids []int64
	for _, r := range got {
		ids = append(ids, r.RoomID)
	}
	if diff := cmp.Diff([]int64{3}, ids); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}

	if got := booking.Candidates(offer, 1, false); len(got) != 0 {
		t.Fatalf("no dates must give no candidates, got %d", len(got))
	}
}

func TestCandidates_MissingCapacityCountsAsOne(t *testing.T) {
	offer := domain.HotelOffer{CheapestRoom: room(9, domain.RoomAvailable, nil)}
	if got := booking.Candidates(offer, 1, true); len(got) != 1 {
		t.Fatalf("expected room for one guest")
	}
	if got := booking.Candidates(offer, 2, true); len(got) != 0 {
		t.Fatalf("expected no room for two guests")
	}
}

func TestGuestForms_Resize(t *testing.T) {
	four := booking.GuestForms{
		{FirstName: "Ann", LastName: "A", Email: "a@x.io", PhoneNumber: "1"},
		{FirstName: "Bob", LastName: "B"},
		{FirstName: "Cid", LastName: "C", IsChild: true},
		{FirstName: "Dee", LastName: "D"},
	}
	orig := append(booking.GuestForms(nil), four...)

	two := four.Resize(2)
	if diff := cmp.Diff(orig[:2], two); diff != "" {
		t.Fatalf("shrink changed survivors (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(orig, four); diff != "" {
		t.Fatalf("shrink mutated the source (-want +got):\n%s", diff)
	}

	grown := two.Resize(4)
	want := append(append(booking.GuestForms(nil), orig[:2]...), booking.GuestForm{}, booking.GuestForm{})
	if diff := cmp.Diff(want, grown); diff != "" {
		t.Fatalf("grow mismatch (-want +got):\n%s", diff)
	}
	if n := len(booking.GuestForms(nil).Resize(0)); n != 1 {
		t.Fatalf("at least one seat, got %d", n)
	}
	if n := len(booking.GuestForms(nil).Resize(1000)); n != booking.MaxGuests {
		t.Fatalf("seats capped at %d, got %d", booking.MaxGuests, n)
	}
}

func validGuests() booking.GuestForms {
	return booking.GuestForms{
		{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", PhoneNumber: "+1 555 0100"},
		{FirstName: "Tom", LastName: "Lee", IsChild: true},
	}
}

func TestValidateGuests(t *testing.T) {
	if err := booking.ValidateGuests(validGuests()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	g := validGuests()
	g[0].IsChild = true
	if err := booking.ValidateGuests(g); !errors.Is(err, booking.ErrPrimaryChild) {
		t.Fatalf("expected primary-adult error, got %v", err)
	}
	// primary age is reported first even with other gaps
	g[1].FirstName = ""
	if err := booking.ValidateGuests(g); !errors.Is(err, booking.ErrPrimaryChild) {
		t.Fatalf("expected primary-adult error first, got %v", err)
	}
	if err := booking.ValidateGuests(g); err.Error() != "Primary guest must be an adult." {
		t.Fatalf("message %q", err.Error())
	}

	g = validGuests()
	g[0].PhoneNumber = "  "
	if err := booking.ValidateGuests(g); !errors.Is(err, booking.ErrGuestFields) {
		t.Fatalf("expected required-fields error, got %v", err)
	}
	g = validGuests()
	g[1].LastName = ""
	if err := booking.ValidateGuests(g); !errors.Is(err, booking.ErrGuestFields) {
		t.Fatalf("expected required-fields error, got %v", err)
	}
	// only the primary needs contact details
	g = validGuests()
	g[1].Email, g[1].PhoneNumber = "", ""
	if err := booking.ValidateGuests(g); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestBuildReservation(t *testing.T) {
	g := validGuests()
	g = append(g, booking.GuestForm{FirstName: "Sam", LastName: "Lee"})
	r := booking.BuildReservation(booking.Draft{
		HotelName:       "Grand Plaza",
		Room:            domain.Room{RoomID: 7, RoomNumber: 204, Price: 150},
		UserID:          42,
		CheckIn:         date(t, "2025-05-01"),
		CheckOut:        date(t, "2025-05-04"),
		Guests:          g,
		SpecialRequests: "late arrival",
	})

	if r.ReservationName != "Grand Plaza - Room 204" {
		t.Fatalf("name %q", r.ReservationName)
	}
	if r.TotalAmount != 450 || r.Status != domain.ReservationPending {
		t.Fatalf("total/status: %v %s", r.TotalAmount, r.Status)
	}
	if r.Adults != 2 || r.Children != 1 {
		t.Fatalf("adults/children: %d/%d", r.Adults, r.Children)
	}
	if r.User == nil || r.User.UserID != 42 || r.Room.RoomID != 7 {
		t.Fatalf("refs: %+v %+v", r.User, r.Room)
	}
	if r.PrimaryGuestPhone != "+1 555 0100" {
		t.Fatalf("primary phone %q", r.PrimaryGuestPhone)
	}
	var flags []bool
	for _, gu := range r.Guests {
		flags = append(flags, gu.IsPrimaryGuest)
	}
	if diff := cmp.Diff([]bool{true, false, false}, flags); diff != "" {
		t.Fatalf("primary flags (-want +got):\n%s", diff)
	}
	if !r.Guests[0].IsAdult || r.Guests[1].IsAdult || r.Guests[0].BookedByID != 42 {
		t.Fatalf("guest flags: %+v", r.Guests)
	}
}

func TestValidatePostalCode(t *testing.T) {
	cases := []struct {
		country, value string
		ok             bool
	}{
		{"Canada", "A1A 1A1", true},
		{"Canada", "12345", false},
		{"ca", "k1a-0b1", true},
		{"United States", "12345-6789", true},
		{"United States", "12345", true},
		{"United States", "ABCDE", false},
		{"Polska", "00-950", true},
		{"PL", "00950", false},
		{"United Kingdom", "sw1a 1aa", true},
		{"GB", "123", false},
		{"Germany", "10115", true},
		{"Germany", "12", false},
	}
	for _, tc := range cases {
		err := booking.ValidatePostalCode(tc.country, tc.value)
		if (err == nil) != tc.ok {
			t.Errorf("ValidatePostalCode(%q, %q) = %v, want ok=%v", tc.country, tc.value, err, tc.ok)
		}
	}
	if err := booking.ValidatePostalCode("Canada", ""); !errors.Is(err, booking.ErrPostalRequired) {
		t.Fatalf("expected required error, got %v", err)
	}
	var p *booking.Problem
	if err := booking.ValidatePostalCode("usa", "x"); !errors.As(err, &p) || p.Key != "postal.invalidUS" {
		t.Fatalf("expected US problem, got %v", err)
	}
}

func TestNormalizeRoomTypeLabel(t *testing.T) {
	en, es := i18n.For("en"), i18n.For("es")
	cases := []struct {
		name string
		ref  domain.RoomTypeRef
		l    i18n.Localizer
		want string
	}{
		{"structured", domain.RoomTypeRef{Type: &domain.RoomType{Name: "Deluxe"}}, en, "Deluxe"},
		{"debug string", domain.RoomTypeRef{Raw: "RoomTypeDto(id=1, name=Standard, priceFactor=1.0)"}, es, "Estándar"},
		{"spaced key", domain.RoomTypeRef{Raw: "RoomTypeDto(id=4, name= Presidential Suite )"}, en, "Presidential Suite"},
		{"unknown name", domain.RoomTypeRef{Type: &domain.RoomType{Name: "ocean_view"}}, en, "ocean view"},
		{"unparsable", domain.RoomTypeRef{Raw: "garbage"}, en, "Unknown type"},
		{"empty", domain.RoomTypeRef{}, es, "Tipo desconocido"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := booking.NormalizeRoomTypeLabel(tc.ref, tc.l); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAmenityHelpers(t *testing.T) {
	if got := booking.ParseAmenityType(" pool "); got != domain.AmenityPool {
		t.Fatalf("got %s", got)
	}
	if got := booking.ParseAmenityType("OUTDOOR_SPORTS"); got != domain.AmenitySports {
		t.Fatalf("got %s", got)
	}
	if got := booking.ParseAmenityType("spa"); got != domain.AmenityOther {
		t.Fatalf("got %s", got)
	}
	if got := booking.AmenityIcon("parking"); got != "local_parking" {
		t.Fatalf("icon %s", got)
	}
}

func TestFormatting(t *testing.T) {
	if got := booking.FormatPrice(180); got != "$180.00" {
		t.Fatalf("price %q", got)
	}
	if got := booking.LocationString(domain.AddressInformation{City: "Krakow", Country: "Poland"}); got != "Krakow, Poland" {
		t.Fatalf("location %q", got)
	}
	if got := booking.HotelSlug("Grand Hôtel & Spa"); got != "grand-hotel-and-spa" {
		t.Fatalf("slug %q", got)
	}
}
