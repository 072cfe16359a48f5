package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hotelos_gateway/internal/adapters/observability"
	"hotelos_gateway/internal/booking"
	"hotelos_gateway/internal/domain"
	"hotelos_gateway/internal/i18n"
)

const exploreImageWorkers = 4

type OfferService struct {
	api      domain.HotelAPI
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewOfferService(api domain.HotelAPI, c domain.Cache, ttl time.Duration) *OfferService {
	return &OfferService{api: api, cache: c, cacheTTL: ttl}
}

// genTTL outlives any offer entry, so a lapsed generation never revives one.
const genTTL = 24 * time.Hour

// offerKey embeds the hotel's cache generation; Invalidate bumps it so every
// dated and undated entry of that hotel is skipped at once.
func offerKey(id, gen int64, in, out domain.Date) string {
	return fmt.Sprintf("offer:%d:%d:%s:%s", id, gen, in, out)
}

func genKey(id int64) string { return fmt.Sprintf("offergen:%d", id) }

func (s *OfferService) generation(ctx context.Context, id int64) int64 {
	var gen int64
	if _, err := s.cache.Get(ctx, genKey(id), &gen); err != nil {
		log.Warn().Err(err).Int64("hotel", id).Msg("offer generation read failed")
	}
	return gen
}

// Invalidate drops every cached offer of a hotel. Called after bookings and
// after room or hotel changes, so a reserved room is never served as free.
func (s *OfferService) Invalidate(ctx context.Context, hotelID int64) {
	if s == nil || s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	gen := s.generation(ctx, hotelID) + 1
	if err := s.cache.Set(ctx, genKey(hotelID), gen, int(genTTL.Seconds())); err != nil {
		log.Warn().Err(err).Int64("hotel", hotelID).Msg("offer cache invalidation failed")
	}
}

// Offer returns the hotel offer for the range, read through the cache.
// A half-set or invalid range is fetched undated.
func (s *OfferService) Offer(ctx context.Context, id int64, in, out domain.Date) (domain.HotelOffer, error) {
	if !booking.ValidRange(in, out) {
		in, out = domain.Date{}, domain.Date{}
	}
	if s.cache == nil || s.cacheTTL <= 0 {
		return s.api.GetOffer(ctx, id, in, out)
	}
	key := offerKey(id, s.generation(ctx, id), in, out)
	var o domain.HotelOffer
	if ok, err := s.cache.Get(ctx, key, &o); ok && err == nil {
		return o, nil
	} else if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("offer cache read failed")
	}
	o, err := s.api.GetOffer(ctx, id, in, out)
	if err != nil {
		return domain.HotelOffer{}, err
	}
	s.store(ctx, key, o)
	return o, nil
}

// Warm refreshes the undated offer in the cache regardless of its state.
func (s *OfferService) Warm(ctx context.Context, id int64) error {
	o, err := s.api.GetOffer(ctx, id, domain.Date{}, domain.Date{})
	if err != nil {
		return err
	}
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil
	}
	s.store(ctx, offerKey(id, s.generation(ctx, id), domain.Date{}, domain.Date{}), o)
	return nil
}

func (s *OfferService) store(ctx context.Context, key string, o domain.HotelOffer) {
	if err := s.cache.Set(ctx, key, o, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("offer cache write failed")
	}
}

// Images returns the gallery primary first. Failures degrade to the placeholder.
func (s *OfferService) Images(ctx context.Context, id int64, placeholder string) []ImageView {
	imgs, err := s.api.HotelImages(ctx, id)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Debug().Err(err).Int64("hotel", id).Msg("hotel images unavailable")
		}
		return imageViews(nil, placeholder)
	}
	return imageViews(imgs, placeholder)
}

/********** hotel page **********/

// OfferView is one open hotel page. Hotel details come from any successful
// reply; the room list only from the newest fetch, so a late reply never
// replaces rooms of a newer range.
type OfferView struct {
	svc     *OfferService
	hotelID int64

	mu         sync.Mutex
	seq        uint64
	hotel      *domain.HotelOffer // hotel details shown on the page
	hotelDated bool               // hotel came from a dated reply
	offer      *domain.HotelOffer // source of the candidate rooms
	images     []ImageView
	form       *booking.ReservationForm
	loading    int
	err        error
}

func (s *OfferService) NewView(hotelID int64) *OfferView {
	return &OfferView{svc: s, hotelID: hotelID, form: booking.NewReservationForm(hotelID)}
}

type ticket struct {
	seq     uint64
	in, out domain.Date
}

func (t ticket) dated() bool { return !t.in.IsZero() }

func (v *OfferView) issue(in, out domain.Date) ticket {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	v.loading++
	v.form.Loading = true
	return ticket{seq: v.seq, in: in, out: out}
}

func (v *OfferView) run(ctx context.Context, t ticket) {
	o, err := v.svc.Offer(ctx, v.hotelID, t.in, t.out)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading--
	v.form.Loading = v.loading > 0
	stale := t.seq != v.seq

	if err == nil {
		// an undated reply never replaces details from a dated one
		if !t.dated() && (v.hotel == nil || !v.hotelDated) {
			v.hotel, v.hotelDated = &o, false
		} else if t.dated() && !stale {
			v.hotel, v.hotelDated = &o, true
		}
		if v.hotel != nil && !domain.IsAuthError(v.err) {
			v.err = nil
		}
	}
	if stale {
		observability.StaleResponses.Inc()
		if err != nil && v.hotel == nil && v.err == nil {
			v.err = err
		}
		return
	}
	if err != nil {
		if v.hotel != nil && !domain.IsAuthError(err) {
			// hotel details stay on screen; only the rooms are missing
			log.Warn().Err(err).Int64("hotel", v.hotelID).Str("checkIn", t.in.String()).Msg("dated offer failed")
		}
		v.err = err
		return
	}
	v.err = nil
	v.offer = &o
	v.refreshRooms()
}

// refreshRooms recomputes the candidates; callers hold mu.
func (v *OfferView) refreshRooms() {
	if v.offer == nil {
		v.form.SetRooms(nil)
		return
	}
	v.form.SetRooms(booking.Candidates(*v.offer, v.form.Guests, booking.ValidRange(v.form.CheckIn, v.form.CheckOut)))
}

// Open loads the page: the undated offer, the dated one when the range is
// valid, and the gallery, all concurrently.
func (v *OfferView) Open(ctx context.Context, in, out domain.Date, guests int) {
	dated := booking.ValidRange(in, out)
	v.mu.Lock()
	v.form.SetGuests(guests)
	if dated {
		v.form.SetDates(in, out)
	}
	v.mu.Unlock()

	base := v.issue(domain.Date{}, domain.Date{})
	var g errgroup.Group
	g.Go(func() error { v.run(ctx, base); return nil })
	if dated {
		t := v.issue(in, out)
		g.Go(func() error { v.run(ctx, t); return nil })
	}
	g.Go(func() error {
		imgs := v.svc.Images(ctx, v.hotelID, HotelPlaceholder)
		v.mu.Lock()
		v.images = imgs
		v.mu.Unlock()
		return nil
	})
	_ = g.Wait()
}

// SetDates refetches for a valid range. Invalid or cleared ranges make no
// request, empty the candidate list and return false.
func (v *OfferView) SetDates(ctx context.Context, in, out domain.Date) bool {
	v.mu.Lock()
	v.form.SetDates(in, out)
	v.refreshRooms()
	v.mu.Unlock()
	if !booking.ValidRange(in, out) {
		return false
	}
	v.run(ctx, v.issue(in, out))
	return true
}

func (v *OfferView) SetGuests(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form.SetGuests(n)
	v.refreshRooms()
}

func (v *OfferView) SelectRoom(roomID int64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form.SelectRoom(roomID)
}

func (v *OfferView) Confirm() (booking.BookingIntent, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form.Confirm()
}

// Err is the error the page answers with: an auth failure, or a load
// failure that left no hotel details to show.
func (v *OfferView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.hotel != nil && !domain.IsAuthError(v.err) {
		return nil
	}
	return v.err
}

// HotelPage is the rendered state of an OfferView.
type HotelPage struct {
	ID              int64                     `json:"id"`
	Name            string                    `json:"name"`
	Path            string                    `json:"path"`
	Description     string                    `json:"description,omitempty"`
	Location        string                    `json:"location"`
	Address         domain.AddressInformation `json:"address"`
	Contact         domain.ContactInformation `json:"contact"`
	BasePrice       string                    `json:"basePrice,omitempty"`
	Images          []ImageView               `json:"images"`
	Amenities       []AmenityView             `json:"amenities"`
	Availability    []RoomTypeAvailability    `json:"availability"`
	BestValue       *RoomView                 `json:"bestValue,omitempty"`
	Rooms           []RoomView                `json:"rooms"`
	RoomsLoading    bool                      `json:"roomsLoading"`
	CheckIn         domain.Date               `json:"checkIn"`
	CheckOut        domain.Date               `json:"checkOut"`
	Guests          int                       `json:"guests"`
	GuestOptions    int                       `json:"guestOptions"`
	SelectedRoomID  int64                     `json:"selectedRoomId,omitempty"`
	CanBook         bool                      `json:"canBook"`
	DisabledReasons []string                  `json:"disabledReasons,omitempty"`
	FormState       string                    `json:"formState"`
	Banner          string                    `json:"banner,omitempty"`
}

// Page renders the view in l's language. Load errors become a banner.
func (v *OfferView) Page(l i18n.Localizer) HotelPage {
	v.mu.Lock()
	defer v.mu.Unlock()

	p := HotelPage{
		ID:           v.hotelID,
		Images:       v.images,
		RoomsLoading: v.loading > 0,
		CheckIn:      v.form.CheckIn,
		CheckOut:     v.form.CheckOut,
		Guests:       v.form.Guests,
		GuestOptions: v.form.GuestOptions(),
		CanBook:      v.form.CanBook(),
		FormState:    v.form.State().String(),
		Rooms:        roomViews(v.form.Rooms(), l),
	}
	if p.Images == nil {
		p.Images = imageViews(nil, HotelPlaceholder)
	}
	if sel := v.form.Selected(); sel != nil {
		p.SelectedRoomID = sel.RoomID
	}
	for _, r := range v.form.DisabledReasons() {
		msg := l.T(string(r))
		if r == booking.ReasonOverCapacity && v.form.Selected() != nil {
			msg = l.T(string(r), v.form.Selected().EffectiveCapacity())
		}
		p.DisabledReasons = append(p.DisabledReasons, msg)
	}
	if o := v.hotel; o != nil {
		p.Name = o.Name
		p.Path = HotelPath(o.ID, o.Name)
		p.Description = o.Description
		p.Location = booking.LocationString(o.AddressInformation)
		p.Address = o.AddressInformation
		p.Contact = o.ContactInformation
		if o.BasePrice > 0 {
			p.BasePrice = booking.FormatPrice(o.BasePrice)
		}
		p.Amenities = amenityViews(o.Amenities, l)
	}
	if o := v.offer; o != nil {
		p.Availability = availabilityViews(o.RoomTypeCountAvailableList, l)
		if o.CheapestRoom != nil && booking.ValidRange(v.form.CheckIn, v.form.CheckOut) {
			rv := roomView(*o.CheapestRoom, l)
			p.BestValue = &rv
		}
	}
	switch {
	case v.err == nil, v.hotel != nil && !domain.IsAuthError(v.err):
	case errors.Is(v.err, domain.ErrNotFound):
		p.Banner = l.T("hotelDetails.notFound")
	default:
		p.Banner = l.T("hotelDetails.loadError")
	}
	return p
}

/********** explore **********/

type ExplorePage struct {
	Hotels        []HotelCard `json:"hotels"`
	Page          int         `json:"page"`
	TotalPages    int         `json:"totalPages"`
	TotalElements int64       `json:"totalElements"`
}

// Explore lists the offers page and resolves each card image with a bounded
// number of concurrent gallery calls.
func (s *OfferService) Explore(ctx context.Context, q domain.HotelsQuery, l i18n.Localizer) (ExplorePage, error) {
	pg, err := s.api.ListOffers(ctx, q)
	if err != nil {
		return ExplorePage{}, err
	}
	images := make([]string, len(pg.Content))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(exploreImageWorkers)
	for i, o := range pg.Content {
		i, id := i, o.ID
		g.Go(func() error {
			imgs := s.Images(gctx, id, CardPlaceholder)
			images[i] = imgs[0].URL
			return nil
		})
	}
	_ = g.Wait()

	out := ExplorePage{
		Hotels:        make([]HotelCard, 0, len(pg.Content)),
		Page:          pg.Number,
		TotalPages:    pg.TotalPages,
		TotalElements: pg.TotalElements,
	}
	for i, o := range pg.Content {
		out.Hotels = append(out.Hotels, hotelCard(o, images[i], l))
	}
	return out, nil
}
