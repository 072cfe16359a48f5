package app_test

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"hotelos_gateway/internal/domain"
)

// ---- fakes ----

// fakeAPI embeds the interface so only the calls a test needs are defined;
// anything else panics.
type fakeAPI struct {
	domain.HotelOS

	mu          sync.Mutex
	offerCalls  []string
	getOffer    func(id int64, in, out domain.Date) (domain.HotelOffer, error)
	images      map[int64][]domain.EntityImage
	offers      domain.Page[domain.HotelOffer]
	hotels      map[int64]domain.Hotel
	rooms       map[int64]domain.Room
	roomTypes   []domain.RoomType
	created     []domain.Reservation
	createErr   error
	createdRoom *domain.Room
	createdHtl  *domain.Hotel
	auth        func(token string) (domain.AuthResponse, error)
	authCalls   int
	login       domain.AuthResponse
	updated     *domain.User
}

func (f *fakeAPI) GetOffer(ctx context.Context, id int64, in, out domain.Date) (domain.HotelOffer, error) {
	f.mu.Lock()
	f.offerCalls = append(f.offerCalls, in.String()+"|"+out.String())
	fn := f.getOffer
	f.mu.Unlock()
	return fn(id, in, out)
}

func (f *fakeAPI) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.offerCalls...)
}

func (f *fakeAPI) HotelImages(ctx context.Context, id int64) ([]domain.EntityImage, error) {
	imgs, ok := f.images[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return imgs, nil
}

func (f *fakeAPI) ListOffers(ctx context.Context, q domain.HotelsQuery) (domain.Page[domain.HotelOffer], error) {
	return f.offers, nil
}

func (f *fakeAPI) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (f *fakeAPI) CreateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	f.createdHtl = &h
	h.ID = 99
	return h, nil
}

func (f *fakeAPI) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeAPI) CreateRoom(ctx context.Context, r domain.Room) (domain.Room, error) {
	f.createdRoom = &r
	r.RoomID = 500
	return r, nil
}

func (f *fakeAPI) UpdateRoom(ctx context.Context, id int64, r domain.Room) (domain.Room, error) {
	f.createdRoom = &r
	return r, nil
}

func (f *fakeAPI) ListRoomTypes(ctx context.Context, hotelID int64, includeInactive bool) ([]domain.RoomType, error) {
	return f.roomTypes, nil
}

func (f *fakeAPI) CreateReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	if f.createErr != nil {
		return domain.Reservation{}, f.createErr
	}
	f.created = append(f.created, r)
	r.ReservationID = 77
	return r, nil
}

func (f *fakeAPI) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	return f.login, nil
}

func (f *fakeAPI) Authenticate(ctx context.Context, token string) (domain.AuthResponse, error) {
	f.mu.Lock()
	f.authCalls++
	f.mu.Unlock()
	return f.auth(token)
}

func (f *fakeAPI) UpdateUser(ctx context.Context, id int64, u domain.User) (domain.User, error) {
	f.updated = &u
	return u, nil
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	sets  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	c.store[key] = b
	if strings.HasPrefix(key, "offer:") {
		c.sets++
	}
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

type fakeLog struct {
	mu       sync.Mutex
	attempts []domain.BookingAttempt
}

func (l *fakeLog) LogAttempt(ctx context.Context, a domain.BookingAttempt) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts = append(l.attempts, a)
	return nil
}

func (l *fakeLog) ListAttempts(ctx context.Context, q domain.AttemptsQuery) ([]domain.BookingAttempt, error) {
	return l.attempts, nil
}

type fakeStore struct {
	users map[string]domain.User
	ttls  map[string]time.Duration
}

func (s *fakeStore) PutSession(ctx context.Context, token string, u domain.User, ttl time.Duration) error {
	if s.users == nil {
		s.users, s.ttls = map[string]domain.User{}, map[string]time.Duration{}
	}
	s.users[token], s.ttls[token] = u, ttl
	return nil
}

func (s *fakeStore) GetSession(ctx context.Context, token string) (domain.User, bool, error) {
	u, ok := s.users[token]
	return u, ok, nil
}

func (s *fakeStore) DeleteSession(ctx context.Context, token string) error {
	delete(s.users, token)
	return nil
}

func ptr[T any](v T) *T { return &v }
