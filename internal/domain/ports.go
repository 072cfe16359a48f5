package domain

import (
	"context"
	"time"
)

type HotelAPI interface {
	ListHotels(ctx context.Context, q HotelsQuery) (Page[Hotel], error)
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	CreateHotel(ctx context.Context, h Hotel) (Hotel, error)
	UpdateHotel(ctx context.Context, id int64, h Hotel) (Hotel, error)
	DeleteHotel(ctx context.Context, id int64) error
	HotelStatistics(ctx context.Context, id int64) (HotelStatistics, error)
	ListOffers(ctx context.Context, q HotelsQuery) (Page[HotelOffer], error)
	GetOffer(ctx context.Context, id int64, checkIn, checkOut Date) (HotelOffer, error)
	HotelImages(ctx context.Context, id int64) ([]EntityImage, error)
	UploadHotelPrimaryImage(ctx context.Context, id int64, f FileUpload) error
	UploadHotelImages(ctx context.Context, id int64, fs []FileUpload) error
	DeleteHotelImage(ctx context.Context, hotelID, imageID int64) error
	SetHotelPrimaryImage(ctx context.Context, hotelID, imageID int64) error
	HotelRooms(ctx context.Context, hotelID int64, pg PageQuery) (Page[Room], error)
	HotelUsers(ctx context.Context, hotelID int64, pg PageQuery, email string) (Page[User], error)
}

type RoomAPI interface {
	CreateRoom(ctx context.Context, r Room) (Room, error)
	GetRoom(ctx context.Context, id int64) (Room, error)
	UpdateRoom(ctx context.Context, id int64, r Room) (Room, error)
	DeleteRoom(ctx context.Context, id int64) error
	RoomImages(ctx context.Context, id int64) ([]EntityImage, error)
	UploadRoomPrimaryImage(ctx context.Context, id int64, f FileUpload) error
	DeleteRoomImage(ctx context.Context, roomID, imageID int64) error
}

type RoomTypeAPI interface {
	// ListRoomTypes returns global types when hotelID is 0.
	ListRoomTypes(ctx context.Context, hotelID int64, includeInactive bool) ([]RoomType, error)
	CreateRoomType(ctx context.Context, rt RoomType) (RoomType, error)
}

type UserAPI interface {
	ListUsers(ctx context.Context, pg PageQuery, search string) (Page[User], error)
	GetUser(ctx context.Context, id int64) (User, error)
	UpdateUser(ctx context.Context, id int64, u User) (User, error)
	DeleteUser(ctx context.Context, id int64) error
	UploadUserImage(ctx context.Context, id int64, f FileUpload) error
}

type AuthAPI interface {
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Authenticate(ctx context.Context, token string) (AuthResponse, error)
	ChangePassword(ctx context.Context, req PasswordChange) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, req PasswordResetConfirm) error
}

type AmenityAPI interface {
	CreateAmenity(ctx context.Context, a Amenity) (Amenity, error)
	HotelAmenities(ctx context.Context, hotelID int64, pg PageQuery) (Page[Amenity], error)
}

type ReservationAPI interface {
	CreateReservation(ctx context.Context, r Reservation) (Reservation, error)
	GetReservation(ctx context.Context, id int64) (Reservation, error)
	UserReservations(ctx context.Context, userID int64, pg PageQuery) (Page[Reservation], error)
	HotelReservations(ctx context.Context, hotelID int64, pg PageQuery, name string) (Page[Reservation], error)
}

// HotelOS is the whole backend surface, implemented by the hotelos adapter.
type HotelOS interface {
	HotelAPI
	RoomAPI
	RoomTypeAPI
	UserAPI
	AuthAPI
	AmenityAPI
	ReservationAPI
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type BookingLog interface {
	LogAttempt(ctx context.Context, a BookingAttempt) error
	ListAttempts(ctx context.Context, q AttemptsQuery) ([]BookingAttempt, error)
}

type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type PageQuery struct {
	Page int
	Size int
}

type HotelsQuery struct {
	Name    string
	Country string
	City    string
	SortBy  string
	PageQuery
}

// Page mirrors the backend's paged envelope.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

type AttemptOutcome string

const (
	AttemptOK       AttemptOutcome = "ok"
	AttemptRejected AttemptOutcome = "rejected"
	AttemptFailed   AttemptOutcome = "failed"
)

type BookingAttempt struct {
	ID            string         `json:"id"`
	UserID        int64          `json:"userId"`
	HotelID       int64          `json:"hotelId"`
	RoomID        int64          `json:"roomId"`
	CheckIn       Date           `json:"checkIn"`
	CheckOut      Date           `json:"checkOut"`
	Guests        int            `json:"guests"`
	TotalAmount   float64        `json:"totalAmount"`
	Outcome       AttemptOutcome `json:"outcome"`
	Reason        string         `json:"reason,omitempty"`
	ReservationID *int64         `json:"reservationId,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type AttemptsQuery struct {
	HotelID int64
	UserID  int64
	Limit   int
}

// SessionStore caches the user a bearer token resolves to.
type SessionStore interface {
	PutSession(ctx context.Context, token string, u User, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (User, bool, error)
	DeleteSession(ctx context.Context, token string) error
}
