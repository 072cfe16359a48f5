package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"hotelos_gateway/internal/booking"
	"hotelos_gateway/internal/domain"
	"hotelos_gateway/internal/i18n"
)

// AdminService backs the admin and manager screens. Manager scoping is
// enforced by the router.
type AdminService struct {
	api    domain.HotelOS
	offers OfferInvalidator
}

// NewAdminService builds the service; offers may be nil when nothing caches
// hotel offers.
func NewAdminService(api domain.HotelOS, offers OfferInvalidator) *AdminService {
	return &AdminService{api: api, offers: offers}
}

// changed drops the hotel's cached offers after a successful mutation.
func (s *AdminService) changed(ctx context.Context, hotelID int64, err error) {
	if err == nil && s.offers != nil {
		s.offers.Invalidate(ctx, hotelID)
	}
}

func invalid(field, msg string) error {
	return &domain.ValidationError{Status: http.StatusBadRequest, Fields: map[string]string{field: msg}}
}

/********** hotels **********/

func (s *AdminService) ListHotels(ctx context.Context, q domain.HotelsQuery) (domain.Page[domain.Hotel], error) {
	return s.api.ListHotels(ctx, q)
}

func (s *AdminService) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	return s.api.GetHotel(ctx, id)
}

func validateHotel(h domain.Hotel) error {
	if strings.TrimSpace(h.Name) == "" {
		return invalid("name", "must not be blank")
	}
	if h.BasePrice < 0 {
		return invalid("basePrice", "must not be negative")
	}
	return booking.ValidatePostalCode(h.AddressInformation.Country, strings.TrimSpace(h.AddressInformation.ZipCode))
}

// CreateHotel validates the postal code for the country before any call.
func (s *AdminService) CreateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	if err := validateHotel(h); err != nil {
		return domain.Hotel{}, err
	}
	h.ID = 0
	return s.api.CreateHotel(ctx, h)
}

func (s *AdminService) UpdateHotel(ctx context.Context, id int64, h domain.Hotel) (domain.Hotel, error) {
	if err := validateHotel(h); err != nil {
		return domain.Hotel{}, err
	}
	h.ID = id
	out, err := s.api.UpdateHotel(ctx, id, h)
	s.changed(ctx, id, err)
	return out, err
}

func (s *AdminService) DeleteHotel(ctx context.Context, id int64) error {
	err := s.api.DeleteHotel(ctx, id)
	s.changed(ctx, id, err)
	return err
}

func (s *AdminService) HotelStatistics(ctx context.Context, id int64) (domain.HotelStatistics, error) {
	return s.api.HotelStatistics(ctx, id)
}

// HotelOverview is the manager landing page: hotel and statistics together.
type HotelOverview struct {
	Hotel      domain.Hotel           `json:"hotel"`
	Location   string                 `json:"location"`
	Statistics domain.HotelStatistics `json:"statistics"`
	Images     []ImageView            `json:"images"`
}

func (s *AdminService) HotelOverview(ctx context.Context, id int64) (HotelOverview, error) {
	var ov HotelOverview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { ov.Hotel, err = s.api.GetHotel(gctx, id); return err })
	g.Go(func() (err error) { ov.Statistics, err = s.api.HotelStatistics(gctx, id); return err })
	g.Go(func() error {
		imgs, err := s.api.HotelImages(gctx, id)
		if err != nil {
			imgs = nil
		}
		ov.Images = imageViews(imgs, "")
		return nil
	})
	if err := g.Wait(); err != nil {
		return HotelOverview{}, err
	}
	ov.Location = booking.LocationString(ov.Hotel.AddressInformation)
	return ov, nil
}

func (s *AdminService) HotelImages(ctx context.Context, id int64) ([]ImageView, error) {
	imgs, err := s.api.HotelImages(ctx, id)
	if err != nil {
		return nil, err
	}
	return imageViews(imgs, ""), nil
}

func (s *AdminService) UploadHotelImages(ctx context.Context, id int64, primary bool, files []domain.FileUpload) error {
	if len(files) == 0 {
		return invalid("files", "no file selected")
	}
	if primary {
		return s.api.UploadHotelPrimaryImage(ctx, id, files[0])
	}
	return s.api.UploadHotelImages(ctx, id, files)
}

func (s *AdminService) DeleteHotelImage(ctx context.Context, hotelID, imageID int64) error {
	return s.api.DeleteHotelImage(ctx, hotelID, imageID)
}

func (s *AdminService) SetHotelPrimaryImage(ctx context.Context, hotelID, imageID int64) error {
	return s.api.SetHotelPrimaryImage(ctx, hotelID, imageID)
}

/********** rooms **********/

type RoomPage struct {
	Rooms         []RoomView `json:"rooms"`
	Page          int        `json:"page"`
	TotalPages    int        `json:"totalPages"`
	TotalElements int64      `json:"totalElements"`
}

func (s *AdminService) HotelRooms(ctx context.Context, hotelID int64, pg domain.PageQuery, l i18n.Localizer) (RoomPage, error) {
	p, err := s.api.HotelRooms(ctx, hotelID, pg)
	if err != nil {
		return RoomPage{}, err
	}
	return RoomPage{Rooms: roomViews(p.Content, l), Page: p.Number, TotalPages: p.TotalPages, TotalElements: p.TotalElements}, nil
}

// RoomInput is the room form. Price is derived, never entered.
type RoomInput struct {
	RoomNumber    int64             `json:"roomNumber"`
	RoomTypeID    int64             `json:"roomTypeId"`
	Capacity      int               `json:"capacity"`
	PriceModifier float64           `json:"priceModifier"`
	Status        domain.RoomStatus `json:"status"`
	Description   string            `json:"description,omitempty"`
}

func (in RoomInput) validate() error {
	switch {
	case in.RoomNumber <= 0:
		return invalid("roomNumber", "must be positive")
	case in.RoomTypeID <= 0:
		return invalid("roomTypeId", "is required")
	case in.Capacity < 1:
		return invalid("capacity", "must be at least 1")
	case in.PriceModifier < 0:
		return invalid("priceModifier", "must not be negative")
	case in.Status != "" && !in.Status.Valid():
		return invalid("status", "unknown status")
	}
	return nil
}

// buildRoom loads the hotel and its room types to price the room as
// basePrice × modifier × type factor.
func (s *AdminService) buildRoom(ctx context.Context, hotelID int64, in RoomInput) (domain.Room, error) {
	if err := in.validate(); err != nil {
		return domain.Room{}, err
	}
	var (
		h     domain.Hotel
		types []domain.RoomType
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { h, err = s.api.GetHotel(gctx, hotelID); return err })
	g.Go(func() (err error) { types, err = s.api.ListRoomTypes(gctx, hotelID, false); return err })
	if err := g.Wait(); err != nil {
		return domain.Room{}, err
	}
	var rt *domain.RoomType
	for i := range types {
		if types[i].ID == in.RoomTypeID {
			rt = &types[i]
			break
		}
	}
	if rt == nil {
		return domain.Room{}, invalid("roomTypeId", fmt.Sprintf("room type %d is not offered by this hotel", in.RoomTypeID))
	}
	status := in.Status
	if status == "" {
		status = domain.RoomAvailable
	}
	capacity, mod := in.Capacity, in.PriceModifier
	if mod == 0 {
		mod = 1
	}
	r := domain.Room{
		RoomNumber:    in.RoomNumber,
		RoomType:      domain.RoomTypeRef{Type: rt},
		Capacity:      &capacity,
		PriceModifier: &mod,
		Status:        status,
		Description:   in.Description,
		Hotel:         &domain.Hotel{ID: h.ID},
	}
	r.Price = booking.RoomPrice(h, r, rt)
	return r, nil
}

func (s *AdminService) CreateRoom(ctx context.Context, hotelID int64, in RoomInput) (domain.Room, error) {
	r, err := s.buildRoom(ctx, hotelID, in)
	if err != nil {
		return domain.Room{}, err
	}
	out, err := s.api.CreateRoom(ctx, r)
	s.changed(ctx, hotelID, err)
	return out, err
}

// UpdateRoom reprices the room from the current hotel and room type.
func (s *AdminService) UpdateRoom(ctx context.Context, hotelID, roomID int64, in RoomInput) (domain.Room, error) {
	cur, err := s.room(ctx, hotelID, roomID)
	if err != nil {
		return domain.Room{}, err
	}
	r, err := s.buildRoom(ctx, hotelID, in)
	if err != nil {
		return domain.Room{}, err
	}
	r.RoomID = roomID
	r.ImagePath = cur.ImagePath
	out, err := s.api.UpdateRoom(ctx, roomID, r)
	s.changed(ctx, hotelID, err)
	return out, err
}

// room fetches a room and checks it belongs to hotelID. A room that does
// not name its hotel belongs to none.
func (s *AdminService) room(ctx context.Context, hotelID, roomID int64) (domain.Room, error) {
	r, err := s.api.GetRoom(ctx, roomID)
	if err != nil {
		return domain.Room{}, err
	}
	if !belongsTo(r, hotelID) {
		return domain.Room{}, fmt.Errorf("room %d: %w", roomID, domain.ErrNotFound)
	}
	return r, nil
}

type RoomDetails struct {
	Room   RoomView    `json:"room"`
	Images []ImageView `json:"images"`
}

func (s *AdminService) GetRoom(ctx context.Context, hotelID, roomID int64, l i18n.Localizer) (RoomDetails, error) {
	var (
		r    domain.Room
		imgs []domain.EntityImage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { r, err = s.room(gctx, hotelID, roomID); return err })
	g.Go(func() error {
		imgs, _ = s.api.RoomImages(gctx, roomID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return RoomDetails{}, err
	}
	return RoomDetails{Room: roomView(r, l), Images: imageViews(imgs, "")}, nil
}

func (s *AdminService) DeleteRoom(ctx context.Context, hotelID, roomID int64) error {
	if _, err := s.room(ctx, hotelID, roomID); err != nil {
		return err
	}
	err := s.api.DeleteRoom(ctx, roomID)
	s.changed(ctx, hotelID, err)
	return err
}

func (s *AdminService) UploadRoomImage(ctx context.Context, hotelID, roomID int64, f domain.FileUpload) error {
	if _, err := s.room(ctx, hotelID, roomID); err != nil {
		return err
	}
	return s.api.UploadRoomPrimaryImage(ctx, roomID, f)
}

func (s *AdminService) DeleteRoomImage(ctx context.Context, hotelID, roomID, imageID int64) error {
	if _, err := s.room(ctx, hotelID, roomID); err != nil {
		return err
	}
	return s.api.DeleteRoomImage(ctx, roomID, imageID)
}

/********** room types & amenities **********/

func (s *AdminService) RoomTypes(ctx context.Context, hotelID int64, includeInactive bool) ([]domain.RoomType, error) {
	return s.api.ListRoomTypes(ctx, hotelID, includeInactive)
}

func (s *AdminService) CreateRoomType(ctx context.Context, hotelID int64, rt domain.RoomType) (domain.RoomType, error) {
	rt.Name = strings.TrimSpace(rt.Name)
	if rt.Name == "" {
		return domain.RoomType{}, invalid("name", "must not be blank")
	}
	if rt.PriceFactor <= 0 {
		return domain.RoomType{}, invalid("priceFactor", "must be greater than 0")
	}
	rt.ID = 0
	if hotelID != 0 {
		rt.HotelID = &hotelID
	}
	rt.Active = true
	return s.api.CreateRoomType(ctx, rt)
}

func (s *AdminService) CreateAmenity(ctx context.Context, hotelID int64, a domain.Amenity) (domain.Amenity, error) {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return domain.Amenity{}, invalid("name", "must not be blank")
	}
	if a.DistanceKm != nil && *a.DistanceKm < 0 {
		return domain.Amenity{}, invalid("distanceKm", "must not be negative")
	}
	a.Type = booking.ParseAmenityType(string(a.Type))
	a.Hotel = &domain.Hotel{ID: hotelID}
	out, err := s.api.CreateAmenity(ctx, a)
	s.changed(ctx, hotelID, err)
	return out, err
}

func (s *AdminService) HotelAmenities(ctx context.Context, hotelID int64, pg domain.PageQuery, l i18n.Localizer) ([]AmenityView, error) {
	p, err := s.api.HotelAmenities(ctx, hotelID, pg)
	if err != nil {
		return nil, err
	}
	return amenityViews(p.Content, l), nil
}

/********** users **********/

func (s *AdminService) ListUsers(ctx context.Context, pg domain.PageQuery, search string) (domain.Page[domain.User], error) {
	p, err := s.api.ListUsers(ctx, pg, search)
	for i := range p.Content {
		p.Content[i].Password = ""
	}
	return p, err
}

func (s *AdminService) HotelUsers(ctx context.Context, hotelID int64, pg domain.PageQuery, email string) (domain.Page[domain.User], error) {
	p, err := s.api.HotelUsers(ctx, hotelID, pg, email)
	for i := range p.Content {
		p.Content[i].Password = ""
	}
	return p, err
}

func (s *AdminService) GetUser(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.api.GetUser(ctx, id)
	u.Password = ""
	return u, err
}

// UpdateUser keeps the login email and contact email as sent; they are
// distinct fields.
func (s *AdminService) UpdateUser(ctx context.Context, id int64, u domain.User) (domain.User, error) {
	if u.UserType != "" && !u.UserType.Valid() {
		return domain.User{}, invalid("userType", "unknown role")
	}
	if strings.TrimSpace(u.Email) == "" {
		return domain.User{}, invalid("email", "must not be blank")
	}
	if z := u.AddressInformation.ZipCode; z != "" {
		if err := booking.ValidatePostalCode(u.AddressInformation.Country, z); err != nil {
			return domain.User{}, err
		}
	}
	u.UserID = id
	out, err := s.api.UpdateUser(ctx, id, u)
	out.Password = ""
	return out, err
}

func (s *AdminService) DeleteUser(ctx context.Context, id int64) error {
	return s.api.DeleteUser(ctx, id)
}

func (s *AdminService) UploadUserImage(ctx context.Context, id int64, f domain.FileUpload) error {
	return s.api.UploadUserImage(ctx, id, f)
}

/********** reservations **********/

func (s *AdminService) HotelReservations(ctx context.Context, hotelID int64, pg domain.PageQuery, name string) (domain.Page[domain.Reservation], error) {
	return s.api.HotelReservations(ctx, hotelID, pg, name)
}

// GetReservation returns the reservation when its room belongs to hotelID.
func (s *AdminService) GetReservation(ctx context.Context, hotelID, id int64) (domain.Reservation, error) {
	r, err := s.api.GetReservation(ctx, id)
	if err != nil {
		return domain.Reservation{}, err
	}
	if r.Room == nil || !belongsTo(*r.Room, hotelID) {
		return domain.Reservation{}, fmt.Errorf("reservation %d: %w", id, domain.ErrNotFound)
	}
	return r, nil
}
