package hotelos

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"hotelos_gateway/internal/domain"
)

var _ domain.HotelOS = (*Client)(nil)

func hotelsValues(q domain.HotelsQuery) url.Values {
	v := pageValues(q.PageQuery)
	if s := strings.TrimSpace(q.Name); s != "" {
		v.Set("hotel_name", s)
	}
	if s := strings.TrimSpace(q.Country); s != "" {
		v.Set("country", s)
	}
	if s := strings.TrimSpace(q.City); s != "" {
		v.Set("city", s)
	}
	if s := strings.TrimSpace(q.SortBy); s != "" {
		v.Set("sortBy", s)
	}
	return v
}

func (c *Client) ListHotels(ctx context.Context, q domain.HotelsQuery) (domain.Page[domain.Hotel], error) {
	var out domain.Page[domain.Hotel]
	err := c.call(ctx, request{op: "GET /api/hotels", method: http.MethodGet, path: "/api/hotels", query: hotelsValues(q)}, &out)
	return out, err
}

func (c *Client) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	var out domain.Hotel
	err := c.call(ctx, request{op: "GET /api/hotels/{id}", method: http.MethodGet, path: idPath("/api/hotels/%d", id)}, &out)
	return out, err
}

func (c *Client) CreateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	var out domain.Hotel
	err := c.call(ctx, request{op: "POST /api/hotels", method: http.MethodPost, path: "/api/hotels", body: h}, &out)
	return out, err
}

func (c *Client) UpdateHotel(ctx context.Context, id int64, h domain.Hotel) (domain.Hotel, error) {
	var out domain.Hotel
	err := c.call(ctx, request{op: "PUT /api/hotels/{id}", method: http.MethodPut, path: idPath("/api/hotels/%d", id), body: h}, &out)
	return out, err
}

func (c *Client) DeleteHotel(ctx context.Context, id int64) error {
	return c.call(ctx, request{op: "DELETE /api/hotels/{id}", method: http.MethodDelete, path: idPath("/api/hotels/%d", id)}, nil)
}

func (c *Client) HotelStatistics(ctx context.Context, id int64) (domain.HotelStatistics, error) {
	var out domain.HotelStatistics
	err := c.call(ctx, request{op: "GET /api/hotels/{id}/statistics", method: http.MethodGet, path: idPath("/api/hotels/%d/statistics", id)}, &out)
	return out, err
}

func (c *Client) ListOffers(ctx context.Context, q domain.HotelsQuery) (domain.Page[domain.HotelOffer], error) {
	var out domain.Page[domain.HotelOffer]
	err := c.call(ctx, request{op: "GET /api/hotels/offers", method: http.MethodGet, path: "/api/hotels/offers", query: hotelsValues(q)}, &out)
	return out, err
}

// GetOffer omits the date parameters when either bound is unset; the backend
// then answers without availability.
func (c *Client) GetOffer(ctx context.Context, id int64, checkIn, checkOut domain.Date) (domain.HotelOffer, error) {
	v := url.Values{}
	if !checkIn.IsZero() && !checkOut.IsZero() {
		v.Set("checkIn", checkIn.String())
		v.Set("checkOut", checkOut.String())
	}
	var out domain.HotelOffer
	err := c.call(ctx, request{op: "GET /api/hotels/{id}/offer", method: http.MethodGet, path: idPath("/api/hotels/%d/offer", id), query: v}, &out)
	return out, err
}

func (c *Client) HotelImages(ctx context.Context, id int64) ([]domain.EntityImage, error) {
	var out []domain.EntityImage
	err := c.call(ctx, request{op: "GET /api/hotels/{id}/images", method: http.MethodGet, path: idPath("/api/hotels/%d/images", id)}, &out)
	return out, err
}

func (c *Client) UploadHotelPrimaryImage(ctx context.Context, id int64, f domain.FileUpload) error {
	r, err := multipartRequest("POST /api/hotels/{id}/primary-image", idPath("/api/hotels/%d/primary-image", id), "file", []domain.FileUpload{f})
	if err != nil {
		return err
	}
	return c.call(ctx, r, nil)
}

func (c *Client) UploadHotelImages(ctx context.Context, id int64, fs []domain.FileUpload) error {
	r, err := multipartRequest("POST /api/hotels/{id}/images", idPath("/api/hotels/%d/images", id), "files", fs)
	if err != nil {
		return err
	}
	return c.call(ctx, r, nil)
}

func (c *Client) DeleteHotelImage(ctx context.Context, hotelID, imageID int64) error {
	return c.call(ctx, request{op: "DELETE /api/hotels/{id}/images/{imageId}", method: http.MethodDelete, path: idPath("/api/hotels/%d/images/%d", hotelID, imageID)}, nil)
}

func (c *Client) SetHotelPrimaryImage(ctx context.Context, hotelID, imageID int64) error {
	return c.call(ctx, request{op: "PUT /api/hotels/{id}/images/{imageId}/set-primary", method: http.MethodPut, path: idPath("/api/hotels/%d/images/%d/set-primary", hotelID, imageID)}, nil)
}

func (c *Client) HotelRooms(ctx context.Context, hotelID int64, pg domain.PageQuery) (domain.Page[domain.Room], error) {
	var out domain.Page[domain.Room]
	err := c.call(ctx, request{op: "GET /api/hotels/{id}/rooms", method: http.MethodGet, path: idPath("/api/hotels/%d/rooms", hotelID), query: pageValues(pg)}, &out)
	return out, err
}

func (c *Client) HotelUsers(ctx context.Context, hotelID int64, pg domain.PageQuery, email string) (domain.Page[domain.User], error) {
	v := pageValues(pg)
	if s := strings.TrimSpace(email); s != "" {
		v.Set("email", s)
	}
	var out domain.Page[domain.User]
	err := c.call(ctx, request{op: "GET /api/hotels/{id}/users", method: http.MethodGet, path: idPath("/api/hotels/%d/users", hotelID), query: v}, &out)
	return out, err
}
