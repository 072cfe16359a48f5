package hotelos

import (
	"context"
	"net/http"
	"net/url"

	"hotelos_gateway/internal/domain"
)

func (c *Client) CreateRoom(ctx context.Context, r domain.Room) (domain.Room, error) {
	var out domain.Room
	err := c.call(ctx, request{op: "POST /api/rooms", method: http.MethodPost, path: "/api/rooms", body: r}, &out)
	return out, err
}

func (c *Client) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	var out domain.Room
	err := c.call(ctx, request{op: "GET /api/rooms/{id}", method: http.MethodGet, path: idPath("/api/rooms/%d", id)}, &out)
	return out, err
}

func (c *Client) UpdateRoom(ctx context.Context, id int64, r domain.Room) (domain.Room, error) {
	var out domain.Room
	err := c.call(ctx, request{op: "PUT /api/rooms/{id}", method: http.MethodPut, path: idPath("/api/rooms/%d", id), body: r}, &out)
	return out, err
}

func (c *Client) DeleteRoom(ctx context.Context, id int64) error {
	return c.call(ctx, request{op: "DELETE /api/rooms/{id}", method: http.MethodDelete, path: idPath("/api/rooms/%d", id)}, nil)
}

func (c *Client) RoomImages(ctx context.Context, id int64) ([]domain.EntityImage, error) {
	var out []domain.EntityImage
	err := c.call(ctx, request{op: "GET /api/rooms/{id}/images", method: http.MethodGet, path: idPath("/api/rooms/%d/images", id)}, &out)
	return out, err
}

func (c *Client) UploadRoomPrimaryImage(ctx context.Context, id int64, f domain.FileUpload) error {
	r, err := multipartRequest("POST /api/rooms/{id}/primary-image", idPath("/api/rooms/%d/primary-image", id), "file", []domain.FileUpload{f})
	if err != nil {
		return err
	}
	return c.call(ctx, r, nil)
}

func (c *Client) DeleteRoomImage(ctx context.Context, roomID, imageID int64) error {
	return c.call(ctx, request{op: "DELETE /api/rooms/{id}/images/{imageId}", method: http.MethodDelete, path: idPath("/api/rooms/%d/images/%d", roomID, imageID)}, nil)
}

func (c *Client) ListRoomTypes(ctx context.Context, hotelID int64, includeInactive bool) ([]domain.RoomType, error) {
	var out []domain.RoomType
	if hotelID > 0 {
		err := c.call(ctx, request{op: "GET /api/room-types/hotel/{hotelId}", method: http.MethodGet, path: idPath("/api/room-types/hotel/%d", hotelID)}, &out)
		return out, err
	}
	v := url.Values{}
	if includeInactive {
		v.Set("includeInactive", "true")
	}
	err := c.call(ctx, request{op: "GET /api/room-types", method: http.MethodGet, path: "/api/room-types", query: v}, &out)
	return out, err
}

func (c *Client) CreateRoomType(ctx context.Context, rt domain.RoomType) (domain.RoomType, error) {
	var out domain.RoomType
	err := c.call(ctx, request{op: "POST /api/room-types", method: http.MethodPost, path: "/api/room-types", body: rt}, &out)
	return out, err
}

func (c *Client) CreateAmenity(ctx context.Context, a domain.Amenity) (domain.Amenity, error) {
	var out domain.Amenity
	err := c.call(ctx, request{op: "POST /api/amenities", method: http.MethodPost, path: "/api/amenities", body: a}, &out)
	return out, err
}

func (c *Client) HotelAmenities(ctx context.Context, hotelID int64, pg domain.PageQuery) (domain.Page[domain.Amenity], error) {
	var out domain.Page[domain.Amenity]
	err := c.call(ctx, request{op: "GET /api/amenities/hotel/{hotelId}", method: http.MethodGet, path: idPath("/api/amenities/hotel/%d", hotelID), query: pageValues(pg)}, &out)
	return out, err
}
