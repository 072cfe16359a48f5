package hotelos

import (
	"context"
	"net/http"
	"strings"

	"hotelos_gateway/internal/domain"
)

func (c *Client) CreateReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	var out domain.Reservation
	err := c.call(ctx, request{op: "POST /api/reservations", method: http.MethodPost, path: "/api/reservations", body: r}, &out)
	return out, err
}

func (c *Client) GetReservation(ctx context.Context, id int64) (domain.Reservation, error) {
	var out domain.Reservation
	err := c.call(ctx, request{op: "GET /api/reservations/{id}", method: http.MethodGet, path: idPath("/api/reservations/%d", id)}, &out)
	return out, err
}

func (c *Client) UserReservations(ctx context.Context, userID int64, pg domain.PageQuery) (domain.Page[domain.Reservation], error) {
	var out domain.Page[domain.Reservation]
	err := c.call(ctx, request{op: "GET /api/reservations/user/{userId}", method: http.MethodGet, path: idPath("/api/reservations/user/%d", userID), query: pageValues(pg)}, &out)
	return out, err
}

func (c *Client) HotelReservations(ctx context.Context, hotelID int64, pg domain.PageQuery, name string) (domain.Page[domain.Reservation], error) {
	v := pageValues(pg)
	if s := strings.TrimSpace(name); s != "" {
		v.Set("reservationName", s)
	}
	var out domain.Page[domain.Reservation]
	err := c.call(ctx, request{op: "GET /api/reservations/hotel/{hotelId}", method: http.MethodGet, path: idPath("/api/reservations/hotel/%d", hotelID), query: v}, &out)
	return out, err
}
