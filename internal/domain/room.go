package domain

import (
	"bytes"
	"encoding/json"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomReserved    RoomStatus = "RESERVED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomReserved, RoomMaintenance:
		return true
	}
	return false
}

type RoomType struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	PriceFactor float64 `json:"priceFactor"`
	Description string  `json:"description,omitempty"`
	HotelID     *int64  `json:"hotelId,omitempty"`
	Active      bool    `json:"active"`
}

// RoomTypeRef holds a room's type as the backend sent it: either a structured
// object or a stringified debug form such as "RoomTypeDto(id=1, name=Standard, ...)".
type RoomTypeRef struct {
	Type *RoomType
	Raw  string
}

func (r *RoomTypeRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*r = RoomTypeRef{}
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = RoomTypeRef{Raw: s}
		return nil
	}
	var rt RoomType
	if err := json.Unmarshal(b, &rt); err != nil {
		return err
	}
	*r = RoomTypeRef{Type: &rt}
	return nil
}

func (r RoomTypeRef) MarshalJSON() ([]byte, error) {
	if r.Type != nil {
		return json.Marshal(r.Type)
	}
	if r.Raw != "" {
		return json.Marshal(r.Raw)
	}
	return []byte("null"), nil
}

type Room struct {
	RoomID        int64       `json:"roomId,omitempty"`
	RoomNumber    int64       `json:"roomNumber"`
	RoomType      RoomTypeRef `json:"roomType"`
	Capacity      *int        `json:"capacity,omitempty"`
	Price         float64     `json:"price"`
	PriceModifier *float64    `json:"priceModifier,omitempty"`
	Status        RoomStatus  `json:"status"`
	Description   string      `json:"description,omitempty"`
	ImagePath     *string     `json:"imagePath,omitempty"`
	Hotel         *Hotel      `json:"hotel,omitempty"`
}

// EffectiveCapacity treats a missing capacity as a single guest.
func (r Room) EffectiveCapacity() int {
	if r.Capacity == nil || *r.Capacity <= 0 {
		return 1
	}
	return *r.Capacity
}
