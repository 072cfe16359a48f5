package app

import (
	"fmt"
	"sort"

	"hotelos_gateway/internal/booking"
	"hotelos_gateway/internal/domain"
	"hotelos_gateway/internal/i18n"
)

const (
	HotelPlaceholder = "https://via.placeholder.com/1200x500?text=Hotel+Image"
	CardPlaceholder  = "https://via.placeholder.com/300x200?text=Hotel+Image"

	cardAmenities = 3
)

/********** images **********/

type ImageView struct {
	ID      *int64 `json:"id,omitempty"`
	URL     string `json:"url"`
	Primary bool   `json:"primary"`
}

// imageViews orders the gallery primary first, keeping backend order
// otherwise. An empty gallery yields the placeholder alone.
func imageViews(imgs []domain.EntityImage, placeholder string) []ImageView {
	out := make([]ImageView, 0, len(imgs))
	for _, im := range imgs {
		if im.URL == "" {
			continue
		}
		out = append(out, ImageView{ID: im.ID, URL: im.URL, Primary: im.IsPrimary})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Primary && !out[j].Primary })
	if len(out) == 0 && placeholder != "" {
		out = append(out, ImageView{URL: placeholder})
	}
	return out
}

/********** amenities **********/

type AmenityView struct {
	ID          int64              `json:"id,omitempty"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Type        domain.AmenityType `json:"type"`
	TypeLabel   string             `json:"typeLabel"`
	Icon        string             `json:"icon"`
	DistanceKm  *float64           `json:"distanceKm,omitempty"`
	ImageURL    string             `json:"imageUrl,omitempty"`
}

func amenityView(a domain.Amenity, l i18n.Localizer) AmenityView {
	t := booking.ParseAmenityType(string(a.Type))
	return AmenityView{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Type:        t,
		TypeLabel:   l.T("amenities." + string(t)),
		Icon:        booking.AmenityIcon(t),
		DistanceKm:  a.DistanceKm,
		ImageURL:    a.ImageURL,
	}
}

func amenityViews(as []domain.Amenity, l i18n.Localizer) []AmenityView {
	out := make([]AmenityView, 0, len(as))
	for _, a := range as {
		out = append(out, amenityView(a, l))
	}
	return out
}

/********** rooms **********/

type RoomView struct {
	ID          int64             `json:"id"`
	Number      int64             `json:"number"`
	TypeLabel   string            `json:"typeLabel"`
	Capacity    int               `json:"capacity"`
	Price       float64           `json:"price"`
	PriceLabel  string            `json:"priceLabel"`
	Status      domain.RoomStatus `json:"status"`
	Description string            `json:"description,omitempty"`
	ImagePath   *string           `json:"imagePath,omitempty"`
}

func roomView(r domain.Room, l i18n.Localizer) RoomView {
	return RoomView{
		ID:          r.RoomID,
		Number:      r.RoomNumber,
		TypeLabel:   booking.NormalizeRoomTypeLabel(r.RoomType, l),
		Capacity:    r.EffectiveCapacity(),
		Price:       r.Price,
		PriceLabel:  booking.FormatPrice(r.Price),
		Status:      r.Status,
		Description: r.Description,
		ImagePath:   r.ImagePath,
	}
}

func roomViews(rs []domain.Room, l i18n.Localizer) []RoomView {
	out := make([]RoomView, 0, len(rs))
	for _, r := range rs {
		out = append(out, roomView(r, l))
	}
	return out
}

type RoomTypeAvailability struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

func availabilityViews(list []domain.RoomTypeCount, l i18n.Localizer) []RoomTypeAvailability {
	out := make([]RoomTypeAvailability, 0, len(list))
	for _, c := range list {
		out = append(out, RoomTypeAvailability{
			Label: booking.NormalizeRoomTypeLabel(domain.RoomTypeRef{Type: c.RoomType}, l),
			Count: c.Count,
		})
	}
	return out
}

/********** hotels **********/

// HotelPath is the guest URL of a hotel page.
func HotelPath(id int64, name string) string {
	return fmt.Sprintf("/hotels/%d/%s", id, booking.HotelSlug(name))
}

type HotelCard struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Path          string        `json:"path"`
	Location      string        `json:"location"`
	Description   string        `json:"description,omitempty"`
	PriceFrom     string        `json:"priceFrom,omitempty"`
	ImageURL      string        `json:"imageUrl"`
	Amenities     []AmenityView `json:"amenities"`
	MoreAmenities int           `json:"moreAmenities"`
}

func hotelCard(o domain.HotelOffer, image string, l i18n.Localizer) HotelCard {
	c := HotelCard{
		ID:          o.ID,
		Name:        o.Name,
		Path:        HotelPath(o.ID, o.Name),
		Location:    booking.LocationString(o.AddressInformation),
		Description: o.Description,
		ImageURL:    image,
	}
	switch {
	case o.CheapestRoom != nil && o.CheapestRoom.Price > 0:
		c.PriceFrom = booking.FormatPrice(o.CheapestRoom.Price)
	case o.BasePrice > 0:
		c.PriceFrom = booking.FormatPrice(o.BasePrice)
	}
	as := o.Amenities
	if len(as) > cardAmenities {
		c.MoreAmenities = len(as) - cardAmenities
		as = as[:cardAmenities]
	}
	c.Amenities = amenityViews(as, l)
	return c
}
