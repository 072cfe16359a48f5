package booking

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gosimple/slug"

	"hotelos_gateway/internal/domain"
	"hotelos_gateway/internal/i18n"
)

var debugName = regexp.MustCompile(`name=([^,\)]+)`)

// RoomTypeName extracts the type name from either representation the
// backend uses. Empty when unknown.
func RoomTypeName(ref domain.RoomTypeRef) string {
	if ref.Type != nil {
		return strings.TrimSpace(ref.Type.Name)
	}
	if m := debugName.FindStringSubmatch(ref.Raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// NormalizeRoomTypeLabel renders a room type for display: the localized
// roomTypes.<key> label when one exists, else the name with underscores
// spaced out.
func NormalizeRoomTypeLabel(ref domain.RoomTypeRef, l i18n.Localizer) string {
	name := RoomTypeName(ref)
	if name == "" {
		return l.T("hotelDetails.unknownType")
	}
	key := strings.Join(strings.FieldsFunc(strings.ToLower(name), unicode.IsSpace), "_")
	if s, ok := l.Lookup("roomTypes." + key); ok {
		return s
	}
	return strings.ReplaceAll(name, "_", " ")
}

// ParseAmenityType maps free-form backend values onto the enumeration,
// first exactly and then by containment. Unknown values are OTHER.
func ParseAmenityType(s string) domain.AmenityType {
	t := strings.ToUpper(strings.TrimSpace(s))
	for _, a := range domain.AmenityTypes {
		if t == string(a) {
			return a
		}
	}
	for _, a := range domain.AmenityTypes {
		if a != domain.AmenityOther && strings.Contains(t, string(a)) {
			return a
		}
	}
	return domain.AmenityOther
}

var amenityIcons = map[domain.AmenityType]string{
	domain.AmenityCulture:        "theater_comedy",
	domain.AmenityEntertainment:  "sports_esports",
	domain.AmenityFood:           "fastfood",
	domain.AmenityHealth:         "health_and_safety",
	domain.AmenityParking:        "local_parking",
	domain.AmenityPool:           "pool",
	domain.AmenityRecreation:     "nature_people",
	domain.AmenityShopping:       "shopping_bag",
	domain.AmenitySports:         "sports_soccer",
	domain.AmenityTransportation: "directions_bus",
	domain.AmenityOther:          "category",
}

// AmenityIcon names the Material icon shown for an amenity category.
func AmenityIcon(t domain.AmenityType) string {
	if s, ok := amenityIcons[ParseAmenityType(string(t))]; ok {
		return s
	}
	return "category"
}

// LocationString joins city, state and country, skipping empty parts.
func LocationString(a domain.AddressInformation) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.City, a.State, a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// HotelSlug is the readable tail of /hotels/{id}/{slug}.
func HotelSlug(name string) string {
	s := slug.Make(name)
	if s == "" {
		return "hotel"
	}
	return s
}
