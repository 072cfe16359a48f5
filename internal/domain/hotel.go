package domain

type AddressInformation struct {
	ID      int64  `json:"id,omitempty"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type ContactInformation struct {
	ID          int64  `json:"id,omitempty"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

type Hotel struct {
	ID                 int64              `json:"id,omitempty"`
	Name               string             `json:"name"`
	AddressInformation AddressInformation `json:"addressInformation"`
	ContactInformation ContactInformation `json:"contactInformation"`
	BasePrice          float64            `json:"basePrice"`
	Description        string             `json:"description,omitempty"`
	ImagePath          *string            `json:"imagePath,omitempty"`
}

// HotelOffer is the hotel projection enriched with pricing and availability
// for a date range. Without a range the backend leaves the room fields empty.
type HotelOffer struct {
	ID                         int64                `json:"id"`
	Name                       string               `json:"name"`
	BasePrice                  float64              `json:"basePrice"`
	Description                string               `json:"description,omitempty"`
	AddressInformation         AddressInformation   `json:"addressInformation"`
	ContactInformation         ContactInformation   `json:"contactInformation"`
	CheapestRoom               *Room                `json:"cheapestRoom,omitempty"`
	RoomTypeCountAvailableList []RoomTypeCount      `json:"roomTypeCountAvailableList,omitempty"`
	CheapestRoomByTypeList     []CheapestRoomByType `json:"cheapestRoomByTypeList,omitempty"`
	Amenities                  []Amenity            `json:"amenities,omitempty"`
}

type RoomTypeCount struct {
	RoomType *RoomType `json:"roomType,omitempty"`
	Count    int64     `json:"count"`
}

type CheapestRoomByType struct {
	RoomType *RoomType `json:"roomType,omitempty"`
	Room     *Room     `json:"room,omitempty"`
}

type HotelStatistics struct {
	HotelID                 int64 `json:"hotelId"`
	StaffCount              int64 `json:"staffCount"`
	ManagerCount            int64 `json:"managerCount"`
	TotalUserCount          int64 `json:"totalUserCount"`
	CurrentlyOccupiedCount  int64 `json:"currentlyOccupiedCount"`
	CurrentlyAvailableCount int64 `json:"currentlyAvailableCount"`
	TotalRoomCount          int64 `json:"totalRoomCount"`
	ReservationsCount       int64 `json:"reservationsCount"`
}

// EntityImage is one entry of a hotel or room gallery.
type EntityImage struct {
	ID        *int64 `json:"id"`
	URL       string `json:"url"`
	IsPrimary bool   `json:"isPrimary"`
}

type AmenityType string

const (
	AmenityCulture        AmenityType = "CULTURE"
	AmenityEntertainment  AmenityType = "ENTERTAINMENT"
	AmenityFood           AmenityType = "FOOD"
	AmenityHealth         AmenityType = "HEALTH"
	AmenityParking        AmenityType = "PARKING"
	AmenityPool           AmenityType = "POOL"
	AmenityRecreation     AmenityType = "RECREATION"
	AmenityShopping       AmenityType = "SHOPPING"
	AmenitySports         AmenityType = "SPORTS"
	AmenityTransportation AmenityType = "TRANSPORTATION"
	AmenityOther          AmenityType = "OTHER"
)

// AmenityTypes lists every category in declaration order.
var AmenityTypes = []AmenityType{
	AmenityCulture, AmenityEntertainment, AmenityFood, AmenityHealth, AmenityParking,
	AmenityPool, AmenityRecreation, AmenityShopping, AmenitySports, AmenityTransportation,
	AmenityOther,
}

type Amenity struct {
	ID          int64       `json:"id,omitempty"`
	Hotel       *Hotel      `json:"hotel,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Type        AmenityType `json:"type,omitempty"`
	DistanceKm  *float64    `json:"distanceKm,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
}
