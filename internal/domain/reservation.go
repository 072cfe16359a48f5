package domain

type ReservationStatus string

const (
	ReservationPending    ReservationStatus = "PENDING"
	ReservationConfirmed  ReservationStatus = "CONFIRMED"
	ReservationCheckedIn  ReservationStatus = "CHECKED_IN"
	ReservationCheckedOut ReservationStatus = "CHECKED_OUT"
	ReservationCancelled  ReservationStatus = "CANCELLED"
)

type Guest struct {
	ID                  int64  `json:"id,omitempty"`
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Email               string `json:"email,omitempty"`
	PhoneNumber         string `json:"phoneNumber,omitempty"`
	BookedByID          int64  `json:"bookedById,omitempty"`
	IsPrimaryGuest      bool   `json:"isPrimaryGuest"`
	IsAdult             bool   `json:"isAdult"`
	SpecialRequirements string `json:"specialRequirements,omitempty"`
}

type Reservation struct {
	ReservationID     int64             `json:"reservationId,omitempty"`
	ReservationName   string            `json:"reservationName,omitempty"`
	User              *User             `json:"user,omitempty"`
	Room              *Room             `json:"room,omitempty"`
	CheckInDate       Date              `json:"checkInDate"`
	CheckOutDate      Date              `json:"checkOutDate"`
	TotalAmount       float64           `json:"totalAmount"`
	Status            ReservationStatus `json:"status"`
	Adults            int               `json:"adults,omitempty"`
	Children          int               `json:"children,omitempty"`
	SpecialRequests   string            `json:"specialRequests,omitempty"`
	Guests            []Guest           `json:"guests,omitempty"`
	PrimaryGuestPhone string            `json:"primaryGuestPhone,omitempty"`
}
