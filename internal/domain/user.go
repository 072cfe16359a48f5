package domain

type UserType string

const (
	UserGuest   UserType = "GUEST"
	UserStaff   UserType = "STAFF"
	UserManager UserType = "MANAGER"
	UserAdmin   UserType = "ADMIN"
)

func (t UserType) Valid() bool {
	switch t {
	case UserGuest, UserStaff, UserManager, UserAdmin:
		return true
	}
	return false
}

// User keeps the login email and the contact email apart: Email is the
// credential, ContactInformation.Email is where mail is sent.
type User struct {
	UserID             int64              `json:"userId,omitempty"`
	FirstName          string             `json:"firstName"`
	LastName           string             `json:"lastName"`
	Email              string             `json:"email"`
	Password           string             `json:"password,omitempty"`
	AddressInformation AddressInformation `json:"addressInformation"`
	ContactInformation ContactInformation `json:"contactInformation"`
	UserType           UserType           `json:"userType"`
	Position           string             `json:"position,omitempty"`
	ImagePath          *string            `json:"imagePath,omitempty"`
	Hotel              *Hotel             `json:"hotel,omitempty"`
}

// HotelID returns the owning hotel id, or 0 when the user has none.
func (u User) HotelID() int64 {
	if u.Hotel == nil {
		return 0
	}
	return u.Hotel.ID
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FirstName          string             `json:"firstName"`
	LastName           string             `json:"lastName"`
	Email              string             `json:"email"`
	Password           string             `json:"password"`
	AddressInformation AddressInformation `json:"addressInformation"`
	ContactInformation ContactInformation `json:"contactInformation"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type PasswordChange struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

type PasswordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}
