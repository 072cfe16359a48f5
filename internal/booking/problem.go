// Package booking holds the guest offer-selection and reservation rules:
// pricing, candidate rooms, the reservation form and guest validation.
// Nothing here performs I/O.
package booking

import (
	"hotelos_gateway/internal/i18n"
)

// Problem is a user-facing rejection. Key names the localized message.
type Problem struct {
	Key  string
	Args []any
}

func (p *Problem) Error() string { return i18n.For("en").T(p.Key, p.Args...) }

// Localize renders the message in l's language.
func (p *Problem) Localize(l i18n.Localizer) string { return l.T(p.Key, p.Args...) }

var (
	ErrPrimaryChild   = &Problem{Key: "booking.primaryAdult"}
	ErrGuestFields    = &Problem{Key: "booking.requiredFields"}
	ErrMissingDates   = &Problem{Key: "booking.missingDates"}
	ErrPostalRequired = &Problem{Key: "postal.required"}
)

// OverCapacity rejects a guest count above capacity.
func OverCapacity(capacity int) *Problem {
	return &Problem{Key: string(ReasonOverCapacity), Args: []any{capacity}}
}
