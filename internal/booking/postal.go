package booking

import (
	"regexp"
	"strings"
)

var (
	usZip    = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	caPostal = regexp.MustCompile(`^[A-Za-z]\d[A-Za-z][ -]?\d[A-Za-z]\d$`)
	plPostal = regexp.MustCompile(`^\d{2}-\d{3}$`)
	ukPostal = regexp.MustCompile(`(?i)^[A-Z]{1,2}\d[A-Z\d]? ?\d[A-Z]{2}$`)
	anyPost  = regexp.MustCompile(`^.{3,10}$`)
)

// ValidatePostalCode checks value against the format used in country.
// Countries without a known format accept 3 to 10 characters.
func ValidatePostalCode(country, value string) error {
	if value == "" {
		return ErrPostalRequired
	}
	re, key := anyPost, "postal.invalid"
	switch strings.ToLower(strings.TrimSpace(country)) {
	case "united states", "usa", "us":
		re, key = usZip, "postal.invalidUS"
	case "canada", "ca":
		re, key = caPostal, "postal.invalidCA"
	case "poland", "polska", "pl":
		re, key = plPostal, "postal.invalidPL"
	case "united kingdom", "uk", "gb":
		re, key = ukPostal, "postal.invalidUK"
	}
	if !re.MatchString(value) {
		return &Problem{Key: key}
	}
	return nil
}
