package booking

import (
	"fmt"
	"math"
	"time"

	"hotelos_gateway/internal/domain"
)

// CalculatePrice is base × modifier × factor. A zero modifier or factor
// counts as 1. The result is rounded to cents.
func CalculatePrice(base, modifier, factor float64) float64 {
	if modifier == 0 {
		modifier = 1
	}
	if factor == 0 {
		factor = 1
	}
	return roundCents(base * modifier * factor)
}

// RoomPrice applies CalculatePrice to a room of hotel h.
func RoomPrice(h domain.Hotel, r domain.Room, rt *domain.RoomType) float64 {
	var mod, factor float64
	if r.PriceModifier != nil {
		mod = *r.PriceModifier
	}
	if rt == nil {
		rt = r.RoomType.Type
	}
	if rt != nil {
		factor = rt.PriceFactor
	}
	return CalculatePrice(h.BasePrice, mod, factor)
}

func roundCents(v float64) float64 { return math.Round(v*100) / 100 }

// Nights counts started days between the dates, never less than one.
func Nights(checkIn, checkOut domain.Date) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 1
	}
	d := checkOut.Time().Sub(checkIn.Time())
	n := int(math.Ceil(float64(d) / float64(24*time.Hour)))
	if n < 1 {
		return 1
	}
	return n
}

func TotalAmount(pricePerNight float64, checkIn, checkOut domain.Date) float64 {
	return roundCents(pricePerNight * float64(Nights(checkIn, checkOut)))
}

// ValidRange is true when both dates are set and checkOut is strictly later.
func ValidRange(checkIn, checkOut domain.Date) bool {
	return !checkIn.IsZero() && !checkOut.IsZero() && checkOut.After(checkIn)
}

func FormatPrice(v float64) string { return fmt.Sprintf("$%.2f", v) }
