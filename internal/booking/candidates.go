package booking

import "hotelos_gateway/internal/domain"

// Candidates lists the rooms a guest may pick: the cheapest room per type
// plus the overall cheapest room, deduplicated by id, kept only when
// AVAILABLE and large enough. Backend order is preserved. Without dates
// there are no candidates.
func Candidates(offer domain.HotelOffer, guests int, hasDates bool) []domain.Room {
	if !hasDates {
		return nil
	}
	seen := map[int64]bool{}
	var out []domain.Room
	add := func(r *domain.Room) {
		if r == nil || seen[r.RoomID] {
			return
		}
		seen[r.RoomID] = true
		if r.Status == domain.RoomAvailable && r.EffectiveCapacity() >= guests {
			out = append(out, *r)
		}
	}
	for _, c := range offer.CheapestRoomByTypeList {
		add(c.Room)
	}
	add(offer.CheapestRoom)
	return out
}
