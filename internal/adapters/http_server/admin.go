package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hotelos_gateway/internal/app"
	"hotelos_gateway/internal/domain"
	"hotelos_gateway/internal/i18n"
)

func (h *Handlers) mountAdmin(r chi.Router) {
	r.Get("/hotels", h.listHotels)
	r.Post("/hotels", h.createHotel)
	r.Route("/hotels/{id}", func(r chi.Router) {
		h.mountHotel(r)
		r.Delete("/", h.deleteHotel)
	})

	r.Get("/room-types", h.globalRoomTypes)
	r.Post("/room-types", h.createGlobalRoomType)

	r.Get("/users", h.listUsers)
	r.Route("/users/{userId}", func(r chi.Router) {
		r.Get("/", h.getUser)
		r.Put("/", h.updateUser)
		r.Delete("/", h.deleteUser)
		r.Post("/image", h.uploadUserImage)
	})
}

// mountHotel registers the routes scoped to one hotel, shared by admins and
// the hotel's managers.
func (h *Handlers) mountHotel(r chi.Router) {
	r.Get("/", h.hotelOverview)
	r.Put("/", h.updateHotel)
	r.Get("/statistics", h.hotelStatistics)

	r.Get("/images", h.hotelImages)
	r.Post("/images", h.uploadHotelImages)
	r.Delete("/images/{imageId}", h.deleteHotelImage)
	r.Put("/images/{imageId}/primary", h.setPrimaryImage)

	r.Get("/rooms", h.hotelRooms)
	r.Post("/rooms", h.createRoom)
	r.Get("/rooms/{roomId}", h.getRoom)
	r.Put("/rooms/{roomId}", h.updateRoom)
	r.Delete("/rooms/{roomId}", h.deleteRoom)
	r.Post("/rooms/{roomId}/image", h.uploadRoomImage)
	r.Delete("/rooms/{roomId}/images/{imageId}", h.deleteRoomImage)

	r.Get("/room-types", h.hotelRoomTypes)
	r.Post("/room-types", h.createHotelRoomType)

	r.Get("/amenities", h.hotelAmenities)
	r.Post("/amenities", h.createAmenity)

	r.Get("/users", h.hotelUsers)
	r.Get("/reservations", h.hotelReservations)
	r.Get("/reservations/{reservationId}", h.getReservation)
	r.Get("/booking-attempts", h.bookingAttempts)
}

func (h *Handlers) deleted(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, r, http.StatusOK, "admin.deleted")
}

func (h *Handlers) done(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, status, v)
}

// ---- hotels ----

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, err := h.Admin.ListHotels(r.Context(), domain.HotelsQuery{
		Name:      strings.TrimSpace(q.Get("name")),
		Country:   strings.TrimSpace(q.Get("country")),
		City:      strings.TrimSpace(q.Get("city")),
		SortBy:    q.Get("sortBy"),
		PageQuery: pageQuery(r),
	})
	h.done(w, r, http.StatusOK, p, err)
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var in domain.Hotel
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.Admin.CreateHotel(r.Context(), in)
	h.done(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) hotelOverview(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	ov, err := h.Admin.HotelOverview(r.Context(), id)
	h.done(w, r, http.StatusOK, ov, err)
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var in domain.Hotel
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.Admin.UpdateHotel(r.Context(), id, in)
	h.done(w, r, http.StatusOK, out, err)
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	if id, ok := idParam(w, r, "id"); ok {
		h.deleted(w, r, h.Admin.DeleteHotel(r.Context(), id))
	}
}

func (h *Handlers) hotelStatistics(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	st, err := h.Admin.HotelStatistics(r.Context(), id)
	h.done(w, r, http.StatusOK, st, err)
}

func (h *Handlers) hotelImages(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	imgs, err := h.Admin.HotelImages(r.Context(), id)
	h.done(w, r, http.StatusOK, imgs, err)
}

// uploadHotelImages reads "files", or a single "file" as the new primary
// image when ?primary=true.
func (h *Handlers) uploadHotelImages(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	primary, _ := strconv.ParseBool(r.URL.Query().Get("primary"))
	field := "files"
	if primary {
		field = "file"
	}
	files, ok := formFiles(w, r, field)
	if !ok {
		return
	}
	if err := h.Admin.UploadHotelImages(r.Context(), id, primary, files); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteHotelImage(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if imageID, ok := idParam(w, r, "imageId"); ok {
		h.deleted(w, r, h.Admin.DeleteHotelImage(r.Context(), id, imageID))
	}
}

func (h *Handlers) setPrimaryImage(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	imageID, ok := idParam(w, r, "imageId")
	if !ok {
		return
	}
	if err := h.Admin.SetHotelPrimaryImage(r.Context(), id, imageID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- rooms ----

func (h *Handlers) hotelRooms(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Admin.HotelRooms(r.Context(), id, pageQuery(r), i18n.FromContext(r.Context()))
	h.done(w, r, http.StatusOK, p, err)
}

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var in app.RoomInput
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.Admin.CreateRoom(r.Context(), id, in)
	h.done(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	roomID, ok := idParam(w, r, "roomId")
	if !ok {
		return
	}
	out, err := h.Admin.GetRoom(r.Context(), id, roomID, i18n.FromContext(r.Context()))
	h.done(w, r, http.StatusOK, out, err)
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	roomID, ok := idParam(w, r, "roomId")
	if !ok {
		return
	}
	var in app.RoomInput
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.Admin.UpdateRoom(r.Context(), id, roomID, in)
	h.done(w, r, http.StatusOK, out, err)
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if roomID, ok := idParam(w, r, "roomId"); ok {
		h.deleted(w, r, h.Admin.DeleteRoom(r.Context(), id, roomID))
	}
}

func (h *Handlers) uploadRoomImage(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	roomID, ok := idParam(w, r, "roomId")
	if !ok {
		return
	}
	files, ok := formFiles(w, r, "file")
	if !ok {
		return
	}
	if err := h.Admin.UploadRoomImage(r.Context(), id, roomID, files[0]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteRoomImage(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	roomID, ok := idParam(w, r, "roomId")
	if !ok {
		return
	}
	if imageID, ok := idParam(w, r, "imageId"); ok {
		h.deleted(w, r, h.Admin.DeleteRoomImage(r.Context(), id, roomID, imageID))
	}
}

// ---- room types & amenities ----

func (h *Handlers) globalRoomTypes(w http.ResponseWriter, r *http.Request) {
	inactive, _ := strconv.ParseBool(r.URL.Query().Get("includeInactive"))
	hotelID, _ := strconv.ParseInt(r.URL.Query().Get("hotelId"), 10, 64)
	out, err := h.Admin.RoomTypes(r.Context(), hotelID, inactive)
	h.done(w, r, http.StatusOK, out, err)
}

func (h *Handlers) createGlobalRoomType(w http.ResponseWriter, r *http.Request) {
	var in domain.RoomType
	if !decodeJSON(w, r, &in) {
		return
	}
	var hotelID int64
	if in.HotelID != nil {
		hotelID = *in.HotelID
	}
	out, err := h.Admin.CreateRoomType(r.Context(), hotelID, in)
	h.done(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) hotelRoomTypes(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Admin.RoomTypes(r.Context(), id, false)
	h.done(w, r, http.StatusOK, out, err)
}

func (h *Handlers) createHotelRoomType(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var in domain.RoomType
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.Admin.CreateRoomType(r.Context(), id, in)
	h.done(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) hotelAmenities(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Admin.HotelAmenities(r.Context(), id, pageQuery(r), i18n.FromContext(r.Context()))
	h.done(w, r, http.StatusOK, out, err)
}

func (h *Handlers) createAmenity(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var in domain.Amenity
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.Admin.CreateAmenity(r.Context(), id, in)
	h.done(w, r, http.StatusCreated, out, err)
}

// ---- users ----

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	p, err := h.Admin.ListUsers(r.Context(), pageQuery(r), strings.TrimSpace(r.URL.Query().Get("search")))
	h.done(w, r, http.StatusOK, p, err)
}

func (h *Handlers) hotelUsers(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Admin.HotelUsers(r.Context(), id, pageQuery(r), strings.TrimSpace(r.URL.Query().Get("email")))
	h.done(w, r, http.StatusOK, p, err)
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "userId")
	if !ok {
		return
	}
	u, err := h.Admin.GetUser(r.Context(), id)
	h.done(w, r, http.StatusOK, u, err)
}

func (h *Handlers) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "userId")
	if !ok {
		return
	}
	var in domain.User
	if !decodeJSON(w, r, &in) {
		return
	}
	u, err := h.Admin.UpdateUser(r.Context(), id, in)
	h.done(w, r, http.StatusOK, u, err)
}

func (h *Handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	if id, ok := idParam(w, r, "userId"); ok {
		h.deleted(w, r, h.Admin.DeleteUser(r.Context(), id))
	}
}

func (h *Handlers) uploadUserImage(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "userId")
	if !ok {
		return
	}
	files, ok := formFiles(w, r, "file")
	if !ok {
		return
	}
	if err := h.Admin.UploadUserImage(r.Context(), id, files[0]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- reservations ----

func (h *Handlers) hotelReservations(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Admin.HotelReservations(r.Context(), id, pageQuery(r), strings.TrimSpace(r.URL.Query().Get("name")))
	h.done(w, r, http.StatusOK, p, err)
}

func (h *Handlers) getReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	resID, ok := idParam(w, r, "reservationId")
	if !ok {
		return
	}
	res, err := h.Admin.GetReservation(r.Context(), id, resID)
	h.done(w, r, http.StatusOK, res, err)
}

func (h *Handlers) bookingAttempts(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Bookings.Attempts(r.Context(), id, intQuery(r, "limit", 50))
	if out == nil {
		out = []domain.BookingAttempt{}
	}
	h.done(w, r, http.StatusOK, out, err)
}
