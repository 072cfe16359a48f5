package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"hotelos_gateway/internal/app"
	"hotelos_gateway/internal/booking"
	"hotelos_gateway/internal/domain"
	"hotelos_gateway/internal/i18n"
	"hotelos_gateway/internal/loading"
)

type Handlers struct {
	Offers       *app.OfferService
	Bookings     *app.BookingService
	Sessions     *app.SessionService
	Admin        *app.AdminService
	Loading      *loading.Tracker
	CookieSecure bool
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Use(Session(h.Sessions))

		r.Get("/status", h.status)
		r.Get("/explore", h.explore)
		r.Get("/hotels/{id}/offer", h.offer)
		r.Get("/hotels/{id}/{slug}", h.hotelPage)
		r.Post("/hotels/{id}/reservation-form", h.reservationForm)
		r.Get("/book/{hotelId}/{roomId}", h.bookingPage)
		r.Post("/book/{hotelId}/{roomId}", h.book)

		r.Post("/login", h.login)
		r.Post("/register", h.register)
		r.Post("/logout", h.logout)
		r.Post("/password/reset", h.requestReset)
		r.Post("/password/reset/confirm", h.confirmReset)

		r.Group(func(r chi.Router) {
			r.Use(RequireUser)
			r.Get("/user", h.profile)
			r.Put("/user/edit", h.editProfile)
			r.Put("/password", h.changePassword)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireRole(domain.UserAdmin))
			h.mountAdmin(r)
		})
		r.Route("/manager/hotel/{id}", func(r chi.Router) {
			r.Use(RequireRole(domain.UserManager, domain.UserAdmin))
			r.Use(RequireOwnHotel("id"))
			h.mountHotel(r)
		})
	})
}

type statusView struct {
	Loading  bool  `json:"loading"`
	InFlight int64 `json:"inFlight"`
}

func (h *Handlers) status(w http.ResponseWriter, r *http.Request) {
	var st statusView
	if h.Loading != nil {
		st = statusView{Loading: h.Loading.IsLoading(), InFlight: h.Loading.InFlight()}
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, r, http.StatusOK, st)
}

// ---- explore & hotel page ----

func (h *Handlers) explore(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.Offers.Explore(r.Context(), domain.HotelsQuery{
		Name:      strings.TrimSpace(q.Get("name")),
		Country:   strings.TrimSpace(q.Get("country")),
		City:      strings.TrimSpace(q.Get("city")),
		SortBy:    q.Get("sortBy"),
		PageQuery: pageQuery(r),
	}, i18n.FromContext(r.Context()))
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) || domain.IsAuthError(err) {
			writeError(w, r, err)
			return
		}
		writeProblem(w, problem{Status: http.StatusBadGateway, Detail: i18n.FromContext(r.Context()).T("explore.loadError")})
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}

// offer returns the backend offer as is, for the given range.
func (h *Handlers) offer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	in, out := dateRange(r)
	o, err := h.Offers.Offer(r.Context(), id, in, out)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, o)
}

// openView loads a hotel page for the query's dates, guests and room.
func (h *Handlers) openView(r *http.Request, id int64) *app.OfferView {
	in, out := dateRange(r)
	v := h.Offers.NewView(id)
	v.Open(r.Context(), in, out, intQuery(r, "guests", 1))
	if roomID := intQuery(r, "roomId", 0); roomID > 0 {
		// a stale room id in the URL just leaves nothing selected
		_ = v.SelectRoom(int64(roomID))
	}
	return v
}

func (h *Handlers) hotelPage(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	v := h.openView(r, id)
	if err := v.Err(); domain.IsAuthError(err) {
		writeError(w, r, err)
		return
	}
	page := v.Page(i18n.FromContext(r.Context()))
	if page.Path != "" && chi.URLParam(r, "slug") != booking.HotelSlug(page.Name) {
		target := url.URL{Path: "/v1" + page.Path, RawQuery: r.URL.RawQuery}
		http.Redirect(w, r, target.String(), http.StatusPermanentRedirect)
		return
	}
	status := http.StatusOK
	if errors.Is(v.Err(), domain.ErrNotFound) {
		status = http.StatusNotFound
	}
	writeJSON(w, r, status, page)
}

type formRequest struct {
	CheckIn  domain.Date `json:"checkIn"`
	CheckOut domain.Date `json:"checkOut"`
	Guests   int         `json:"guests"`
	RoomID   int64       `json:"roomId"`
}

type formRejection struct {
	problem
	Page app.HotelPage `json:"page"`
}

// reservationForm confirms the guest's choice and answers with the booking
// intent, or with the page and the first blocking reason.
func (h *Handlers) reservationForm(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req formRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	l := i18n.FromContext(r.Context())
	v := h.Offers.NewView(id)
	v.Open(r.Context(), req.CheckIn, req.CheckOut, req.Guests)
	if err := v.Err(); err != nil && (domain.IsAuthError(err) || errors.Is(err, domain.ErrNotFound)) {
		writeError(w, r, err)
		return
	}
	if req.RoomID > 0 {
		if err := v.SelectRoom(req.RoomID); err != nil {
			writeError(w, r, err)
			return
		}
	}
	intent, err := v.Confirm()
	if err != nil {
		var p *booking.Problem
		detail := l.T("common.badRequest")
		if errors.As(err, &p) {
			detail = p.Localize(l)
		}
		writeJSON(w, r, http.StatusUnprocessableEntity, formRejection{
			problem: problem{Type: "about:blank", Title: http.StatusText(http.StatusUnprocessableEntity), Status: http.StatusUnprocessableEntity, Detail: detail},
			Page:    v.Page(l),
		})
		return
	}
	writeJSON(w, r, http.StatusOK, intent)
}

// ---- booking ----

func (h *Handlers) bookingRequest(w http.ResponseWriter, r *http.Request) (app.BookingRequest, bool) {
	hotelID, ok := idParam(w, r, "hotelId")
	if !ok {
		return app.BookingRequest{}, false
	}
	roomID, ok := idParam(w, r, "roomId")
	if !ok {
		return app.BookingRequest{}, false
	}
	req := app.BookingRequest{HotelID: hotelID, RoomID: roomID}
	if r.Method == http.MethodGet {
		req.CheckIn, req.CheckOut = dateRange(r)
		req.Guests = intQuery(r, "guests", 1)
	} else if !decodeJSON(w, r, &req) {
		return app.BookingRequest{}, false
	}
	// the path wins over the body
	req.HotelID, req.RoomID = hotelID, roomID
	return req, true
}

func (h *Handlers) bookingPage(w http.ResponseWriter, r *http.Request) {
	req, ok := h.bookingRequest(w, r)
	if !ok {
		return
	}
	page, err := h.Bookings.Prepare(r.Context(), req, i18n.FromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}

func (h *Handlers) book(w http.ResponseWriter, r *http.Request) {
	req, ok := h.bookingRequest(w, r)
	if !ok {
		return
	}
	var user *domain.User
	if u, ok := userFrom(r.Context()); ok {
		user = &u
	}
	res, err := h.Bookings.Submit(r.Context(), user, req, i18n.FromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", res.Redirect)
	writeJSON(w, r, http.StatusCreated, res)
}

// ---- auth ----

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.Sessions.Login(r.Context(), req)
	if err != nil {
		var ve *domain.ValidationError
		if domain.IsAuthError(err) || errors.As(err, &ve) || errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, problem{Status: http.StatusUnauthorized, Detail: i18n.FromContext(r.Context()).T("auth.loginFailed")})
			return
		}
		writeError(w, r, err)
		return
	}
	setSessionCookie(w, r, sess, h.CookieSecure)
	writeJSON(w, r, http.StatusOK, sess)
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.Sessions.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setSessionCookie(w, r, sess, h.CookieSecure)
	writeJSON(w, r, http.StatusCreated, sess)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(r.Context(), tokenFrom(r))
	clearSessionCookie(w, r)
	writeMessage(w, r, http.StatusOK, "auth.loggedOut")
}

func (h *Handlers) requestReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Sessions.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, r, http.StatusAccepted, "password.resetSent")
}

func (h *Handlers) confirmReset(w http.ResponseWriter, r *http.Request) {
	var req domain.PasswordResetConfirm
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Sessions.ConfirmPasswordReset(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, r, http.StatusOK, "password.changed")
}

// ---- profile ----

func (h *Handlers) profile(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	p, err := h.Sessions.Profile(r.Context(), u, pageQuery(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

type profileSaved struct {
	User    domain.User `json:"user"`
	Message string      `json:"message"`
}

func (h *Handlers) editProfile(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	var req app.ProfileUpdate
	if !decodeJSON(w, r, &req) {
		return
	}
	l := i18n.FromContext(r.Context())
	updated, err := h.Sessions.UpdateProfile(r.Context(), tokenFrom(r), u, req)
	switch {
	case errors.Is(err, app.ErrOnlyGuests):
		writeProblem(w, problem{Status: http.StatusForbidden, Detail: app.ErrOnlyGuests.Localize(l)})
		return
	case err != nil:
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, profileSaved{User: updated, Message: l.T("user.editProfile.success")})
}

func (h *Handlers) changePassword(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Sessions.ChangePassword(r.Context(), u, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, r, http.StatusOK, "password.changed")
}
