package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelos_gateway/internal/app"
	"hotelos_gateway/internal/booking"
	"hotelos_gateway/internal/domain"
	"hotelos_gateway/internal/i18n"
)

const (
	maxJSONBody   = 1 << 20
	maxUploadBody = 32 << 20
)

type problem struct {
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Status    int               `json:"status"`
	Detail    string            `json:"detail,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	AttemptID string            `json:"attemptId,omitempty"`
	Form      any               `json:"form,omitempty"`
}

func writeProblem(w http.ResponseWriter, p problem) {
	if p.Type == "" {
		p.Type = "about:blank"
	}
	if p.Title == "" {
		p.Title = http.StatusText(p.Status)
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, detail string) {
	l := i18n.FromContext(r.Context())
	if detail == "" {
		detail = l.T("common.badRequest")
	}
	writeProblem(w, problem{Status: http.StatusBadRequest, Detail: detail})
}

func writeForbidden(w http.ResponseWriter, r *http.Request) {
	writeProblem(w, problem{Status: http.StatusForbidden, Detail: i18n.FromContext(r.Context()).T("common.forbidden")})
}

// writeError maps err to a status and a localized detail. Raw errors are
// only logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	l := i18n.FromContext(r.Context())
	var (
		se *app.SubmitError
		ve *domain.ValidationError
		bp *booking.Problem
	)
	switch {
	case errors.As(err, &se):
		p := problem{Status: se.Status, Detail: se.Message, AttemptID: se.AttemptID, Form: se.Form}
		if se.Status == http.StatusUnauthorized {
			w.Header().Set("Location", "/login")
		}
		writeProblem(w, p)
	case errors.As(err, &ve):
		status := ve.Status
		if status < 400 || status > 499 {
			status = http.StatusBadRequest
		}
		writeProblem(w, problem{Status: status, Detail: ve.Error(), Fields: ve.Fields})
	case errors.As(err, &bp):
		writeProblem(w, problem{Status: http.StatusBadRequest, Detail: bp.Localize(l)})
	case errors.Is(err, booking.ErrRoomNotOffered):
		writeProblem(w, problem{Status: http.StatusConflict, Detail: l.T("hotelDetails.noRoomsAvailable")})
	case domain.IsAuthError(err):
		// backend refused the token: the caller must log in again
		w.Header().Set("Location", "/login")
		writeProblem(w, problem{Status: http.StatusUnauthorized, Detail: l.T("common.unauthorized")})
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, problem{Status: http.StatusNotFound, Detail: l.T("common.notFound")})
	case errors.Is(err, domain.ErrUnavailable):
		w.Header().Set("Retry-After", "5")
		writeProblem(w, problem{Status: http.StatusServiceUnavailable, Detail: l.T("common.unavailable")})
	case errors.Is(err, context.DeadlineExceeded):
		writeProblem(w, problem{Status: http.StatusGatewayTimeout, Detail: l.T("common.unavailable")})
	default:
		log.Error().Err(err).Str("route", routeOf(r)).Msg("request failed")
		writeProblem(w, problem{Status: http.StatusBadGateway, Detail: l.T("common.error")})
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON sends v. Successful GETs carry an ETag and honor If-None-Match.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeError(w, r, errors.New("response encoding failed"))
		return
	}
	if r.Method == http.MethodGet && status == http.StatusOK && etag != "" {
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
			w.Header().Set("ETag", etag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("route", routeOf(r)).Msg("failed to write body")
	}
}

type message struct {
	Message string `json:"message"`
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, key string) {
	writeJSON(w, r, status, message{Message: i18n.FromContext(r.Context()).T(key)})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		writeBadRequest(w, r, "")
		return false
	}
	return true
}

// ---- params ----

func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeBadRequest(w, r, name+" must be a positive number")
		return 0, false
	}
	return id, true
}

func intQuery(r *http.Request, name string, def int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(name)); err == nil {
		return v
	}
	return def
}

func pageQuery(r *http.Request) domain.PageQuery {
	return domain.PageQuery{Page: intQuery(r, "page", 0), Size: intQuery(r, "size", 10)}
}

// dateRange reads checkIn/checkOut. Malformed values count as not selected.
func dateRange(r *http.Request) (domain.Date, domain.Date) {
	in, err := domain.ParseDate(r.URL.Query().Get("checkIn"))
	if err != nil {
		in = domain.Date{}
	}
	out, err := domain.ParseDate(r.URL.Query().Get("checkOut"))
	if err != nil {
		out = domain.Date{}
	}
	return in, out
}

// ---- cookies ----

func setSessionCookie(w http.ResponseWriter, r *http.Request, s app.Session, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.Expires,
		MaxAge:   int(time.Until(s.Expires).Seconds()),
		HttpOnly: true,
		Secure:   secure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// ---- uploads ----

// formFiles reads every part of the multipart field into memory.
func formFiles(w http.ResponseWriter, r *http.Request, field string) ([]domain.FileUpload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		writeBadRequest(w, r, "")
		return nil, false
	}
	var out []domain.FileUpload
	for _, fh := range r.MultipartForm.File[field] {
		f, err := fh.Open()
		if err != nil {
			writeBadRequest(w, r, "")
			return nil, false
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			writeBadRequest(w, r, "")
			return nil, false
		}
		out = append(out, domain.FileUpload{Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data})
	}
	if len(out) == 0 {
		writeBadRequest(w, r, fmt.Sprintf("multipart field %q is empty", field))
		return nil, false
	}
	return out, true
}
