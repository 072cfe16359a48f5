package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"hotelos_gateway/internal/booking"
	"hotelos_gateway/internal/domain"
)

// DefaultTokenLifetime applies when the token carries no expiry.
const DefaultTokenLifetime = 7 * 24 * time.Hour

type SessionBackend interface {
	domain.AuthAPI
	UpdateUser(ctx context.Context, id int64, u domain.User) (domain.User, error)
	UserReservations(ctx context.Context, userID int64, pg domain.PageQuery) (domain.Page[domain.Reservation], error)
}

type SessionService struct {
	api   SessionBackend
	store domain.SessionStore
	ttl   time.Duration
	now   func() time.Time
}

func NewSessionService(api SessionBackend, store domain.SessionStore, ttl time.Duration) *SessionService {
	return &SessionService{api: api, store: store, ttl: ttl, now: time.Now}
}

type Session struct {
	Token   string      `json:"-"`
	User    domain.User `json:"user"`
	Expires time.Time   `json:"expires"`
}

var ErrNoToken = errors.New("backend returned no token")

// TokenExpiry reads the exp claim without verifying the signature; the
// backend remains the authority on validity.
func TokenExpiry(token string, now time.Time) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	return now.Add(DefaultTokenLifetime)
}

func (s *SessionService) start(ctx context.Context, resp domain.AuthResponse) (Session, error) {
	if resp.Token == "" {
		return Session{}, ErrNoToken
	}
	var u domain.User
	if resp.User != nil {
		u = *resp.User
	} else {
		r, err := s.api.Authenticate(ctx, resp.Token)
		if err != nil {
			return Session{}, err
		}
		if r.User == nil {
			return Session{}, domain.ErrUnauthorized
		}
		u = *r.User
	}
	u.Password = ""
	sess := Session{Token: resp.Token, User: u, Expires: TokenExpiry(resp.Token, s.now())}
	s.cache(ctx, sess.Token, u, sess.Expires)
	return sess, nil
}

func (s *SessionService) cache(ctx context.Context, token string, u domain.User, expires time.Time) {
	if s.store == nil {
		return
	}
	ttl := s.ttl
	if left := expires.Sub(s.now()); left < ttl {
		ttl = left
	}
	if ttl <= 0 {
		return
	}
	if err := s.store.PutSession(ctx, token, u, ttl); err != nil {
		log.Warn().Err(err).Msg("session cache write failed")
	}
}

func (s *SessionService) Login(ctx context.Context, req domain.LoginRequest) (Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return Session{}, err
	}
	return s.start(ctx, resp)
}

func (s *SessionService) Register(ctx context.Context, req domain.RegisterRequest) (Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	if z := req.AddressInformation.ZipCode; z != "" {
		if err := booking.ValidatePostalCode(req.AddressInformation.Country, z); err != nil {
			return Session{}, err
		}
	}
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return Session{}, err
	}
	return s.start(ctx, resp)
}

// Current resolves token to its user: the session cache first, then the
// backend. Any failure means the caller is not logged in.
func (s *SessionService) Current(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, domain.ErrUnauthorized
	}
	if !TokenExpiry(token, s.now()).After(s.now()) {
		return domain.User{}, fmt.Errorf("token expired: %w", domain.ErrUnauthorized)
	}
	if s.store != nil {
		u, ok, err := s.store.GetSession(ctx, token)
		if err != nil {
			log.Warn().Err(err).Msg("session cache read failed")
		}
		if ok {
			return u, nil
		}
	}
	resp, err := s.api.Authenticate(ctx, token)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return domain.User{}, fmt.Errorf("%v: %w", err, domain.ErrUnauthorized)
		}
		return domain.User{}, err
	}
	if resp.User == nil {
		return domain.User{}, domain.ErrUnauthorized
	}
	u := *resp.User
	u.Password = ""
	s.cache(ctx, token, u, TokenExpiry(token, s.now()))
	return u, nil
}

func (s *SessionService) Logout(ctx context.Context, token string) {
	if s.store == nil || token == "" {
		return
	}
	if err := s.store.DeleteSession(ctx, token); err != nil {
		log.Warn().Err(err).Msg("session cache delete failed")
	}
}

func (s *SessionService) ChangePassword(ctx context.Context, u domain.User, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return &domain.ValidationError{Status: http.StatusBadRequest, Fields: map[string]string{"newPassword": "must not be blank"}}
	}
	return s.api.ChangePassword(ctx, domain.PasswordChange{Email: u.Email, NewPassword: newPassword})
}

func (s *SessionService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &domain.ValidationError{Status: http.StatusBadRequest, Fields: map[string]string{"email": "must not be blank"}}
	}
	err := s.api.RequestPasswordReset(ctx, email)
	// unknown addresses are not disclosed
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

func (s *SessionService) ConfirmPasswordReset(ctx context.Context, req domain.PasswordResetConfirm) error {
	if req.Token == "" || strings.TrimSpace(req.NewPassword) == "" {
		return &domain.ValidationError{Status: http.StatusBadRequest, Message: "token and newPassword are required"}
	}
	return s.api.ConfirmPasswordReset(ctx, req)
}

/********** profile **********/

type Profile struct {
	User         domain.User                     `json:"user"`
	Reservations domain.Page[domain.Reservation] `json:"reservations"`
	Message      string                          `json:"message,omitempty"`
}

func (s *SessionService) Profile(ctx context.Context, u domain.User, pg domain.PageQuery) (Profile, error) {
	rs, err := s.api.UserReservations(ctx, u.UserID, pg)
	if err != nil {
		return Profile{}, err
	}
	return Profile{User: u, Reservations: rs}, nil
}

// ProfileUpdate holds the fields a guest may edit themselves.
type ProfileUpdate struct {
	FirstName          string                    `json:"firstName"`
	LastName           string                    `json:"lastName"`
	AddressInformation domain.AddressInformation `json:"addressInformation"`
	ContactInformation domain.ContactInformation `json:"contactInformation"`
}

var ErrOnlyGuests = &booking.Problem{Key: "user.editProfile.onlyGuests"}

func (s *SessionService) UpdateProfile(ctx context.Context, token string, u domain.User, p ProfileUpdate) (domain.User, error) {
	if u.UserType != domain.UserGuest {
		return domain.User{}, ErrOnlyGuests
	}
	if strings.TrimSpace(p.ContactInformation.Email) == "" {
		return domain.User{}, &domain.ValidationError{Status: http.StatusBadRequest, Fields: map[string]string{"contactEmail": "must not be blank"}}
	}
	if z := p.AddressInformation.ZipCode; z != "" {
		if err := booking.ValidatePostalCode(p.AddressInformation.Country, z); err != nil {
			return domain.User{}, err
		}
	}
	next := u
	if p.FirstName != "" {
		next.FirstName = p.FirstName
	}
	if p.LastName != "" {
		next.LastName = p.LastName
	}
	p.AddressInformation.ID = u.AddressInformation.ID
	p.ContactInformation.ID = u.ContactInformation.ID
	next.AddressInformation = p.AddressInformation
	next.ContactInformation = p.ContactInformation

	updated, err := s.api.UpdateUser(ctx, u.UserID, next)
	if err != nil {
		return domain.User{}, err
	}
	updated.Password = ""
	s.cache(ctx, token, updated, TokenExpiry(token, s.now()))
	return updated, nil
}
