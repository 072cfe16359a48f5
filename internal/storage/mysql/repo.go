package mysql

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"unicode/utf8"

	"hotelos_gateway/internal/domain"
)

//go:embed migrations/*.sql
var migrations embed.FS

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func valDate(d domain.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

// Repo is the booking attempt log.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Migrate applies the embedded schema files in name order. They are idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, n := range names {
		b, err := migrations.ReadFile(n)
		if err != nil {
			return err
		}
		for _, stmt := range strings.Split(string(b), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migrate %s: %w", n, err)
			}
		}
	}
	return nil
}

func (r *Repo) LogAttempt(ctx context.Context, a domain.BookingAttempt) error {
	_, err := r.db.ExecContext(ctx, insertAttemptSQL,
		a.ID,
		a.UserID,
		a.HotelID,
		a.RoomID,
		valDate(a.CheckIn),
		valDate(a.CheckOut),
		a.Guests,
		a.TotalAmount,
		string(a.Outcome),
		valStr(truncate(a.Reason, 512)),
		valInt64(a.ReservationID),
	)
	return err
}

func (r *Repo) ListAttempts(ctx context.Context, q domain.AttemptsQuery) ([]domain.BookingAttempt, error) {
	limit := q.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, listAttemptsSQL, q.HotelID, q.HotelID, q.UserID, q.UserID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BookingAttempt
	for rows.Next() {
		var (
			a                 domain.BookingAttempt
			checkIn, checkOut sql.NullTime
			reason            sql.NullString
			resID             sql.NullInt64
			outcome           string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.HotelID, &a.RoomID, &checkIn, &checkOut,
			&a.Guests, &a.TotalAmount, &outcome, &reason, &resID, &a.CreatedAt); err != nil {
			return nil, err
		}
		if checkIn.Valid {
			a.CheckIn = dateOf(checkIn)
		}
		if checkOut.Valid {
			a.CheckOut = dateOf(checkOut)
		}
		a.Outcome = domain.AttemptOutcome(outcome)
		a.Reason = reason.String
		if resID.Valid {
			id := resID.Int64
			a.ReservationID = &id
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func dateOf(t sql.NullTime) domain.Date {
	y, m, d := t.Time.Date()
	return domain.NewDate(y, m, d)
}

// truncate counts characters, matching VARCHAR semantics.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
