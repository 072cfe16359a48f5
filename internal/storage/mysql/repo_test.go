package mysql_test

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"hotelos_gateway/internal/domain"
	mysqlrepo "hotelos_gateway/internal/storage/mysql"
)

func TestRepo_LogAttempt(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	resID := int64(88)
	a := domain.BookingAttempt{
		ID:            "6f1c2d3e-0000-4000-8000-000000000001",
		UserID:        4,
		HotelID:       2,
		RoomID:        9,
		CheckIn:       domain.NewDate(2025, 5, 1),
		CheckOut:      domain.NewDate(2025, 5, 3),
		Guests:        2,
		TotalAmount:   300,
		Outcome:       domain.AttemptOK,
		ReservationID: &resID,
	}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO booking_attempts")).
		WithArgs(a.ID, int64(4), int64(2), int64(9), "2025-05-01", "2025-05-03", 2, 300.0, "ok", nil, int64(88)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := mysqlrepo.New(db).LogAttempt(context.Background(), a); err != nil {
		t.Fatalf("LogAttempt: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRepo_LogAttempt_TruncatesReason(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	long := strings.Repeat("é", 600)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO booking_attempts")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), nil, nil,
			sqlmock.AnyArg(), sqlmock.AnyArg(), "failed", strings.Repeat("é", 512), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = mysqlrepo.New(db).LogAttempt(context.Background(), domain.BookingAttempt{
		ID: "x", Outcome: domain.AttemptFailed, Reason: long,
	})
	if err != nil {
		t.Fatalf("LogAttempt: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRepo_ListAttempts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "hotel_id", "room_id", "check_in", "check_out",
		"guests", "total_amount", "outcome", "reason", "reservation_id", "created_at"}).
		AddRow("a1", 4, 2, 9, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC),
			2, 300.0, "ok", nil, 88, created).
		AddRow("a2", 5, 2, 9, nil, nil, 1, 0.0, "rejected", "Primary guest must be an adult.", nil, created)

	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_attempts")).
		WithArgs(int64(2), int64(2), int64(0), int64(0), 50).
		WillReturnRows(rows)

	got, err := mysqlrepo.New(db).ListAttempts(context.Background(), domain.AttemptsQuery{HotelID: 2})
	if err != nil {
		t.Fatalf("ListAttempts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].CheckIn.String() != "2025-05-01" || got[0].ReservationID == nil || *got[0].ReservationID != 88 {
		t.Fatalf("row 0: %+v", got[0])
	}
	if !got[1].CheckIn.IsZero() || got[1].Outcome != domain.AttemptRejected || got[1].Reason == "" {
		t.Fatalf("row 1: %+v", got[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
