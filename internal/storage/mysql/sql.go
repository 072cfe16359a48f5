package mysql

const insertAttemptSQL = `
INSERT INTO booking_attempts
  (id, user_id, hotel_id, room_id, check_in, check_out, guests, total_amount, outcome, reason, reservation_id)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Zero filters match every row.
const listAttemptsSQL = `
SELECT id, user_id, hotel_id, room_id, check_in, check_out, guests, total_amount,
       outcome, reason, reservation_id, created_at
FROM booking_attempts
WHERE (? = 0 OR hotel_id = ?)
  AND (? = 0 OR user_id = ?)
ORDER BY created_at DESC, id
LIMIT ?
`
