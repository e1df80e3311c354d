package mysql

// Statements here are portable between MySQL and SQLite; keep them that way.
// Note: `text` is reserved in MySQL; keep it quoted everywhere.

const insertReviewSQL = "INSERT INTO reviews\n  (name, role, company, rating, `text`, created_at)\nVALUES\n  (?, ?, ?, ?, ?, ?)"

const listReviewsSQL = "SELECT id, name, role, company, rating, `text`, created_at\nFROM reviews\nORDER BY created_at DESC, id DESC\nLIMIT ?"

const deleteReviewSQL = `DELETE FROM reviews WHERE id = ?`

const countReviewsSQL = `SELECT COUNT(*) FROM reviews`

const insertBookingSQL = `
INSERT INTO bookings
  (reference, name, email, phone, company, service, preferred_date, budget, message, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const listBookingsSQL = `
SELECT id, reference, name, email, phone, company, service, preferred_date, budget, message, created_at
FROM bookings
ORDER BY created_at DESC, id DESC
LIMIT ?
`

const deleteBookingSQL = `DELETE FROM bookings WHERE id = ?`

const countBookingsSQL = `SELECT COUNT(*) FROM bookings`

const purgeBookingsSQL = `DELETE FROM bookings WHERE created_at < ?`
