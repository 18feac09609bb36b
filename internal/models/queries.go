package models

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Column widths from the original schema. sqlite does not enforce
// varchar lengths, so oversized values are rejected here and tagged as
// malformed.
const (
	maxUsernameLen = 80
	maxEmailLen    = 120
	maxHashLen     = 300
)

// CreateUser inserts a new user inside its own transaction; the call
// either commits once or rolls back once. Uniqueness of username and
// email is enforced by the schema.
func CreateUser(conn *sql.DB, username, email, passwordHash string) error {
	if len(username) > maxUsernameLen || len(email) > maxEmailLen || len(passwordHash) > maxHashLen {
		return storeErr(KindMalformed, errors.New("field exceeds column width"))
	}
	tx, err := conn.Begin()
	if err != nil {
		return storeErr(classify(err), err)
	}
	if _, err := tx.Exec(`INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`, username, email, passwordHash); err != nil {
		tx.Rollback()
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return storeErr(KindConflict, ErrDuplicateEmail)
		}
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.username") {
			return storeErr(KindConflict, ErrDuplicateUsername)
		}
		return storeErr(classify(err), err)
	}
	if err := tx.Commit(); err != nil {
		return storeErr(classify(err), err)
	}
	return nil
}

func GetUserByEmail(conn *sql.DB, email string) (*User, error) {
	row := conn.QueryRow(`SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func GetUserByID(conn *sql.DB, id int) (*User, error) {
	row := conn.QueryRow(`SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr(classify(err), err)
	}
	return &u, nil
}

func CountUsers(conn *sql.DB) (int, error) {
	var n int
	err := conn.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// CreateSession revokes any live session for the user before inserting
// the new one, so a user holds at most one valid session.
func CreateSession(conn *sql.DB, userID int, sessionID string, expires time.Time) error {
	tx, err := conn.Begin()
	if err != nil {
		return storeErr(classify(err), err)
	}
	if _, err := tx.Exec(`UPDATE sessions SET revoked_at = CURRENT_TIMESTAMP WHERE user_id = ? AND revoked_at IS NULL`, userID); err != nil {
		tx.Rollback()
		return storeErr(classify(err), err)
	}
	if _, err := tx.Exec(`INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)`, sessionID, userID, expires.UTC()); err != nil {
		tx.Rollback()
		return storeErr(classify(err), err)
	}
	if err := tx.Commit(); err != nil {
		return storeErr(classify(err), err)
	}
	return nil
}

func GetSession(conn *sql.DB, id string) (*Session, error) {
	row := conn.QueryRow(`SELECT id, user_id, created_at, expires_at, revoked_at FROM sessions WHERE id = ?`, id)
	var s Session
	var revoked sql.NullTime
	err := row.Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt, &revoked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr(classify(err), err)
	}
	if revoked.Valid {
		s.RevokedAt = &revoked.Time
	}
	return &s, nil
}

// TouchSession slides the expiry window forward from the current
// request.
func TouchSession(conn *sql.DB, id string, expires time.Time) error {
	_, err := conn.Exec(`UPDATE sessions SET expires_at = ? WHERE id = ? AND revoked_at IS NULL`, expires.UTC(), id)
	return err
}

func RevokeSession(conn *sql.DB, id string) error {
	_, err := conn.Exec(`UPDATE sessions SET revoked_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}

func CreateMessage(conn *sql.DB, text, author, category string, draft bool) (int, error) {
	res, err := conn.Exec(`INSERT INTO messages (text, author, category, draft) VALUES (?, ?, ?, ?)`, text, author, category, draft)
	if err != nil {
		return 0, storeErr(classify(err), err)
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func CountMessages(conn *sql.DB) (int, error) {
	var n int
	err := conn.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&n)
	if err != nil {
		return 0, storeErr(classify(err), err)
	}
	return n, nil
}

// ListMessages returns one page of messages in insertion order. Pages
// are 1-based; a page past the end yields an empty slice.
func ListMessages(conn *sql.DB, page, perPage int) ([]Message, error) {
	if page < 1 {
		page = 1
	}
	rows, err := conn.Query(`SELECT id, text, author, category, draft, create_time FROM messages ORDER BY id LIMIT ? OFFSET ?`, perPage, (page-1)*perPage)
	if err != nil {
		return nil, storeErr(classify(err), err)
	}
	defer rows.Close()
	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Text, &m.Author, &m.Category, &m.Draft, &m.CreateTime); err != nil {
			return nil, storeErr(classify(err), err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func GetMessage(conn *sql.DB, id int) (*Message, error) {
	row := conn.QueryRow(`SELECT id, text, author, category, draft, create_time FROM messages WHERE id = ?`, id)
	var m Message
	err := row.Scan(&m.ID, &m.Text, &m.Author, &m.Category, &m.Draft, &m.CreateTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr(classify(err), err)
	}
	return &m, nil
}

// ToggleMessageDraft flips the draft flag of the message. It does not
// accept a value: the route it backs is a toggle, and two calls restore
// the original state.
func ToggleMessageDraft(conn *sql.DB, id int) error {
	tx, err := conn.Begin()
	if err != nil {
		return storeErr(classify(err), err)
	}
	res, err := tx.Exec(`UPDATE messages SET draft = NOT draft WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return storeErr(classify(err), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return storeErr(classify(err), err)
	}
	if n == 0 {
		tx.Rollback()
		return ErrNotFound
	}
	return tx.Commit()
}

// DeleteMessage removes the message. Deleting an id that does not
// exist reports ErrNotFound, so a repeated delete fails rather than
// succeeding silently.
func DeleteMessage(conn *sql.DB, id int) error {
	tx, err := conn.Begin()
	if err != nil {
		return storeErr(classify(err), err)
	}
	res, err := tx.Exec(`DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return storeErr(classify(err), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return storeErr(classify(err), err)
	}
	if n == 0 {
		tx.Rollback()
		return ErrNotFound
	}
	return tx.Commit()
}

// SeedMessages fills an empty messages table with demo rows so the
// table and pagination pages have something to show. A non-empty table
// is left alone.
func SeedMessages(conn *sql.DB, count int) error {
	n, err := CountMessages(conn)
	if err != nil || n > 0 {
		return err
	}
	categories := []string{"News", "Tips", "Releases"}
	for i := 1; i <= count; i++ {
		text := fmt.Sprintf("Demo message %d", i)
		if _, err := CreateMessage(conn, text, "demo", categories[i%len(categories)], i%5 == 0); err != nil {
			return err
		}
	}
	return nil
}
