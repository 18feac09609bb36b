package models

import (
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrNotFound          = errors.New("not found")
)

// Kind buckets a store failure for translation into a single
// user-facing message. Handlers switch on the kind, never on the raw
// error.
type Kind int

const (
	KindUnknown Kind = iota
	KindConflict
	KindMalformed
	KindConnectivity
)

// StoreError tags an underlying store failure with its Kind.
type StoreError struct {
	Kind Kind
	Err  error
}

func (e *StoreError) Error() string { return e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

// ErrKind reports the Kind of err. Errors that were not produced by
// the store, or that the classifier does not recognize, come back as
// KindUnknown.
func ErrKind(err error) Kind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return classify(err)
}

func classify(err error) Kind {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, sql.ErrTxDone) {
		return KindConnectivity
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint:
			return KindConflict
		case sqlite3.ErrTooBig, sqlite3.ErrMismatch, sqlite3.ErrRange:
			return KindMalformed
		case sqlite3.ErrCantOpen, sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrIoErr, sqlite3.ErrNotADB:
			return KindConnectivity
		}
	}
	return KindUnknown
}

func storeErr(kind Kind, err error) error {
	return &StoreError{Kind: kind, Err: err}
}
