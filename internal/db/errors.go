package db

import "errors"

// Sentinel errors for backend operations.
var (
	ErrNotFound      = errors.New("db: document not found")
	ErrKeyNotFound   = errors.New("db: key not found")
	ErrUnavailable   = errors.New("db: backend unavailable")
	ErrIndexNotFound = errors.New("db: index not found")
	ErrIndexExists   = errors.New("db: index already exists")
	ErrBadQuery      = errors.New("db: query rejected by backend")
)

// Op constants name backend operations for error context.
const (
	OpSearch      = "search"
	OpGetDocument = "get"
	OpPing        = "ping"
	OpCreateIndex = "create_index"
	OpIndexInfo   = "index_info"
	OpBulk        = "bulk"
	OpGet         = "GET"
	OpSet         = "SET"
	OpDel         = "DEL"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
