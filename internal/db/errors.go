package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")
)

// Op constants name the failing operation for error context.
const (
	OpGet   = "GET"
	OpSet   = "SET"
	OpPing  = "PING"
	OpRPC   = "RPC"
	OpQuery = "QUERY"
	OpScan  = "SCAN"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// RPCError is a failure reported by the remote procedure itself.
// Error returns the upstream message verbatim.
type RPCError struct {
	Procedure string
	Status    int    // HTTP status for REST backends, 0 otherwise
	Code      string // SQLSTATE or PostgREST error code
	Message   string
	Details   string
	Hint      string
}

func (e *RPCError) Error() string { return e.Message }
