// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// Handlers (HTTP layer) depend only on this interface, never on a
// concrete driver. Swapping the backend means implementing the
// interface and changing one line in main.go; handler tests pass a
// fake that satisfies the interface instead of a real database.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-management/internal/types"
)

// Sentinel errors returned by Storage implementations. Handlers match
// them with errors.Is to pick the HTTP status; anything else is a
// store failure and maps to 500.
var (
	// ErrNotFound: the id is well-formed but no record matches it.
	ErrNotFound = errors.New("student not found")

	// ErrInvalidID: the id does not parse as the store's native
	// identifier type. Distinct from ErrNotFound so clients can tell
	// malformed input from legitimate absence.
	ErrInvalidID = errors.New("invalid student id")

	// ErrEmailTaken: another record already holds the email.
	ErrEmailTaken = errors.New("email already exists")
)

// Storage is the database contract. Identifiers cross this boundary as
// strings only; implementations parse and render their native id type
// internally. Every method takes the request context so store I/O is
// cancelled when the client goes away.
type Storage interface {
	// CreateStudent persists a new record with store-assigned id and
	// created_at = updated_at = now, and returns the stored
	// representation. Returns ErrEmailTaken on an email collision.
	CreateStudent(ctx context.Context, in types.CreateStudent) (types.Student, error)

	// ListStudents returns one page of records plus the total count of
	// ALL records matching the filter. A non-empty search matches
	// records whose first name, last name, or email contains it as a
	// case-insensitive substring. page and limit are both >= 1;
	// records come back in insertion order.
	ListStudents(ctx context.Context, page, limit int64, search string) ([]types.Student, int64, error)

	// GetStudentByID fetches a single record. Returns ErrInvalidID for
	// a malformed id, ErrNotFound for a well-formed id with no match.
	GetStudentByID(ctx context.Context, id string) (types.Student, error)

	// UpdateStudent merges the non-nil fields of upd into the record,
	// refreshes updated_at, and returns the refreshed record. An empty
	// patch still refreshes updated_at. Returns ErrEmailTaken when the
	// new email is held by a different record.
	UpdateStudent(ctx context.Context, id string, upd types.UpdateStudent) (types.Student, error)

	// DeleteStudent permanently removes a record (hard delete).
	DeleteStudent(ctx context.Context, id string) error
}
