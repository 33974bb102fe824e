// Package repository wraps all GORM access to the catalog database.
// Each entity gets its own repo struct holding the shared *gorm.DB
// handle, and gateway failures are translated into the sentinel
// errors below so handlers can map them to HTTP status codes without
// knowing anything about MySQL.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup by id matches no row.
// Handlers translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update violates a
// unique constraint, such as a second genre with the same name.
// Handlers translate it into an HTTP 409 response.
var ErrDuplicate = errors.New("already exists")

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers translate it into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrGenreInUse is returned when a genre delete is blocked because
// at least one movie still references it. Handlers translate it
// into an HTTP 400 response and the genre is left intact.
var ErrGenreInUse = errors.New("genre is assigned to movies")

// mysqlDuplicateEntry is the server error code for a unique key violation.
const mysqlDuplicateEntry = 1062

// translate maps gateway errors onto the package sentinels. Anything
// it does not recognize passes through untouched and ends up as a 500.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var my *mysql.MySQLError
	if errors.As(err, &my) && my.Number == mysqlDuplicateEntry {
		return ErrDuplicate
	}
	return err
}
