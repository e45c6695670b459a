package dbx

import (
	"errors"

	"github.com/lib/pq"
)

// IsDataException reports whether err is a PostgreSQL data exception
// (SQLSTATE class 22), such as a NUL byte in a text value or an integer
// out of range.
func IsDataException(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Class() == "22"
}
