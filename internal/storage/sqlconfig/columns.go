package sqlconfig

import (
	"errors"

	"github.com/lib/pq"
)

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate key")

const uniqueViolation = "23505"

func columnList(columns []string) []any {
	list := make([]any, len(columns))
	for i, column := range columns {
		list[i] = column
	}
	return list
}

// wrapUnique maps a unique-constraint violation to ErrDuplicate.
func wrapUnique(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}
