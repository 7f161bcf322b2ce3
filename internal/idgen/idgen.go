// internal/idgen/idgen.go
package idgen

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"
)

// Kind selects the identifier namespace. Memberships and items count
// independently; books and movies share the items table but carry distinct
// prefixes so their identifiers never collide.
type Kind string

const (
	KindMembership Kind = "M"
	KindBook       Kind = "B"
	KindMovie      Kind = "MV"
)

// suffixWidth is the zero-padded counter width at the end of every ID.
const suffixWidth = 3

// maxCounter is the largest counter the fixed-width suffix can hold. A
// 1000th identifier in one day would sort lexicographically below ...999
// and break the greatest-ID lookup, so generation fails instead of
// overflowing the format.
const maxCounter = 999

// dateLayout is the YYYYMMDD stamp embedded in every ID.
const dateLayout = "20060102"

// Querier is the single-row query surface Next needs. *sqlx.DB and
// *sqlx.Tx both satisfy it.
type Querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Next produces the next identifier for kind on the given day:
// prefix = kind + YYYYMMDD, followed by a 3-digit counter that continues
// from the lexicographically greatest existing ID for that prefix.
//
// Next alone is not race-free: two concurrent callers can read the same
// last ID. Callers must insert under the table's primary key and retry
// generation when IsUniqueViolation reports a duplicate.
func Next(ctx context.Context, q Querier, kind Kind, now time.Time) (string, error) {
	prefix := string(kind) + now.Format(dateLayout)

	var query string
	switch kind {
	case KindMembership:
		query = `SELECT membership_id FROM memberships WHERE membership_id LIKE $1 ORDER BY membership_id DESC LIMIT 1`
	case KindBook, KindMovie:
		query = `SELECT serial_no FROM items WHERE serial_no LIKE $1 ORDER BY serial_no DESC LIMIT 1`
	default:
		// Unrecognized kinds degrade to a first-of-day identifier.
		return prefix + "001", nil
	}

	var last string
	err := q.GetContext(ctx, &last, query, prefix+"%")
	if errors.Is(err, sql.ErrNoRows) {
		return format(prefix, 1), nil
	}
	if err != nil {
		return "", fmt.Errorf("query last id for %q: %w", prefix, err)
	}

	counter, err := strconv.Atoi(last[len(last)-suffixWidth:])
	if err != nil {
		return "", fmt.Errorf("parse counter of id %q: %w", last, err)
	}
	if counter >= maxCounter {
		return "", fmt.Errorf("identifier space for %q exhausted", prefix)
	}
	return format(prefix, counter+1), nil
}

func format(prefix string, counter int) string {
	return fmt.Sprintf("%s%0*d", prefix, suffixWidth, counter)
}

// IsUniqueViolation reports whether err is a Postgres duplicate-key error,
// the signal that a concurrent writer claimed the generated ID first.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
