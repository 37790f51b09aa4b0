// Package id issues run identifiers.
package id

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// At returns a ULID for a run started at t. Run IDs sort by start time, and
// by issue order within the same millisecond.
func At(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}
