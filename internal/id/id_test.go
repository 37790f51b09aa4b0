package id

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtEncodesStartTime(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	started := time.Date(2025, 6, 2, 9, 21, 30, 0, ist)

	u, err := ulid.ParseStrict(At(started))
	require.NoError(t, err)
	assert.Equal(t, started.UnixMilli(), int64(u.Time()))
}

func TestAtSortsByStart(t *testing.T) {
	day := time.Date(2025, 6, 2, 3, 50, 0, 0, time.UTC)

	monday := At(day)
	tuesday := At(day.Add(24 * time.Hour))
	assert.Len(t, monday, 26)
	assert.Less(t, monday, tuesday)
}

func TestAtSameMillisecondIncreases(t *testing.T) {
	fixed := time.Date(2025, 6, 2, 3, 50, 0, 0, time.UTC)

	prev := At(fixed)
	for i := 0; i < 50; i++ {
		next := At(fixed)
		require.Less(t, prev, next)
		prev = next
	}
}
