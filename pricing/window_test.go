package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func openingWindow() Window {
	return Window{Start: NewClock(9, 15, 0), End: NewClock(9, 20, 0), Location: ist}
}

func tick(h, m, s int, price string) Tick {
	return Tick{
		Symbol: "SBIN",
		Time:   time.Date(2025, 6, 2, h, m, s, 0, ist),
		Price:  decimal.RequireFromString(price),
	}
}

func TestParseClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"09:15", NewClock(9, 15, 0), false},
		{"09:20:30", NewClock(9, 20, 30), false},
		{"9.15", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClockString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "09:15", NewClock(9, 15, 0).String())
	assert.Equal(t, "09:20:01", NewClock(9, 20, 1).String())
}

func TestAggregate_HalfOpenWindow(t *testing.T) {
	t.Parallel()

	ticks := []Tick{
		tick(9, 14, 59, "50"),
		tick(9, 15, 0, "100"),
		tick(9, 16, 0, "101"),
		tick(9, 17, 0, "99.5"),
		tick(9, 19, 59, "100.2"),
		tick(9, 20, 0, "200"),
		tick(9, 20, 1, "10"),
	}

	c, ok := openingWindow().Aggregate(ticks)
	require.True(t, ok)

	assert.Equal(t, "100", c.Open.String())
	assert.Equal(t, "101", c.High.String())
	assert.Equal(t, "99.5", c.Low.String())
	assert.Equal(t, "100.2", c.Close.String())
	assert.Equal(t, 4, c.Ticks)
	assert.Equal(t, "SBIN", c.Symbol)
}

func TestAggregate_UnorderedFeed(t *testing.T) {
	t.Parallel()

	ticks := []Tick{
		tick(9, 18, 0, "102"),
		tick(9, 15, 30, "100"),
		tick(9, 16, 0, "98"),
	}

	c, ok := openingWindow().Aggregate(ticks)
	require.True(t, ok)

	assert.Equal(t, "100", c.Open.String())
	assert.Equal(t, "102", c.Close.String())
	assert.Equal(t, "102", c.High.String())
	assert.Equal(t, "98", c.Low.String())
	assert.True(t, c.Time.Equal(ticks[1].Time))
}

func TestAggregate_EmptyWindow(t *testing.T) {
	t.Parallel()

	_, ok := openingWindow().Aggregate(nil)
	assert.False(t, ok)

	_, ok = openingWindow().Aggregate([]Tick{tick(9, 14, 0, "1"), tick(9, 25, 0, "2")})
	assert.False(t, ok)
}

func TestAggregate_ConvertsToWindowLocation(t *testing.T) {
	t.Parallel()

	// 03:46 UTC is 09:16 IST.
	ticks := []Tick{{
		Symbol: "INFY",
		Time:   time.Date(2025, 6, 2, 3, 46, 0, 0, time.UTC),
		Price:  decimal.RequireFromString("1500"),
	}}

	c, ok := openingWindow().Aggregate(ticks)
	require.True(t, ok)
	assert.Equal(t, "1500", c.Open.String())
	assert.Equal(t, 1, c.Ticks)
}
