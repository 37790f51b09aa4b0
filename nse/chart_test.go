package nse

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func TestParseChart_Malformed(t *testing.T) {
	t.Parallel()

	stamp := stamper(time.UTC, false)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `Access Denied`},
		{"missing field", `{"identifier":"SBINEQN"}`},
		{"field not array", `{"grapthData":"none"}`},
		{"pair not array", `{"grapthData":[1748855700000]}`},
		{"short pair", `{"grapthData":[[1748855700000]]}`},
		{"long pair", `{"grapthData":[[1748855700000,812.5,"extra"]]}`},
		{"string price", `{"grapthData":[[1748855700000,"812.5"]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseChart("SBIN", []byte(tt.body), stamp)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
		})
	}
}

func TestParseChart_NoData(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{"grapthData":[]}`, `{"grapthData":null}`} {
		ticks, err := parseChart("SBIN", []byte(body), stamper(time.UTC, false))
		require.NoError(t, err, body)
		assert.Empty(t, ticks, body)
	}
}

func TestParseChart_ExactPrices(t *testing.T) {
	t.Parallel()

	ticks, err := parseChart("SBIN", []byte(`{"grapthData":[[1748855700000,100.1],[1748855701000,1.5e2]]}`), stamper(time.UTC, false))
	require.NoError(t, err)
	require.Len(t, ticks, 2)

	assert.Equal(t, "100.1", ticks[0].Price.String())
	assert.Equal(t, "150", ticks[1].Price.String())
}

func TestStamper(t *testing.T) {
	t.Parallel()

	ms := time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC).UnixMilli()

	wall := stamper(ist, true)(ms)
	assert.Equal(t, 9, wall.Hour())
	assert.Equal(t, ist, wall.Location())

	instant := stamper(ist, false)(ms)
	assert.Equal(t, 14, instant.Hour())
	assert.Equal(t, 45, instant.Minute())
	assert.True(t, instant.Equal(time.UnixMilli(ms)))
}
