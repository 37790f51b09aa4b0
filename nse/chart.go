package nse

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/rustyeddy/dojiwatch/pricing"
)

// chartField is the (misspelt) key the chart endpoint puts its samples under.
const chartField = "grapthData"

// ErrMalformed marks a chart body that is not the expected shape.
var ErrMalformed = errors.New("malformed chart data")

// parseChart decodes [[epochMillis, price], ...] under chartField. An empty
// or null list is valid and yields no ticks.
func parseChart(symbol string, body []byte, stamp func(ms int64) time.Time) ([]pricing.Tick, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not JSON", ErrMalformed)
	}
	data := gjson.GetBytes(body, chartField)
	if !data.Exists() {
		return nil, fmt.Errorf("%w: no %s field", ErrMalformed, chartField)
	}
	if data.Type == gjson.Null {
		return []pricing.Tick{}, nil
	}
	if !data.IsArray() {
		return nil, fmt.Errorf("%w: %s is %s, want array", ErrMalformed, chartField, data.Type)
	}

	pairs := data.Array()
	ticks := make([]pricing.Tick, 0, len(pairs))
	for i, pair := range pairs {
		p := pair.Array()
		if !pair.IsArray() || len(p) != 2 || p[0].Type != gjson.Number || p[1].Type != gjson.Number {
			return nil, fmt.Errorf("%w: sample %d is %s", ErrMalformed, i, pair.Raw)
		}
		price, err := decimal.NewFromString(p[1].Raw)
		if err != nil {
			return nil, fmt.Errorf("%w: sample %d price: %v", ErrMalformed, i, err)
		}
		ticks = append(ticks, pricing.Tick{
			Symbol: symbol,
			Time:   stamp(p[0].Int()),
			Price:  price,
		})
	}
	return ticks, nil
}

// stamper converts feed millis to instants. With wallClock the UTC fields of
// the millis are read as wall-clock time in loc.
func stamper(loc *time.Location, wallClock bool) func(int64) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return func(ms int64) time.Time {
		t := time.UnixMilli(ms).UTC()
		if !wallClock {
			return t.In(loc)
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
	}
}
