package pricing

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TickSource returns the intraday ticks for a symbol. Implementations
// report failure as an empty slice rather than an error.
type TickSource interface {
	FetchTicks(ctx context.Context, symbol string) []Tick
}

// Tick is a single last-traded-price sample.
type Tick struct {
	Symbol string
	Time   time.Time
	Price  decimal.Decimal
}

// SortTicks orders ticks chronologically in place. Ticks sharing a
// timestamp keep their feed order.
func SortTicks(ticks []Tick) {
	sort.SliceStable(ticks, func(i, j int) bool {
		return ticks[i].Time.Before(ticks[j].Time)
	})
}
