package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

type Candle struct {
	Symbol string
	Time   time.Time // time of the first tick

	Open  decimal.Decimal
	High  decimal.Decimal
	Low   decimal.Decimal
	Close decimal.Decimal

	Ticks int
}

// Body is the absolute distance between open and close.
func (c Candle) Body() decimal.Decimal {
	return c.Close.Sub(c.Open).Abs()
}

// Range is high minus low.
func (c Candle) Range() decimal.Decimal {
	return c.High.Sub(c.Low)
}

func (c Candle) UpperShadow() decimal.Decimal {
	return c.High.Sub(decimal.Max(c.Open, c.Close))
}

func (c Candle) LowerShadow() decimal.Decimal {
	return decimal.Min(c.Open, c.Close).Sub(c.Low)
}
