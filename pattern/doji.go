// Package pattern classifies single candles against Doji shapes.
//
// Geometry and magnitude are separate predicates: Classify only looks at
// the proportions of body and shadows, WithinRange only looks at how wide
// the candle is relative to its open. Callers combine them.
package pattern

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/dojiwatch/pricing"
)

// DefaultBodyThreshold is the largest body/range ratio still treated as a Doji.
const DefaultBodyThreshold = 0.1

// DefaultMaxRangePct is the range filter applied by the scanner, in percent of open.
const DefaultMaxRangePct = 1.0

var (
	lowerShadowFactor = decimal.RequireFromString("1.5")
	upperShadowFactor = decimal.NewFromInt(2)
	hundred           = decimal.NewFromInt(100)
)

type Kind int

const (
	None Kind = iota
	Doji
	GravestoneDoji
)

func (k Kind) String() string {
	switch k {
	case Doji:
		return "Doji"
	case GravestoneDoji:
		return "Gravestone Doji"
	default:
		return "None"
	}
}

// Result is the outcome of classifying one candle.
type Result struct {
	Match bool
	Kind  Kind
}

var noMatch = Result{Kind: None}

// Classify evaluates c against the Doji rules.
//
// A candle with no range never matches. A body/range ratio equal to the
// threshold still matches. Gravestone requires lowerShadow <= 1.5*body and
// upperShadow >= 2*body, so a zero-body candle is only a Gravestone when it
// also has no lower shadow.
func Classify(c pricing.Candle, bodyThreshold float64) Result {
	rng := c.Range()
	if !rng.IsPositive() {
		return noMatch
	}

	body := c.Body()
	// body/range > threshold, without dividing
	if body.GreaterThan(rng.Mul(decimal.NewFromFloat(bodyThreshold))) {
		return noMatch
	}

	if c.LowerShadow().LessThanOrEqual(body.Mul(lowerShadowFactor)) &&
		c.UpperShadow().GreaterThanOrEqual(body.Mul(upperShadowFactor)) {
		return Result{Match: true, Kind: GravestoneDoji}
	}
	return Result{Match: true, Kind: Doji}
}

// RangePercent is (high-low)/open*100. It is zero when open is not positive.
func RangePercent(c pricing.Candle) decimal.Decimal {
	if !c.Open.IsPositive() {
		return decimal.Zero
	}
	return c.Range().Mul(hundred).Div(c.Open)
}

// WithinRange reports whether the candle's range is strictly below maxPct
// percent of its open.
func WithinRange(c pricing.Candle, maxPct float64) bool {
	if !c.Open.IsPositive() {
		return false
	}
	// range*100 < maxPct*open
	return c.Range().Mul(hundred).LessThan(c.Open.Mul(decimal.NewFromFloat(maxPct)))
}
