package pricing

import (
	"fmt"
	"time"
)

// Clock is a time of day expressed as an offset from midnight.
type Clock time.Duration

// NewClock builds a Clock from hours, minutes and seconds.
func NewClock(h, m, s int) Clock {
	return Clock(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second)
}

// ParseClock parses "15:04" or "15:04:05".
func ParseClock(s string) (Clock, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return NewClock(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return 0, fmt.Errorf("parse clock %q: want HH:MM or HH:MM:SS", s)
}

// ClockOf returns the time of day of t in its own location.
func ClockOf(t time.Time) Clock {
	return Clock(time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond()))
}

func (c Clock) String() string {
	d := time.Duration(c)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if s == 0 {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Window selects ticks whose local time of day falls in [Start, End).
type Window struct {
	Start    Clock
	End      Clock
	Location *time.Location
}

// Contains reports whether t falls inside the window, in the window's location.
func (w Window) Contains(t time.Time) bool {
	loc := w.Location
	if loc == nil {
		loc = time.UTC
	}
	c := ClockOf(t.In(loc))
	return c >= w.Start && c < w.End
}

// Aggregate reduces the ticks inside the window to one OHLC candle. It
// returns false when no tick falls inside the window.
func (w Window) Aggregate(ticks []Tick) (Candle, bool) {
	in := make([]Tick, 0, len(ticks))
	for _, t := range ticks {
		if w.Contains(t.Time) {
			in = append(in, t)
		}
	}
	if len(in) == 0 {
		return Candle{}, false
	}
	SortTicks(in)

	first, last := in[0], in[len(in)-1]
	c := Candle{
		Symbol: first.Symbol,
		Time:   first.Time,
		Open:   first.Price,
		High:   first.Price,
		Low:    first.Price,
		Close:  last.Price,
		Ticks:  len(in),
	}
	for _, t := range in[1:] {
		if t.Price.GreaterThan(c.High) {
			c.High = t.Price
		}
		if t.Price.LessThan(c.Low) {
			c.Low = t.Price
		}
	}
	return c, true
}
