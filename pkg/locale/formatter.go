package locale

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"
)

const (
	DateLayout          = "02/01/2006"
	TimeLayout          = "15:04"
	InputDateLayout     = "2006-01-02"
	InputTimeLayout     = "15:04"
	InputDateTimeLayout = "2006-01-02T15:04"
)

// InputKind selects the machine readable layout produced by DateForInput.
type InputKind string

const (
	InputDate     InputKind = "date"
	InputTime     InputKind = "time"
	InputDateTime InputKind = "datetime-local"
)

var (
	epoch      = time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC)
	adultEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// openBoundSpan is the width, in years, given to the open side of a date
// control that only declares one bound outside the default window.
const openBoundSpan = 10

// Option configures a Formatter.
type Option func(*Formatter)

// WithClock overrides the clock used to resolve "now" and "today".
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) {
		if now != nil {
			f.now = now
		}
	}
}

// Formatter produces random locale formatted values. It is not safe for
// concurrent use because it owns a *rand.Rand.
type Formatter struct {
	rand *rand.Rand
	now  func() time.Time
}

// New constructs a Formatter drawing from r. A nil r is seeded from the clock.
func New(r *rand.Rand, options ...Option) *Formatter {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	f := &Formatter{rand: r, now: time.Now}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Money returns a uniform amount in [min, max] with two decimals.
func (f *Formatter) Money(min, max float64) string {
	min, max = ordered(min, max)
	value := min + f.rand.Float64()*(max-min)
	return FormatNumber(value, 2)
}

// Decimal returns a uniform value in [min, max] floored to the nearest
// 10^-decimals step.
func (f *Formatter) Decimal(min, max float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	min, max = ordered(min, max)
	if min == max {
		return FormatNumber(min, decimals)
	}
	value := floorTo(min+f.rand.Float64()*(max-min), decimals)
	if value < min {
		value = min
	}
	return FormatNumber(value, decimals)
}

// Percent returns a value in [0, 100) as "NN,NN%".
func (f *Formatter) Percent() string {
	value := floorTo(f.rand.Float64()*100, 2)
	return FormatNumber(value, 2) + "%"
}

// SignedPercent returns a value in [-100, 100) with an explicit sign.
func (f *Formatter) SignedPercent() string {
	value := floorTo(f.rand.Float64()*200-100, 2)
	if value < 0 {
		return "-" + FormatNumber(-value, 2) + "%"
	}
	return "+" + FormatNumber(value, 2) + "%"
}

// Integer returns a uniform integer in [min, max] rendered as plain digits.
// The full int64 range is accepted.
func (f *Formatter) Integer(min, max int64) string {
	if max < min {
		min, max = max, min
	}
	span := uint64(max) - uint64(min)
	var offset uint64
	switch {
	case span < math.MaxInt64:
		offset = uint64(f.rand.Int63n(int64(span) + 1))
	case span == math.MaxUint64:
		offset = f.rand.Uint64()
	default:
		for offset = f.rand.Uint64(); offset > span; offset = f.rand.Uint64() {
		}
	}
	return strconv.FormatInt(int64(uint64(min)+offset), 10)
}

// Date returns a uniform day between 1950-01-01 and today as DD/MM/YYYY.
func (f *Formatter) Date() string {
	return f.dayBetween(epoch, f.today()).Format(DateLayout)
}

// Time returns a uniform HH:MM.
func (f *Formatter) Time() string {
	return fmt.Sprintf("%02d:%02d", f.rand.Intn(24), f.rand.Intn(60))
}

// DateTime joins Date and Time with a space.
func (f *Formatter) DateTime() string {
	return f.Date() + " " + f.Time()
}

// Window is an inclusive range of instants.
type Window struct {
	From time.Time
	To   time.Time
}

// DefaultWindow is [1950-01-01, now].
func (f *Formatter) DefaultWindow() Window {
	return Window{From: epoch, To: f.now()}
}

// AdultWindow is [1900-01-01, today-18y].
func (f *Formatter) AdultWindow() Window {
	return Window{From: adultEpoch, To: f.today().AddDate(-18, 0, 0)}
}

// MinorWindow is [today-17y, today].
func (f *Formatter) MinorWindow() Window {
	today := f.today()
	return Window{From: today.AddDate(-17, 0, 0), To: today}
}

// AdultDate returns a birth date of someone at least 18 years old.
func (f *Formatter) AdultDate() string {
	w := f.AdultWindow()
	return f.dayBetween(w.From, w.To).Format(DateLayout)
}

// MinorDate returns a birth date within the last 17 years.
func (f *Formatter) MinorDate() string {
	w := f.MinorWindow()
	return f.dayBetween(w.From, w.To).Format(DateLayout)
}

// DateForInput renders a uniform instant in the layout a native control of the
// given kind expects, drawn from DefaultWindow narrowed by the control's own
// min and max. Time controls default to the whole day of whichever bound is
// present.
func (f *Formatter) DateForInput(kind InputKind, min, max *time.Time) string {
	return f.DateForInputWithin(kind, f.DefaultWindow(), min, max)
}

// DateForInputWithin is DateForInput over a caller supplied window. The
// control bounds always hold: when they do not overlap the window, the value
// is drawn next to them instead, openBoundSpan wide on the open side.
func (f *Formatter) DateForInputWithin(kind InputKind, window Window, min, max *time.Time) string {
	var lo, hi time.Time
	if kind == InputTime {
		lo, hi = f.timeWindow(min, max)
	} else {
		lo, hi = clampWindow(window, min, max)
	}

	minutes := int64(hi.Sub(lo) / time.Minute)
	instant := lo
	if minutes > 0 {
		instant = lo.Add(time.Duration(f.rand.Int63n(minutes+1)) * time.Minute)
	}

	switch kind {
	case InputTime:
		return instant.Format(InputTimeLayout)
	case InputDateTime:
		return instant.Format(InputDateTimeLayout)
	default:
		return instant.Format(InputDateLayout)
	}
}

func (f *Formatter) timeWindow(min, max *time.Time) (time.Time, time.Time) {
	ref := f.now()
	if min != nil {
		ref = *min
	} else if max != nil {
		ref = *max
	}
	lo := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	hi := lo.Add(24*time.Hour - time.Minute)
	if min != nil {
		lo = *min
	}
	if max != nil {
		hi = *max
	}
	if hi.Before(lo) {
		lo, hi = hi, lo
	}
	return lo, hi
}

func clampWindow(window Window, min, max *time.Time) (time.Time, time.Time) {
	lo, hi := window.From, window.To
	if hi.Before(lo) {
		lo, hi = hi, lo
	}
	if min != nil && min.After(lo) {
		lo = *min
	}
	if max != nil && max.Before(hi) {
		hi = *max
	}
	if !hi.Before(lo) {
		return lo, hi
	}

	switch {
	case min != nil && max != nil:
		lo, hi = *min, *max
		if hi.Before(lo) {
			lo, hi = hi, lo
		}
	case min != nil:
		lo = *min
		hi = lo.AddDate(openBoundSpan, 0, 0)
	case max != nil:
		hi = *max
		lo = hi.AddDate(-openBoundSpan, 0, 0)
	}
	return lo, hi
}

func (f *Formatter) today() time.Time {
	now := f.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (f *Formatter) dayBetween(start, end time.Time) time.Time {
	if end.Before(start) {
		start, end = end, start
	}
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, f.rand.Intn(days+1))
}

func ordered(a, b float64) (float64, float64) {
	if b < a {
		return b, a
	}
	return a, b
}
