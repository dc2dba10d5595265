package core

import (
	"fmt"
	"math"
	"time"
)

// Preset names accepted by ExpirationFromPreset.
const (
	PresetHour      = "1 hour"
	PresetSixHours  = "6 hours"
	PresetDay       = "1 day"
	PresetThreeDays = "3 days"
	PresetWeek      = "1 week"
	PresetMonth     = "1 month"
	PresetNever     = "Never expire"

	// DefaultPreset is used for unknown preset names and empty custom dates.
	DefaultPreset = PresetDay
)

const (
	// neverMonths is how far ahead the "never" sentinel is written.
	neverMonths = 1200

	// neverCutoff separates a real deadline from the "never" sentinel.
	// Anything strictly further away than this is read back as Never.
	neverCutoff = 99 * 365 * 24 * time.Hour

	soonWindow     = 24 * time.Hour
	relativeWindow = 48 * time.Hour

	// AbsoluteLayout renders deadlines that are two days or more away.
	AbsoluteLayout = "Mon, Jan 2, 3:04 PM"

	// NeverText is the description of a note that does not expire.
	NeverText = "Never"
)

type expirationKind uint8

const (
	kindUnset expirationKind = iota
	kindAt
	kindNever
)

// Expiration is either a concrete deadline or Never.
// The zero value is unset: Store.Create replaces it with DefaultPreset.
type Expiration struct {
	at   time.Time
	kind expirationKind
}

// At returns an expiration at t.
func At(t time.Time) Expiration {
	return Expiration{at: t, kind: kindAt}
}

// Never returns an expiration that never passes.
func Never() Expiration {
	return Expiration{kind: kindNever}
}

// IsZero reports whether the expiration was left unset.
func (e Expiration) IsZero() bool {
	return e.kind == kindUnset
}

// IsNever reports whether the expiration has no deadline.
func (e Expiration) IsNever() bool {
	return e.kind == kindNever
}

// Time returns the deadline and true, or the zero time and false when there
// is no deadline (Never or unset).
func (e Expiration) Time() (time.Time, bool) {
	if e.kind != kindAt {
		return time.Time{}, false
	}
	return e.at, true
}

// Passed reports whether the deadline is strictly before now.
// A deadline equal to now has not passed yet.
func (e Expiration) Passed(now time.Time) bool {
	if e.kind != kindAt {
		return false
	}
	return e.at.Before(now)
}

// Equal reports whether two expirations denote the same deadline.
func (e Expiration) Equal(o Expiration) bool {
	if e.kind != o.kind {
		return false
	}
	return e.kind != kindAt || e.at.Equal(o.at)
}

func (e Expiration) String() string {
	switch e.kind {
	case kindNever:
		return "never"
	case kindUnset:
		return "unset"
	}
	return e.at.Format(time.RFC3339)
}

// orDefault resolves an unset expiration to DefaultPreset from now.
func (e Expiration) orDefault(now time.Time) Expiration {
	if e.kind == kindUnset {
		return ExpirationFromPreset(DefaultPreset, now)
	}
	return e
}

// truncate drops precision the persisted millisecond layout cannot hold.
func (e Expiration) truncate() Expiration {
	if e.kind == kindAt {
		e.at = e.at.Truncate(time.Millisecond)
	}
	return e
}

// deadline returns the timestamp written to storage.
func (e Expiration) deadline(ref time.Time) time.Time {
	e = e.orDefault(ref)
	if e.kind == kindNever {
		return ref.AddDate(0, neverMonths, 0)
	}
	return e.at
}

// ParseTimestamp classifies a millisecond timestamp relative to ref.
// Timestamps more than 99 years after ref are treated as Never.
func ParseTimestamp(ms int64, ref time.Time) Expiration {
	t := time.UnixMilli(ms)
	if t.Sub(ref) > neverCutoff {
		return Never()
	}
	return At(t)
}

// Presets returns the preset names in display order.
func Presets() []string {
	return []string{
		PresetHour,
		PresetSixHours,
		PresetDay,
		PresetThreeDays,
		PresetWeek,
		PresetMonth,
		PresetNever,
	}
}

// ExpirationFromPreset maps a preset name to an expiration relative to now.
// Unknown names fall back to DefaultPreset.
func ExpirationFromPreset(preset string, now time.Time) Expiration {
	switch preset {
	case PresetHour:
		return At(now.Add(time.Hour))
	case PresetSixHours:
		return At(now.Add(6 * time.Hour))
	case PresetDay:
		return At(now.AddDate(0, 0, 1))
	case PresetThreeDays:
		return At(now.AddDate(0, 0, 3))
	case PresetWeek:
		return At(now.AddDate(0, 0, 7))
	case PresetMonth:
		return At(now.AddDate(0, 1, 0))
	case PresetNever:
		return Never()
	default:
		return ExpirationFromPreset(DefaultPreset, now)
	}
}

// ExpirationFromDateTime builds an expiration from a "2006-01-02" date and a
// "15:04" clock time in loc. If either part is empty the default preset is used.
func ExpirationFromDateTime(date, clock string, now time.Time, loc *time.Location) (Expiration, error) {
	if date == "" || clock == "" {
		return ExpirationFromPreset(DefaultPreset, now), nil
	}
	if loc == nil {
		loc = now.Location()
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return Expiration{}, fmt.Errorf("%w: %q %q", ErrInvalidDateTime, date, clock)
	}
	return At(t), nil
}

// Description is the display classification of an expiration.
type Description struct {
	Text         string
	ExpiringSoon bool
	NeverExpires bool
}

// Describe classifies an expiration against now. An unset expiration is
// described as DefaultPreset from now.
// Deadlines under two days away are rendered as a distance, later ones as
// a date in now's location.
func Describe(e Expiration, now time.Time) Description {
	at, ok := e.orDefault(now).Time()
	if !ok {
		return Description{Text: NeverText, NeverExpires: true}
	}
	gap := at.Sub(now)
	if gap > neverCutoff {
		return Description{Text: NeverText, NeverExpires: true}
	}

	d := Description{ExpiringSoon: gap < soonWindow}
	if gap < relativeWindow {
		d.Text = Distance(gap)
	} else {
		d.Text = at.In(now.Location()).Format(AbsoluteLayout)
	}
	return d
}

// Distance renders a duration in words, without a suffix, using the same
// buckets as date-fns formatDistance ("less than a minute", "about 5 hours").
// Negative durations are measured by their magnitude.
func Distance(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	seconds := d.Seconds()
	minutes := int(math.Round(d.Minutes()))

	switch {
	case seconds < 30:
		return "less than a minute"
	case minutes < 2:
		return "1 minute"
	case minutes < 45:
		return fmt.Sprintf("%d minutes", minutes)
	case minutes < 90:
		return "about 1 hour"
	case minutes < 1440:
		return fmt.Sprintf("about %d hours", int(math.Round(float64(minutes)/60)))
	case minutes < 2520:
		return "1 day"
	case minutes < 43200:
		return fmt.Sprintf("%d days", int(math.Round(float64(minutes)/1440)))
	case minutes < 86400:
		if months := int(math.Round(float64(minutes) / 43200)); months > 1 {
			return fmt.Sprintf("about %d months", months)
		}
		return "about 1 month"
	}

	months := int(math.Round(float64(minutes) / 43200))
	if months < 12 {
		return fmt.Sprintf("%d months", months)
	}
	years := months / 12
	if years == 1 {
		return "about 1 year"
	}
	return fmt.Sprintf("about %d years", years)
}
