// Package smpptime converts between SMPP's 16-character wire time format
// and Go's time.Time / time.Duration. A Value is either
// absent (empty wire string), an absolute instant with a fixed quarter-hour
// UTC offset, or a relative duration decomposed by the SMPP spec's lossy
// 365-day-year / 30-day-month scheme.
package smpptime

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidFormat is returned when the wire string is not 0 or 16 bytes,
// or its 16th byte is not 'R', '+' or '-'.
var ErrInvalidFormat = errors.New("smpptime: invalid time format")

// ErrValidityOutOfRange is returned when a relative duration exceeds 63
// weeks, the largest value the wire format can represent.
var ErrValidityOutOfRange = errors.New("smpptime: validity period exceeds 63 weeks")

// MaxValidity is the largest relative duration the wire format supports.
const MaxValidity = 63 * 7 * 24 * time.Hour

// Kind discriminates a Value's representation.
type Kind int

// Value kinds.
const (
	// KindNone is the empty/absent time (empty C-octet string).
	KindNone Kind = iota
	// KindAbsolute is a datetime with a fixed quarter-hour UTC offset.
	KindAbsolute
	// KindRelative is a duration, lossily decomposed into 365-day years
	// and 30-day months on the wire.
	KindRelative
)

// Value is the schedule/validity time attached to a message: absent,
// absolute or relative.
type Value struct {
	Kind Kind
	At   time.Time     // meaningful when Kind == KindAbsolute
	Dur  time.Duration // meaningful when Kind == KindRelative
}

// None is the absent time value.
func None() Value { return Value{Kind: KindNone} }

// Absolute builds an absolute Value. t's Location determines the quarter-
// hour offset emitted on Format; pass a time in a FixedZone offset or UTC.
func Absolute(t time.Time) Value { return Value{Kind: KindAbsolute, At: t} }

// Relative builds a relative Value from a duration.
func Relative(d time.Duration) Value { return Value{Kind: KindRelative, Dur: d} }

// IsZero reports whether v is the absent value.
func (v Value) IsZero() bool { return v.Kind == KindNone }

// Format renders v as the 16-character wire string, or "" for KindNone.
func Format(v Value) (string, error) {
	switch v.Kind {
	case KindNone:
		return "", nil
	case KindRelative:
		return formatRelative(v.Dur)
	case KindAbsolute:
		return formatAbsolute(v.At), nil
	default:
		return "", fmt.Errorf("%w: unknown kind %d", ErrInvalidFormat, v.Kind)
	}
}

func formatAbsolute(t time.Time) string {
	_, offsetSeconds := t.Zone()
	sign := byte('+')
	if offsetSeconds < 0 {
		sign = '-'
		offsetSeconds = -offsetSeconds
	}
	quarterHours := offsetSeconds / 900
	tenths := t.Nanosecond() / 100000000
	return fmt.Sprintf("%s%d%02d%c", t.Format("060102150405"), tenths, quarterHours, sign)
}

// formatRelative decomposes d into the wire's 365-day-year / 30-day-month
// scheme. The decomposition is lossy and does not track calendar months or
// leap years; it is purely d expressed in those fixed-length units.
func formatRelative(d time.Duration) (string, error) {
	if d < 0 {
		return "", fmt.Errorf("%w: negative duration", ErrInvalidFormat)
	}
	if d > MaxValidity {
		return "", ErrValidityOutOfRange
	}
	totalSeconds := int64(d / time.Second)

	const (
		secPerYear  = 365 * 24 * 60 * 60
		secPerMonth = 30 * 24 * 60 * 60
		secPerDay   = 24 * 60 * 60
		secPerHour  = 60 * 60
		secPerMin   = 60
	)

	years := totalSeconds / secPerYear
	totalSeconds %= secPerYear
	months := totalSeconds / secPerMonth
	totalSeconds %= secPerMonth
	days := totalSeconds / secPerDay
	totalSeconds %= secPerDay
	hours := totalSeconds / secPerHour
	totalSeconds %= secPerHour
	mins := totalSeconds / secPerMin
	secs := totalSeconds % secPerMin

	return fmt.Sprintf("%02d%02d%02d%02d%02d%02d000R", years, months, days, hours, mins, secs), nil
}

// Parse reads the wire string back into a Value. An empty input yields
// KindNone.
func Parse(in []byte) (Value, error) {
	switch len(in) {
	case 0:
		return None(), nil
	case 16:
		switch in[15] {
		case 'R':
			return parseRelative(in)
		case '+', '-':
			return parseAbsolute(in)
		default:
			return Value{}, fmt.Errorf("%w: %q", ErrInvalidFormat, in)
		}
	default:
		return Value{}, fmt.Errorf("%w: length %d", ErrInvalidFormat, len(in))
	}
}

func twoDigits(b []byte) (int, error) {
	if len(b) != 2 || b[0] < '0' || b[0] > '9' || b[1] < '0' || b[1] > '9' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, b)
	}
	return int(b[0]-'0')*10 + int(b[1]-'0'), nil
}

func parseRelative(in []byte) (Value, error) {
	y, err := twoDigits(in[0:2])
	if err != nil {
		return Value{}, err
	}
	mo, err := twoDigits(in[2:4])
	if err != nil {
		return Value{}, err
	}
	d, err := twoDigits(in[4:6])
	if err != nil {
		return Value{}, err
	}
	h, err := twoDigits(in[6:8])
	if err != nil {
		return Value{}, err
	}
	mi, err := twoDigits(in[8:10])
	if err != nil {
		return Value{}, err
	}
	s, err := twoDigits(in[10:12])
	if err != nil {
		return Value{}, err
	}
	dur := time.Duration(y)*365*24*time.Hour +
		time.Duration(mo)*30*24*time.Hour +
		time.Duration(d)*24*time.Hour +
		time.Duration(h)*time.Hour +
		time.Duration(mi)*time.Minute +
		time.Duration(s)*time.Second
	if dur > MaxValidity {
		return Value{}, ErrValidityOutOfRange
	}
	return Relative(dur), nil
}

func parseAbsolute(in []byte) (Value, error) {
	nn, err := twoDigits(in[13:15])
	if err != nil {
		return Value{}, err
	}
	offset := nn * 900
	if in[15] == '-' {
		offset = -offset
	}
	var loc *time.Location
	if offset == 0 {
		loc = time.UTC
	} else {
		loc = time.FixedZone("smpptime", offset)
	}
	t, err := time.ParseInLocation("060102150405", string(in[:12]), loc)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	tenth := in[12]
	if tenth < '0' || tenth > '9' {
		return Value{}, fmt.Errorf("%w: bad tenths digit %q", ErrInvalidFormat, tenth)
	}
	t = t.Add(time.Duration(tenth-'0') * 100 * time.Millisecond)
	return Absolute(t), nil
}
