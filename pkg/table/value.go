package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the scalar type held by a Value. A column whose cells are
// all missing has kind KindMissing and is comparable with any kind.
type Kind int

const (
	KindMissing Kind = iota
	KindNumber
	KindText
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "missing"
	}
}

// Value is a single immutable cell: a number, text, bool, time, or the
// missing marker. The zero Value is missing.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	t    time.Time
}

// Number returns a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int returns a numeric Value from an int.
func Int(n int) Value { return Number(float64(n)) }

// Text returns a text Value.
func Text(s string) Value { return Value{kind: KindText, str: s} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Time returns a time Value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Missing returns the missing marker.
func Missing() Value { return Value{} }

// Kind returns the scalar kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v is the missing marker.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Num returns the numeric payload. Valid only for KindNumber.
func (v Value) Num() float64 { return v.num }

// Str returns the text payload. Valid only for KindText.
func (v Value) Str() string { return v.str }

// Bool returns the boolean payload. Valid only for KindBool.
func (v Value) Bool() bool { return v.b }

// Time returns the time payload. Valid only for KindTime.
func (v Value) Time() time.Time { return v.t }

// String renders v for display. Missing renders as "NA".
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindText:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.Format(time.RFC3339)
	default:
		return "NA"
	}
}

// Equal reports three-valued equality. If either side is missing the result
// is Unknown; a missing marker is not equal even to another missing marker.
// Comparing different non-missing kinds is ErrTypeMismatch.
func (v Value) Equal(o Value) (Tri, error) {
	if v.IsMissing() || o.IsMissing() {
		return Unknown, nil
	}
	if v.kind != o.kind {
		return Unknown, fmt.Errorf("comparing %s with %s: %w", v.kind, o.kind, ErrTypeMismatch)
	}
	switch v.kind {
	case KindNumber:
		return fromBool(v.num == o.num), nil
	case KindText:
		return fromBool(v.str == o.str), nil
	case KindBool:
		return fromBool(v.b == o.b), nil
	default:
		return fromBool(v.t.Equal(o.t)), nil
	}
}

// Less reports three-valued ordering. If either side is missing the result
// is Unknown. Booleans order false before true; text orders bytewise.
func (v Value) Less(o Value) (Tri, error) {
	if v.IsMissing() || o.IsMissing() {
		return Unknown, nil
	}
	c, err := v.compareNonMissing(o)
	if err != nil {
		return Unknown, err
	}
	return fromBool(c < 0), nil
}

// Compare is a total ordering used for sorting and group ordering: missing
// sorts after every non-missing value and equal to another missing marker.
// Values in the same column always share a kind, so callers sorting within
// a column never see ErrTypeMismatch.
func (v Value) Compare(o Value) (int, error) {
	switch {
	case v.IsMissing() && o.IsMissing():
		return 0, nil
	case v.IsMissing():
		return 1, nil
	case o.IsMissing():
		return -1, nil
	}
	return v.compareNonMissing(o)
}

func (v Value) compareNonMissing(o Value) (int, error) {
	if v.kind != o.kind {
		return 0, fmt.Errorf("comparing %s with %s: %w", v.kind, o.kind, ErrTypeMismatch)
	}
	switch v.kind {
	case KindNumber:
		switch {
		case v.num < o.num:
			return -1, nil
		case v.num > o.num:
			return 1, nil
		}
		return 0, nil
	case KindText:
		return strings.Compare(v.str, o.str), nil
	case KindBool:
		switch {
		case !v.b && o.b:
			return -1, nil
		case v.b && !o.b:
			return 1, nil
		}
		return 0, nil
	default:
		switch {
		case v.t.Before(o.t):
			return -1, nil
		case v.t.After(o.t):
			return 1, nil
		}
		return 0, nil
	}
}

// encode returns a canonical string form used for grouping and distinct
// counting. Unlike Equal, missing markers encode identically so they
// partition into one group. Text is length-prefixed so the encoding stays
// self-delimiting when multi-column keys are concatenated, whatever bytes
// the payload holds.
func (v Value) encode() string {
	switch v.kind {
	case KindNumber:
		return "n:" + strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindText:
		return "s:" + strconv.Itoa(len(v.str)) + ":" + v.str
	case KindBool:
		return "b:" + strconv.FormatBool(v.b)
	case KindTime:
		return "t:" + strconv.FormatInt(v.t.UnixNano(), 10)
	default:
		return "?"
	}
}

func fromBool(b bool) Tri {
	if b {
		return True
	}
	return False
}
