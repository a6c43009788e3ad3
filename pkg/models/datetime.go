package models

import "fmt"

// DateTime is a compact calendar timestamp parsed from the 311 export's
// "MM/DD/YYYY HH:MM:SS AM" date columns.
//
// Fields use the smallest primitive that fits so that four of these embedded
// in every record stay cheap across tens of millions of rows. The zero value
// is the invalid sentinel: empty or unparseable input produces it, and it
// sorts before every valid timestamp.
type DateTime struct {
	Year   uint16 // e.g. 2015
	Month  uint8  // 1-12
	Day    uint8  // 1-31
	Hour   uint8  // 0-23, converted from the 12-hour source format
	Minute uint8  // 0-59
	Second uint8  // 0-59
	Valid  bool
}

// minDateTimeLen is the shortest string that could possibly carry a full
// date ("M/D/YYYY ..." style inputs are shorter than the canonical form).
const minDateTimeLen = 11

// ParseDateTime parses "MM/DD/YYYY HH:MM:SS AM|PM". Malformed or empty
// input returns the invalid zero value, never an error: a bad date column
// must not abort a multi-gigabyte load.
func ParseDateTime(s string) DateTime {
	var dt DateTime
	if len(s) < minDateTimeLen {
		return dt
	}

	var parts [6]uint
	seps := [5]byte{'/', '/', ' ', ':', ':'}
	i := 0
	for k := 0; k < 6; k++ {
		v, next, ok := scanUint(s, i)
		if !ok {
			return dt
		}
		parts[k] = v
		i = next
		if k < 5 {
			if i >= len(s) || s[i] != seps[k] {
				return dt
			}
			i++
		}
	}

	// Meridiem token: two characters, AM or PM in any case.
	for i < len(s) && s[i] == ' ' {
		i++
	}
	if i+2 > len(s) {
		return dt
	}
	pm := s[i] == 'P' || s[i] == 'p'
	if !pm && s[i] != 'A' && s[i] != 'a' {
		return dt
	}
	if c := s[i+1]; c != 'M' && c != 'm' {
		return dt
	}

	dt.Month = uint8(parts[0])
	dt.Day = uint8(parts[1])
	dt.Year = uint16(parts[2])
	dt.Hour = to24Hour(uint8(parts[3]), pm)
	dt.Minute = uint8(parts[4])
	dt.Second = uint8(parts[5])
	dt.Valid = true
	return dt
}

// to24Hour converts a 12-hour clock value: 12 AM -> 0, 12 PM -> 12,
// other PM hours +12.
func to24Hour(h uint8, pm bool) uint8 {
	if !pm {
		if h == 12 {
			return 0
		}
		return h
	}
	if h == 12 {
		return 12
	}
	return h + 12
}

// scanUint reads the base-10 digits starting at s[i]. ok is false when no
// digit is present at that position.
func scanUint(s string, i int) (uint, int, bool) {
	start := i
	var v uint
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		v = v*10 + uint(s[i]-'0')
		i++
	}
	if i == start {
		return 0, i, false
	}
	return v, i, true
}

// Key packs the fields into one unsigned integer so a range predicate is a
// pair of integer compares. Layout, most significant first:
// year(16) month(8) day(8) hour(8) minute(8) second(8).
// Every invalid DateTime is the zero value, so its key is 0.
func (dt DateTime) Key() uint64 {
	return uint64(dt.Year)<<40 |
		uint64(dt.Month)<<32 |
		uint64(dt.Day)<<24 |
		uint64(dt.Hour)<<16 |
		uint64(dt.Minute)<<8 |
		uint64(dt.Second)
}

// Compare returns -1, 0, or +1. Invalid sorts before all valid values;
// two invalid values compare equal (both are the zero value, key 0).
func (dt DateTime) Compare(o DateTime) int {
	if dt.Valid != o.Valid {
		if !dt.Valid {
			return -1
		}
		return 1
	}
	a, b := dt.Key(), o.Key()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether dt sorts strictly before o.
func (dt DateTime) Before(o DateTime) bool { return dt.Compare(o) < 0 }

// After reports whether dt sorts strictly after o.
func (dt DateTime) After(o DateTime) bool { return dt.Compare(o) > 0 }

// Equal reports whether dt and o are the same instant (or both invalid).
func (dt DateTime) Equal(o DateTime) bool { return dt.Compare(o) == 0 }

// Between reports whether dt falls in [start, end], inclusive on both ends.
// Invalid values are never in any range.
func (dt DateTime) Between(start, end DateTime) bool {
	return dt.Valid && dt.Compare(start) >= 0 && dt.Compare(end) <= 0
}

// String renders "YYYY-MM-DD HH:MM:SS", or "(invalid)" for the sentinel.
func (dt DateTime) String() string {
	if !dt.Valid {
		return "(invalid)"
	}
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second)
}

// Date renders the calendar-date prefix "YYYY-MM-DD". Empty for the
// invalid sentinel.
func (dt DateTime) Date() string {
	if !dt.Valid {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", dt.Year, dt.Month, dt.Day)
}
