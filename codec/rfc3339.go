package codec

import "time"

// Date-literal shape detection. The hardened readers deliberately keep
// date-shaped strings as strings; callers that own date semantics can use
// these predicates before converting.

// IsDate reports whether s is a date literal: YYYY, YYYY-MM, or YYYY-MM-DD.
func IsDate(s string) bool {
	switch len(s) {
	case 4:
		return digits(s)
	case 7:
		if _, err := time.Parse("2006-01", s); err != nil {
			return false
		}
		return true
	case 10:
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return false
		}
		return true
	default:
		return false
	}
}

// IsDateTime reports whether s is a date literal or a full RFC3339 timestamp.
func IsDateTime(s string) bool {
	if IsDate(s) {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

// ParseDateTime converts a full RFC3339 timestamp; partial dates are not
// accepted here because their zone and precision semantics belong to the
// data model.
func ParseDateTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
