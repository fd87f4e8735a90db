package util

import (
    "strconv"
    "time"
)

// DayLayout is the wire format of catalog and analysis dates.
const DayLayout = "2006-01-02"

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
        return t, true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0), true
    }
    return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
    if t, ok := ParseTime(s); ok {
        return t
    }
    return def
}

// ParseDay parses a YYYY-MM-DD date. Returns (t, true) if it parsed.
func ParseDay(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    t, err := time.Parse(DayLayout, s)
    if err != nil {
        return time.Time{}, false
    }
    return t, true
}

// ValidDayRange reports whether start and end are both YYYY-MM-DD dates
// with start not after end. The range is inclusive on both sides.
func ValidDayRange(start, end string) bool {
    s, ok := ParseDay(start)
    if !ok {
        return false
    }
    e, ok := ParseDay(end)
    if !ok {
        return false
    }
    return !s.After(e)
}

// CurrentYearSuffix returns the two trailing digits of the current year,
// used to keep only current-year derivative contracts.
func CurrentYearSuffix(now time.Time) string {
    y := now.Year() % 100
    if y < 10 {
        return "0" + strconv.Itoa(y)
    }
    return strconv.Itoa(y)
}
