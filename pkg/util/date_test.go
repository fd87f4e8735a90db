package util

import (
    "strconv"
    "testing"
    "time"
)

func TestParseTimeRFC3339(t *testing.T) {
    s := "2024-10-10T10:10:10Z"
    got, ok := ParseTime(s)
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.UTC().Format(time.RFC3339) != s {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseTimeUnix(t *testing.T) {
    ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
    got, ok := ParseTime(strconv.FormatInt(ts, 10))
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Unix() != ts {
        t.Fatalf("unexpected unix %v", got.Unix())
    }
}

func TestParseTimeDefault(t *testing.T) {
    def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
    got := ParseTimeDefault("", def)
    if !got.Equal(def) {
        t.Fatalf("expected default")
    }
}

func TestParseDay(t *testing.T) {
    got, ok := ParseDay("2024-03-01")
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Format(DayLayout) != "2024-03-01" {
        t.Fatalf("unexpected day %v", got)
    }
    if _, ok := ParseDay("20240301"); ok {
        t.Fatalf("expected compact form to fail")
    }
}

func TestValidDayRange(t *testing.T) {
    if !ValidDayRange("2024-01-01", "2024-01-01") {
        t.Fatalf("inclusive range should allow equal dates")
    }
    if ValidDayRange("2024-02-01", "2024-01-01") {
        t.Fatalf("start after end should fail")
    }
    if ValidDayRange("", "2024-01-01") {
        t.Fatalf("missing start should fail")
    }
}

func TestCurrentYearSuffix(t *testing.T) {
    if got := CurrentYearSuffix(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)); got != "25" {
        t.Fatalf("got %s", got)
    }
    if got := CurrentYearSuffix(time.Date(2009, 6, 1, 0, 0, 0, 0, time.UTC)); got != "09" {
        t.Fatalf("got %s", got)
    }
}
