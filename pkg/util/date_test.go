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

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"2024-03-01":           "2024-03-01",
		"2024-03-01T23:10:00Z": "2024-03-01",
	}
	for in, want := range cases {
		got, err := NormalizeDate(in)
		if err != nil {
			t.Fatalf("normalize %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("normalize %q: got %q want %q", in, got, want)
		}
	}
	if _, err := NormalizeDate("yesterday"); err == nil {
		t.Fatalf("expected error for free text")
	}
}

func TestQuarterLabel(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), "Q1 24"},
		{time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), "Q2 24"},
		{time.Date(2009, 12, 31, 0, 0, 0, 0, time.UTC), "Q4 09"},
	}
	for _, c := range cases {
		if got := QuarterLabel(c.in); got != c.want {
			t.Fatalf("quarter of %v: got %q want %q", c.in, got, c.want)
		}
	}
}
