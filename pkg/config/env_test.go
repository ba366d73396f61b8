package config

import (
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("SCRIBE_TEST_STR", "value")
	if got := GetEnv("SCRIBE_TEST_STR", "fallback"); got != "value" {
		t.Errorf("expected value, got %q", got)
	}
	if got := GetEnv("SCRIBE_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SCRIBE_TEST_INT", "42")
	if got := GetEnvInt("SCRIBE_TEST_INT", 7); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	t.Setenv("SCRIBE_TEST_INT", "not-a-number")
	if got := GetEnvInt("SCRIBE_TEST_INT", 7); got != 7 {
		t.Errorf("expected default 7, got %d", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("SCRIBE_TEST_BOOL", "true")
	if !GetEnvBool("SCRIBE_TEST_BOOL", false) {
		t.Error("expected true")
	}
	t.Setenv("SCRIBE_TEST_BOOL", "junk")
	if GetEnvBool("SCRIBE_TEST_BOOL", false) {
		t.Error("expected default false on unparsable value")
	}
}

func TestGetEnvDuration(t *testing.T) {
	cases := []struct {
		value string
		want  time.Duration
	}{
		{"6h", 6 * time.Hour},
		{"12s", 12 * time.Second},
		{"21600000", 6 * time.Hour}, // bare integer = milliseconds
		{"garbage", time.Minute},
		{"", time.Minute},
	}
	for _, tc := range cases {
		t.Setenv("SCRIBE_TEST_DUR", tc.value)
		if got := GetEnvDuration("SCRIBE_TEST_DUR", time.Minute); got != tc.want {
			t.Errorf("value %q: expected %v, got %v", tc.value, tc.want, got)
		}
	}
}
