package utils

import (
	"testing"
	"time"
)

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"21:00", 1260, false},
		{"23:59", 1439, false},
		{"9:00", 0, true},
		{"09:5", 0, true},
		{"24:00", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseTimeToMinutes(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimeToMinutes(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeToMinutes(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestDateStrings(t *testing.T) {
	instant := time.Date(2025, 3, 1, 0, 30, 0, 0, time.UTC)

	if got := DateString(instant); got != "2025-03-01" {
		t.Errorf("DateString = %q, want 2025-03-01", got)
	}
	if got := YesterdayString(instant); got != "2025-02-28" {
		t.Errorf("YesterdayString = %q, want 2025-02-28", got)
	}
}

func TestCombineDateAndTime(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	got, err := CombineDateAndTime("2025-06-01", "09:30", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 6, 1, 9, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("CombineDateAndTime = %v, want %v", got, want)
	}

	if _, err := CombineDateAndTime("June 1", "09:30", loc); err == nil {
		t.Error("expected error for invalid date")
	}
	if _, err := CombineDateAndTime("2025-06-01", "9:30am", loc); err == nil {
		t.Error("expected error for invalid time")
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("") || !ValidateTimezone("Local") {
		t.Error("empty and Local timezones should be accepted")
	}
	if !ValidateTimezone("Europe/Berlin") {
		t.Error("Europe/Berlin should be a valid timezone")
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("Mars/Olympus should not be a valid timezone")
	}
}
