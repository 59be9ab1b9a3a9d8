package cli

import (
	"testing"
	"time"

	"github.com/jordanpayne/reveille/internal/models"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		input   string
		want    []time.Weekday
		wantErr bool
	}{
		{"", nil, false},
		{"mon,wed", []time.Weekday{time.Monday, time.Wednesday}, false},
		{"1,3", []time.Weekday{time.Monday, time.Wednesday}, false},
		{"Sunday, saturday", []time.Weekday{time.Sunday, time.Saturday}, false},
		{"funday", nil, true},
		{"7", nil, true},
	}

	for _, tt := range tests {
		got, err := parseWeekdays(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseWeekdays(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseWeekdays(%q): %v", tt.input, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parseWeekdays(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseWeekdays(%q) = %v, want %v", tt.input, got, tt.want)
				break
			}
		}
	}
}

func TestFormatRepeatDays(t *testing.T) {
	a := models.Alarm{RepeatDays: "[]"}
	if got := formatRepeatDays(a); got != "every day" {
		t.Errorf("empty set: got %q", got)
	}

	a.RepeatDays = `["1","5"]`
	if got := formatRepeatDays(a); got != "Mon,Fri" {
		t.Errorf("got %q, want Mon,Fri", got)
	}
}
