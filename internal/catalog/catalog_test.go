package catalog

import (
	"strings"
	"testing"
	"time"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		day          time.Weekday
		wantContains string
	}{
		{time.Sunday, "Lahadi"},
		{time.Monday, "Litinin"},
		{time.Tuesday, "Talata"},
		{time.Wednesday, "Laraba"},
		{time.Thursday, "Alhamis"},
		{time.Friday, "Jumma"},
		{time.Saturday, "Asabar"},
	}

	for _, tt := range tests {
		t.Run(tt.day.String(), func(t *testing.T) {
			got := Lookup(tt.day)
			if !strings.Contains(got, tt.wantContains) {
				t.Errorf("Lookup(%v) = %q, missing %q", tt.day, got, tt.wantContains)
			}
			if got == Fallback {
				t.Errorf("Lookup(%v) returned the fallback text", tt.day)
			}
		})
	}
}

func TestLookupFallback(t *testing.T) {
	for _, day := range []time.Weekday{time.Weekday(7), time.Weekday(-1), time.Weekday(42)} {
		if got := Lookup(day); got != Fallback {
			t.Errorf("Lookup(%d) = %q, want fallback %q", day, got, Fallback)
		}
	}
}
