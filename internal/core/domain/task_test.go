package domain

import "testing"

func TestParseFilter(t *testing.T) {
	cases := []struct {
		in   string
		want Filter
	}{
		{"all", FilterAll},
		{"active", FilterActive},
		{"completed", FilterCompleted},
		{"deleted", FilterDeleted},
		{"", FilterAll},
		{"bogus", FilterAll},
		{"ALL", FilterAll},
	}
	for _, c := range cases {
		if got := ParseFilter(c.in); got != c.want {
			t.Errorf("ParseFilter(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPriority_IsValid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.IsValid() {
			t.Errorf("expected %q to be valid", p)
		}
	}
	for _, p := range []Priority{"", "urgent", "Medium"} {
		if p.IsValid() {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}
