package models

import "testing"

func TestParseStatus(t *testing.T) {
	valid := []string{"new", "in_progress", "message", "completed", "cancelled"}
	for _, s := range valid {
		got, err := ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q): %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q", s, got)
		}
	}

	for _, s := range []string{"", "finished", "NEW", "in-progress"} {
		if _, err := ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q) must fail", s)
		}
	}
}
