package util

import "testing"

func TestPluralName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"account", "accounts"},
		{"patientfile", "patientfiles"},
		{"c_study", "c_studies"},
		{"c_box", "c_boxes"},
		{"c_class", "c_classes"},
		{"c_survey", "c_surveys"},
		{"c_Lab Result", "c_lab-results"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PluralName(tt.in); got != tt.want {
			t.Errorf("PluralName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("c_My Study"); got != "c_my-study" {
		t.Errorf("NormalizeName = %q", got)
	}
}

func TestNanoIDLength(t *testing.T) {
	if got := NanoID(); len(got) != length {
		t.Errorf("NanoID length = %d, want %d", len(got), length)
	}
	if a, b := NanoID(), NanoID(); a == b {
		t.Error("consecutive NanoIDs collided")
	}
}
