package transport

import "testing"

func TestRoutePath(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		want   string
	}{
		{"context", Target{Context: "accounts"}, "accounts"},
		{"object", Target{Context: "c_studies", ObjectID: "abc"}, "c_studies/abc"},
		{"list property", Target{Context: "c_studies", ObjectID: "abc", ListProperty: "c_tasks"}, "c_studies/abc/c_tasks"},
		{"raw path wins", Target{Context: "accounts", Path: "/schemas/"}, "schemas"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.target.RoutePath(); got != tt.want {
				t.Errorf("RoutePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrefixPath(t *testing.T) {
	if got := (Target{Context: "accounts"}).PrefixPath(); got != "" {
		t.Errorf("plain context PrefixPath() = %q", got)
	}
	got := (Target{Context: "c_studies", ObjectID: "abc", ListProperty: "c_tasks"}).PrefixPath()
	if got != "c_tasks" {
		t.Errorf("list property PrefixPath() = %q", got)
	}
	if got := (Target{Path: "schemas", ListProperty: "c_tasks"}).PrefixPath(); got != "" {
		t.Errorf("raw path PrefixPath() = %q", got)
	}
}
