package util

import "testing"

func TestNormalizeBaseURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://cdn.example.com", "https://cdn.example.com/"},
		{"https://cdn.example.com/", "https://cdn.example.com/"},
		{"https://cdn.example.com//", "https://cdn.example.com/"},
		{"  https://cdn.example.com ", "https://cdn.example.com/"},
	}

	for _, tc := range cases {
		if got := NormalizeBaseURL(tc.in); got != tc.want {
			t.Fatalf("NormalizeBaseURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDeriveTableName(t *testing.T) {
	if got := DeriveTableName("", "projects"); got != "projects" {
		t.Fatalf("expected bare table name, got %q", got)
	}
	if got := DeriveTableName("mechtron", "projects"); got != "mechtron_projects" {
		t.Fatalf("expected prefixed table name, got %q", got)
	}
}
