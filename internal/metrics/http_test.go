package metrics

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"/archive", "/archive"},
		{"/entries/550e8400-e29b-41d4-a716-446655440000", "/entries/{id}"},
		{"/entries/not-a-uuid", "/entries/not-a-uuid"},
		{"/static/css/main.css", "/static"},
		{"/health", "/health"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
