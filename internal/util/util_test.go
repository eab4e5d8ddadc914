// internal/util/util_test.go
package util

import "testing"

func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "no truncation", in: "hello", max: 10, want: "hello"},
		{name: "exact length", in: "hello", max: 5, want: "hello"},
		{name: "truncated", in: "application/pdf", max: 6, want: "applic…"},
		{name: "multibyte", in: "héllo wörld", max: 4, want: "héll…"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateRunes(tt.in, tt.max); got != tt.want {
				t.Fatalf("TruncateRunes(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	t.Parallel()

	if got := FirstLine("application/pdf; charset=binary\n- application/octet-stream"); got != "application/pdf; charset=binary" {
		t.Fatalf("unexpected first line %q", got)
	}
	if got := FirstLine("single"); got != "single" {
		t.Fatalf("unexpected first line %q", got)
	}
}
