package resource

import "testing"

func TestToKebab(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Item", "item"},
		{"OrderItem", "order-item"},
		{"PaintFormula", "paint-formula"},
		{"HTTPServer", "http-server"},
		{"userID", "user-id"},
		{"already-kebab", "already-kebab"},
		{"With Space", "with-space"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := toKebab(tt.in); got != tt.want {
				t.Errorf("toKebab(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
