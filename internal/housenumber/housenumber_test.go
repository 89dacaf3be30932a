package housenumber

import (
	"testing"
)

// TestNormalize tests house-number normalization
func TestNormalize(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{" 7 ", 7, true},
		{"12b", 12, true},
		{"12B", 12, true},
		{"12 B", 12, true},
		{"", 0, false},
		{"   ", 0, false},
		{"0", 0, false},
		{"-3", 0, false},
		{"B12", 0, false},
		{"12B4", 0, false},
		{"12/3", 0, false},
		{"no. 5", 0, false},
		{"99999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Normalize(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Normalize(%q): expected ok=%v, got %v", tt.raw, tt.wantOK, ok)
			}
			if ok && got != tt.want {
				t.Errorf("Normalize(%q): expected %d, got %d", tt.raw, tt.want, got)
			}
		})
	}
}
