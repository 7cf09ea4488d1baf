package gridcast

import (
	"image/color"
	"testing"
)

// TestHex tests hex color parsing in all supported formats.
func TestHex(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want Color
	}{
		{"rgb short", "#f0a", Color{R: 255, G: 0, B: 170, A: 255}},
		{"rgba short", "#f0a8", Color{R: 255, G: 0, B: 170, A: 136}},
		{"rrggbb", "#ff8040", Color{R: 255, G: 128, B: 64, A: 255}},
		{"rrggbbaa", "#ff804080", Color{R: 255, G: 128, B: 64, A: 128}},
		{"no hash", "00ff00", Color{G: 255, A: 255}},
		{"invalid length", "#ff", Color{A: 255}},
		{"empty", "", Color{A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hex(tt.hex); got != tt.want {
				t.Errorf("Hex(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

// TestColorScale tests lighting multiplication with saturation.
func TestColorScale(t *testing.T) {
	c := RGBA(100, 200, 50, 77)

	got := c.Scale(0.5, 2, 0)
	want := Color{R: 50, G: 255, B: 0, A: 77}
	if got != want {
		t.Errorf("Scale = %v, want %v", got, want)
	}

	if got := White.Scale(-1, -1, -1); got != RGBA(0, 0, 0, 255) {
		t.Errorf("negative scale = %v, want black", got)
	}
}

// TestColorRoundTrip tests conversion through image/color and back.
func TestColorRoundTrip(t *testing.T) {
	c := RGBA(10, 20, 30, 255)
	if got := FromColor(c.Color()); got != c {
		t.Errorf("round trip = %v, want %v", got, c)
	}

	if got := FromColor(color.NRGBA{R: 1, G: 2, B: 3, A: 200}); got != RGBA(1, 2, 3, 200) {
		t.Errorf("FromColor = %v, want {1 2 3 200}", got)
	}
}

// TestColorOpaque tests the opacity predicate.
func TestColorOpaque(t *testing.T) {
	if !Red.Opaque() {
		t.Error("Red.Opaque() = false, want true")
	}
	if Transparent.Opaque() {
		t.Error("Transparent.Opaque() = true, want false")
	}
	if RGBA(0, 0, 0, 254).Opaque() {
		t.Error("A=254 Opaque() = true, want false")
	}
}
