package main

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#14141c", color.RGBA{R: 0x14, G: 0x14, B: 0x1c, A: 255}, false},
		{"ff8000", color.RGBA{R: 255, G: 128, A: 255}, false},
		{"#zz0000", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := parseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestParseFlagsBackground(t *testing.T) {
	s := parseFlags([]string{"-background", "#102030", "-headless"})
	if s.Background != (color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}) || !s.Headless {
		t.Errorf("Unexpected settings %+v", s)
	}
}
