package crop

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/disintegration/imaging"

	rgerrors "github.com/matzehuels/radioguide/pkg/errors"
)

func TestParseAspect(t *testing.T) {
	tests := []struct {
		input   string
		want    Aspect
		wantErr bool
	}{
		{"3x5", Portrait3x5, false},
		{"5x3", Landscape5x3, false},
		{"16x9", Aspect{16, 9}, false},
		{"4:3", Aspect{4, 3}, false},
		{" 2X3 ", Aspect{2, 3}, false},
		{"0x5", Aspect{}, true},
		{"-3x5", Aspect{}, true},
		{"abc", Aspect{}, true},
		{"3x", Aspect{}, true},
		{"", Aspect{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAspect(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAspect(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !rgerrors.Is(err, rgerrors.ErrCodeInvalidAspect) {
				t.Errorf("ParseAspect(%q) error code = %v", tt.input, rgerrors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("ParseAspect(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAspectSize(t *testing.T) {
	tests := []struct {
		aspect Aspect
		width  int
		want   image.Point
	}{
		{Portrait3x5, 1500, image.Pt(1500, 2500)},
		{Landscape5x3, 1500, image.Pt(1500, 900)},
		{Aspect{16, 9}, 1920, image.Pt(1920, 1080)},
		{Aspect{1, 1}, 300, image.Pt(300, 300)},
	}

	for _, tt := range tests {
		t.Run(tt.aspect.String(), func(t *testing.T) {
			if got := tt.aspect.Size(tt.width); got != tt.want {
				t.Errorf("Size(%d) = %v, want %v", tt.width, got, tt.want)
			}
		})
	}
}

func TestNewPlan(t *testing.T) {
	tests := []struct {
		name    string
		src     image.Rectangle
		aspect  Aspect
		crop    image.Rectangle
		sides   bool
		trimmed int
	}{
		{
			name:    "landscape source to 5x3 trims top and bottom",
			src:     image.Rect(0, 0, 3000, 2000),
			aspect:  Landscape5x3,
			crop:    image.Rect(0, 100, 3000, 1900),
			trimmed: 200,
		},
		{
			name:    "landscape source to 3x5 trims sides",
			src:     image.Rect(0, 0, 3000, 2000),
			aspect:  Portrait3x5,
			crop:    image.Rect(900, 0, 2100, 2000),
			sides:   true,
			trimmed: 1800,
		},
		{
			name:    "exact ratio keeps everything",
			src:     image.Rect(0, 0, 500, 300),
			aspect:  Landscape5x3,
			crop:    image.Rect(0, 0, 500, 300),
			trimmed: 0,
		},
		{
			name:    "offset bounds",
			src:     image.Rect(10, 10, 410, 410),
			aspect:  Aspect{2, 1},
			crop:    image.Rect(10, 110, 410, 310),
			trimmed: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlan(tt.src, tt.aspect, 1500)
			if p.Crop != tt.crop {
				t.Errorf("Crop = %v, want %v", p.Crop, tt.crop)
			}
			if p.Sides != tt.sides {
				t.Errorf("Sides = %v, want %v", p.Sides, tt.sides)
			}
			if p.Trimmed != tt.trimmed {
				t.Errorf("Trimmed = %d, want %d", p.Trimmed, tt.trimmed)
			}
			if p.Size != tt.aspect.Size(1500) {
				t.Errorf("Size = %v, want %v", p.Size, tt.aspect.Size(1500))
			}
		})
	}
}

func TestFitRatioRoundTrip(t *testing.T) {
	sources := []image.Point{{640, 480}, {480, 640}, {1000, 1000}, {333, 777}}
	aspects := []Aspect{Portrait3x5, Landscape5x3, {16, 9}}

	for _, src := range sources {
		img := imaging.New(src.X, src.Y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		for _, a := range aspects {
			out, _ := Fit(img, a, 300)
			b := out.Bounds()
			if b.Dx() != 300 {
				t.Errorf("%v -> %v: width = %d, want 300", src, a, b.Dx())
			}
			wantH := float64(b.Dx()) / a.Ratio()
			if math.Abs(float64(b.Dy())-wantH) > 1 {
				t.Errorf("%v -> %v: height = %d, want %.1f ±1", src, a, b.Dy(), wantH)
			}
		}
	}
}

func TestFitKeepsCenter(t *testing.T) {
	// Left third red, middle blue, right third red; cropping to 1x1 keeps blue.
	img := imaging.New(300, 100, color.NRGBA{R: 255, A: 255})
	for x := 100; x < 200; x++ {
		for y := 0; y < 100; y++ {
			img.Set(x, y, color.NRGBA{B: 255, A: 255})
		}
	}

	out, plan := Fit(img, Aspect{1, 1}, 50)
	if plan.Crop != image.Rect(100, 0, 200, 100) {
		t.Fatalf("Crop = %v, want (100,0)-(200,100)", plan.Crop)
	}
	c := out.NRGBAAt(25, 25)
	if c.B < 200 || c.R > 50 {
		t.Errorf("center pixel = %v, want blue", c)
	}
}
