package framer

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// Ratio is a target aspect ratio W:H.
type Ratio struct {
	W, H int
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.W, r.H)
}

// Aspect returns W/H.
func (r Ratio) Aspect() float64 {
	return float64(r.W) / float64(r.H)
}

func (r Ratio) valid() bool {
	return r.W > 0 && r.H > 0
}

// Size is an exact output resolution.
type Size struct {
	Width, Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Ratio returns the aspect ratio of s.
func (s Size) Ratio() Ratio {
	return Ratio{W: s.Width, H: s.Height}
}

// ParseRatio parses "W:H", e.g. "2:1" or "16:9".
func ParseRatio(s string) (Ratio, error) {
	w, h, ok := parsePair(s, ":")
	if !ok {
		return Ratio{}, &ParseError{Kind: "ratio", Input: s, Expected: "W:H", Example: "2:1 or 16:9"}
	}
	return Ratio{W: w, H: h}, nil
}

// ParseSize parses "WxH", e.g. "1280x640". The separator is case-insensitive.
func ParseSize(s string) (Size, error) {
	w, h, ok := parsePair(strings.ToLower(s), "x")
	if !ok {
		return Size{}, &ParseError{Kind: "size", Input: s, Expected: "WxH", Example: "1280x640"}
	}
	return Size{Width: w, Height: h}, nil
}

func parsePair(s, sep string) (a, b int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), sep)
	if len(parts) != 2 {
		return 0, 0, false
	}
	if !digits(parts[0]) || !digits(parts[1]) {
		return 0, 0, false
	}
	a, errA := strconv.Atoi(parts[0])
	b, errB := strconv.Atoi(parts[1])
	if errA != nil || errB != nil || a <= 0 || b <= 0 {
		return 0, 0, false
	}
	return a, b, true
}

// digits reports whether s is a non-empty run of ASCII digits. Atoi alone
// would also take a sign.
func digits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// RatioRect returns the largest rectangle of ratio r centred in bounds.
// When the source is wider than the target the crop keeps the full height,
// otherwise it keeps the full width. Crop sizes are rounded to the nearest
// pixel and offsets use floor division.
func RatioRect(bounds image.Rectangle, r Ratio) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	target := r.Aspect()
	source := float64(w) / float64(h)

	var rect image.Rectangle
	if source > target {
		cw := clamp(int(math.Round(float64(h)*target)), 1, w)
		x0 := (w - cw) / 2
		rect = image.Rect(x0, 0, x0+cw, h)
	} else {
		ch := clamp(int(math.Round(float64(w)/target)), 1, h)
		y0 := (h - ch) / 2
		rect = image.Rect(0, y0, w, y0+ch)
	}
	return rect.Add(bounds.Min)
}

// CropToRatio crops img to the centred rectangle of ratio r. The returned
// rectangle is relative to the image origin.
func CropToRatio(img image.Image, r Ratio) (image.Image, image.Rectangle, error) {
	if img == nil {
		return nil, image.Rectangle{}, errors.New("crop to ratio: nil image")
	}
	if !r.valid() {
		return nil, image.Rectangle{}, fmt.Errorf("crop to ratio: ratio %s must have positive terms", r)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, image.Rectangle{}, errors.New("crop to ratio: empty image")
	}
	rect := RatioRect(b, r)
	return imaging.Crop(img, rect), rect.Sub(b.Min), nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
