package framer

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
)

// Filter selects the resampling kernel.
type Filter int

const (
	Lanczos Filter = iota
	CatmullRom
	Linear
	Box
)

func (f Filter) String() string {
	switch f {
	case CatmullRom:
		return "catmullrom"
	case Linear:
		return "linear"
	case Box:
		return "box"
	default:
		return "lanczos"
	}
}

// ParseFilter maps a filter name to a Filter. Nearest-neighbour is refused.
func ParseFilter(name string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lanczos":
		return Lanczos, nil
	case "catmullrom", "catmull-rom", "bicubic":
		return CatmullRom, nil
	case "linear", "bilinear":
		return Linear, nil
	case "box", "area":
		return Box, nil
	case "nearest", "nearestneighbor", "nearest-neighbor":
		return 0, ErrNearestFilter
	}
	return 0, fmt.Errorf("unknown filter %q (use lanczos, catmullrom, linear or box)", name)
}

func (f Filter) resample() imaging.ResampleFilter {
	switch f {
	case CatmullRom:
		return imaging.CatmullRom
	case Linear:
		return imaging.Linear
	case Box:
		return imaging.Box
	default:
		return imaging.Lanczos
	}
}

// ResizeSpec selects the post-crop resize. Zero fields are unset.
type ResizeSpec struct {
	Width, Height int
}

// Empty reports whether no target dimension is set.
func (s ResizeSpec) Empty() bool {
	return s.Width == 0 && s.Height == 0
}

// Target computes the output size for a w×h image. With both dimensions set
// it returns them as is; with one set the other is derived from the aspect
// ratio of w×h and rounded. ok is false when nothing is set.
func (s ResizeSpec) Target(w, h int) (tw, th int, ok bool) {
	switch {
	case s.Width > 0 && s.Height > 0:
		return s.Width, s.Height, true
	case s.Width > 0:
		scale := float64(s.Width) / float64(w)
		return s.Width, max(1, int(math.Round(float64(h)*scale))), true
	case s.Height > 0:
		scale := float64(s.Height) / float64(h)
		return max(1, int(math.Round(float64(w)*scale))), s.Height, true
	}
	return w, h, false
}

// Resize resamples img according to spec. An empty spec returns img as is.
func Resize(img image.Image, spec ResizeSpec, f Filter) (image.Image, error) {
	if spec.Width < 0 || spec.Height < 0 {
		return nil, fmt.Errorf("resize: dimensions must be positive, got %dx%d", spec.Width, spec.Height)
	}
	b := img.Bounds()
	tw, th, ok := spec.Target(b.Dx(), b.Dy())
	if !ok {
		return img, nil
	}
	return imaging.Resize(img, tw, th, f.resample()), nil
}

// CheckConsistency returns a *ResizeInconsistencyError when spec sets both
// dimensions and their ratio differs from r by more than one pixel of height.
func CheckConsistency(r Ratio, spec ResizeSpec) error {
	if spec.Width <= 0 || spec.Height <= 0 || !r.valid() {
		return nil
	}
	expected := int(math.Round(float64(spec.Width) / r.Aspect()))
	if diff := expected - spec.Height; diff > 1 || diff < -1 {
		return &ResizeInconsistencyError{Ratio: r, Width: spec.Width, Height: spec.Height, ExpectedHeight: expected}
	}
	return nil
}
