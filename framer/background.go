package framer

import (
	"image"
	"image/color"
)

const (
	// DefaultThreshold is the channel value at or above which a pixel counts as white.
	DefaultThreshold = 240
	// DefaultAlphaCutoff is the alpha below which a pixel counts as transparent.
	DefaultAlphaCutoff = 16
)

// BackgroundFunc reports whether a pixel belongs to the background.
// Pixels are passed non-premultiplied, with their original alpha.
type BackgroundFunc func(c color.NRGBA) bool

// BackgroundRule picks a BackgroundFunc for a particular image. Rules that
// do not depend on the image content can be built with Fixed.
type BackgroundRule func(img image.Image) BackgroundFunc

// Fixed returns a rule that always yields bg.
func Fixed(bg BackgroundFunc) BackgroundRule {
	return func(image.Image) BackgroundFunc { return bg }
}

// Threshold treats a pixel as background when none of its colour channels
// is below t. Alpha is ignored.
func Threshold(t uint8) BackgroundFunc {
	return func(c color.NRGBA) bool {
		return c.R >= t && c.G >= t && c.B >= t
	}
}

// Alpha treats a pixel as background when its alpha is below cutoff.
// Use it on images whose background was already removed.
func Alpha(cutoff uint8) BackgroundFunc {
	return func(c color.NRGBA) bool {
		return c.A < cutoff
	}
}

// Otsu derives a grey level from the image histogram and treats every pixel
// brighter than that level as background.
func Otsu(img image.Image) BackgroundFunc {
	src := toNRGBA(img)
	var hist [256]int
	total := 0
	b := src.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+b.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			hist[luma(row[i], row[i+1], row[i+2])]++
			total++
		}
	}
	level := otsuLevel(&hist, total)
	return func(c color.NRGBA) bool {
		return luma(c.R, c.G, c.B) > level
	}
}

// luma uses the fixed-point BT.601 weights.
func luma(r, g, b uint8) uint8 {
	return uint8((uint32(r)*77 + uint32(g)*150 + uint32(b)*29) >> 8)
}

// otsuLevel returns the grey level that maximises the between-class
// variance of the histogram. Pixels at or below the level form the dark class.
func otsuLevel(hist *[256]int, total int) uint8 {
	sum := 0
	for i, c := range hist {
		sum += i * c
	}
	sumB, wB := 0, 0
	var maxVar float64
	var level uint8
	for i, c := range hist {
		wB += c
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += i * c
		mB := float64(sumB) / float64(wB)
		mF := float64(sum-sumB) / float64(wF)
		between := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if between > maxVar {
			maxVar = between
			level = uint8(i)
		}
	}
	return level
}
