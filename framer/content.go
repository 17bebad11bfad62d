package framer

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// DefaultPadding is the margin, in pixels, kept around detected content.
const DefaultPadding = 5

// ContentOptions controls CropToContent.
type ContentOptions struct {
	Padding    int            // pixels added on every side of the content box
	Background BackgroundFunc // nil means Threshold(DefaultThreshold)
}

// ContentResult describes the outcome of CropToContent.
type ContentResult struct {
	Image   image.Image
	Content image.Rectangle // tight content box, before padding
	Padded  image.Rectangle // content box after padding and clamping
	Offset  image.Point     // where the crop was pasted on the square canvas
	Warning error           // ErrNoContent when the image was passed through
}

// CropToContent crops img to the box enclosing all non-background pixels,
// grows the box by opts.Padding and centres the crop on a white square
// canvas. Rectangles in the result are relative to the image origin.
//
// A blank image is returned unchanged with Warning set to ErrNoContent.
func CropToContent(img image.Image, opts ContentOptions) (*ContentResult, error) {
	if img == nil {
		return nil, errors.New("crop to content: nil image")
	}
	if opts.Padding < 0 {
		return nil, fmt.Errorf("crop to content: padding must be non-negative, got %d", opts.Padding)
	}
	bg := opts.Background
	if bg == nil {
		bg = Threshold(DefaultThreshold)
	}

	src := toNRGBA(img)
	content, ok := contentBounds(src, bg)
	if !ok {
		return &ContentResult{Image: img, Warning: ErrNoContent}, nil
	}

	padded := Pad(content, opts.Padding, src.Bounds())
	cropped := imaging.Crop(flatten(src), padded)
	square, offset := CenterOnSquare(cropped, color.White)

	return &ContentResult{
		Image:   square,
		Content: content,
		Padded:  padded,
		Offset:  offset,
	}, nil
}

// ContentBounds returns the smallest rectangle, relative to the image
// origin, that contains every pixel bg does not classify as background.
// ok is false when there is no such pixel.
func ContentBounds(img image.Image, bg BackgroundFunc) (r image.Rectangle, ok bool) {
	return contentBounds(toNRGBA(img), bg)
}

func contentBounds(src *image.NRGBA, bg BackgroundFunc) (image.Rectangle, bool) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	rows := make([]bool, h)
	cols := make([]bool, w)

	for y := 0; y < h; y++ {
		off := y * src.Stride
		for x := 0; x < w; x++ {
			i := off + x*4
			px := color.NRGBA{R: src.Pix[i], G: src.Pix[i+1], B: src.Pix[i+2], A: src.Pix[i+3]}
			if !bg(px) {
				rows[y] = true
				cols[x] = true
			}
		}
	}

	top, bottom, okRows := span(rows)
	left, right, okCols := span(cols)
	if !okRows || !okCols {
		return image.Rectangle{}, false
	}
	return image.Rect(left, top, right, bottom), true
}

// span returns the half-open range [first, last+1) of true entries.
func span(flags []bool) (lo, hi int, ok bool) {
	lo = -1
	for i, f := range flags {
		if f {
			if lo < 0 {
				lo = i
			}
			hi = i + 1
		}
	}
	return lo, hi, lo >= 0
}

// Pad grows r by padding pixels on every side and clamps it to bounds.
func Pad(r image.Rectangle, padding int, bounds image.Rectangle) image.Rectangle {
	return image.Rect(
		max(bounds.Min.X, r.Min.X-padding),
		max(bounds.Min.Y, r.Min.Y-padding),
		min(bounds.Max.X, r.Max.X+padding),
		min(bounds.Max.Y, r.Max.Y+padding),
	)
}

// CenterOnSquare pastes img onto a new square canvas of side
// max(width, height) filled with fill. The offset uses floor division, so an
// odd difference leaves the extra pixel on the right or bottom.
func CenterOnSquare(img image.Image, fill color.Color) (*image.NRGBA, image.Point) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	size := max(w, h)
	offset := image.Pt((size-w)/2, (size-h)/2)
	canvas := imaging.New(size, size, fill)
	return imaging.Paste(canvas, img, offset), offset
}

// toNRGBA returns img as an NRGBA image anchored at the origin, copying only
// when necessary.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

// flatten drops the alpha channel, keeping the stored colour values.
func flatten(src *image.NRGBA) *image.NRGBA {
	dst := imaging.Clone(src)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
