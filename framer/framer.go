// Package framer implements the two image framing transforms: cropping a
// logo to its content and centring it on a square, and cropping a banner to
// an aspect ratio with an optional resample. Both are pure Image -> Image
// functions; nothing here touches the filesystem or keeps state.
package framer

import (
	"fmt"
	"image"

	"imgframe/contracts"
)

// ContentFramer adapts CropToContent to contracts.Framer.
type ContentFramer struct {
	Padding int
	Rule    BackgroundRule // nil means Fixed(Threshold(DefaultThreshold))
}

var _ contracts.Framer = ContentFramer{}

func (f ContentFramer) Frame(img image.Image) (*contracts.FrameResult, error) {
	var bg BackgroundFunc
	if f.Rule != nil {
		bg = f.Rule(img)
	}
	res, err := CropToContent(img, ContentOptions{Padding: f.Padding, Background: bg})
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if res.Warning != nil {
		return &contracts.FrameResult{
			Image:   res.Image,
			Summary: fmt.Sprintf("original %dx%d kept as is", b.Dx(), b.Dy()),
			Warning: res.Warning,
		}, nil
	}
	out := res.Image.Bounds()
	return &contracts.FrameResult{
		Image: res.Image,
		Summary: fmt.Sprintf("original %dx%d, content %dx%d, output %dx%d",
			b.Dx(), b.Dy(), res.Content.Dx(), res.Content.Dy(), out.Dx(), out.Dy()),
	}, nil
}

// BannerOptions controls FrameBanner.
type BannerOptions struct {
	Ratio  Ratio
	Resize ResizeSpec
	Filter Filter
}

// BannerResult describes the outcome of FrameBanner.
type BannerResult struct {
	Image   image.Image
	Crop    image.Rectangle // crop rectangle relative to the source origin
	Resized bool
	Warning error // *ResizeInconsistencyError when the explicit size ignores the ratio
}

// FrameBanner crops img to opts.Ratio and then applies opts.Resize.
func FrameBanner(img image.Image, opts BannerOptions) (*BannerResult, error) {
	cropped, rect, err := CropToRatio(img, opts.Ratio)
	if err != nil {
		return nil, err
	}
	out, err := Resize(cropped, opts.Resize, opts.Filter)
	if err != nil {
		return nil, err
	}
	return &BannerResult{
		Image:   out,
		Crop:    rect,
		Resized: !opts.Resize.Empty(),
		Warning: CheckConsistency(opts.Ratio, opts.Resize),
	}, nil
}

// BannerFramer adapts FrameBanner to contracts.Framer.
type BannerFramer struct {
	Options BannerOptions
}

var _ contracts.Framer = BannerFramer{}

func (f BannerFramer) Frame(img image.Image) (*contracts.FrameResult, error) {
	res, err := FrameBanner(img, f.Options)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	summary := fmt.Sprintf("input %dx%d, cropped %dx%d", b.Dx(), b.Dy(), res.Crop.Dx(), res.Crop.Dy())
	if res.Resized {
		out := res.Image.Bounds()
		summary += fmt.Sprintf(", resized %dx%d", out.Dx(), out.Dy())
	}
	return &contracts.FrameResult{Image: res.Image, Summary: summary, Warning: res.Warning}, nil
}
