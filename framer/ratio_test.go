package framer

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRatio(t *testing.T) {
	tests := []struct {
		in      string
		want    Ratio
		wantErr bool
	}{
		{"2:1", Ratio{2, 1}, false},
		{"16:9", Ratio{16, 9}, false},
		{" 4:3 ", Ratio{4, 3}, false},
		{"2-1", Ratio{}, true},
		{"2:1:1", Ratio{}, true},
		{"0:1", Ratio{}, true},
		{"2:-1", Ratio{}, true},
		{"a:b", Ratio{}, true},
		{"+2:1", Ratio{}, true},
		{"2: 1", Ratio{}, true},
		{"", Ratio{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRatio(tt.in)
			if tt.wantErr {
				var perr *ParseError
				require.True(t, errors.As(err, &perr), "want *ParseError, got %v", err)
				assert.Equal(t, "W:H", perr.Expected)
				assert.Contains(t, err.Error(), "W:H")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSize(t *testing.T) {
	got, err := ParseSize("1280x640")
	require.NoError(t, err)
	assert.Equal(t, Size{1280, 640}, got)
	assert.Equal(t, Ratio{1280, 640}, got.Ratio())

	got, err = ParseSize("1500X500")
	require.NoError(t, err)
	assert.Equal(t, Size{1500, 500}, got)

	for _, in := range []string{"1280*640", "1280x", "x640", "0x10", "1280:640", "+1280x+640", "1280x+640"} {
		_, err := ParseSize(in)
		var perr *ParseError
		require.True(t, errors.As(err, &perr), "input %q", in)
		assert.Contains(t, err.Error(), "WxH")
	}
}

func TestRatioRectScenarios(t *testing.T) {
	bounds := image.Rect(0, 0, 2000, 1000)

	assert.Equal(t, image.Rect(0, 0, 2000, 1000), RatioRect(bounds, Ratio{2, 1}))
	assert.Equal(t, image.Rect(500, 0, 1500, 1000), RatioRect(bounds, Ratio{1, 1}))

	// taller target on a wide source keeps the full width
	assert.Equal(t, image.Rect(0, 0, 2000, 1000), RatioRect(bounds, Ratio{4, 2}))
	tall := image.Rect(0, 0, 1000, 2000)
	assert.Equal(t, image.Rect(0, 500, 1000, 1500), RatioRect(tall, Ratio{1, 1}))

	assert.Equal(t, image.Rect(0, 125, 1000, 875), RatioRect(image.Rect(0, 0, 1000, 1000), Ratio{4, 3}))
	// 999/3 = 333 rows, (1000-333)/2 floors to 333
	assert.Equal(t, image.Rect(0, 333, 999, 666), RatioRect(image.Rect(0, 0, 999, 1000), Ratio{3, 1}))
}

func TestRatioRectProperties(t *testing.T) {
	ratios := []Ratio{{1, 1}, {2, 1}, {16, 9}, {9, 16}, {3, 1}, {4, 5}, {21, 9}}
	sizes := []image.Point{{2000, 1000}, {1000, 2000}, {640, 480}, {333, 777}, {1023, 1024}, {1500, 500}, {97, 89}}

	for _, sz := range sizes {
		for _, r := range ratios {
			bounds := image.Rect(0, 0, sz.X, sz.Y)
			rect := RatioRect(bounds, r)

			require.True(t, rect.In(bounds), "%v in %v for %s", rect, bounds, r)
			fullWidth := rect.Dx() == sz.X
			fullHeight := rect.Dy() == sz.Y
			require.True(t, fullWidth || fullHeight, "%v spans neither dimension of %v", rect, sz)

			if fullHeight {
				want := float64(rect.Dy()) * r.Aspect()
				assert.LessOrEqual(t, math.Abs(float64(rect.Dx())-want), 1.0, "%v %s", sz, r)
			} else {
				want := float64(rect.Dx()) / r.Aspect()
				assert.LessOrEqual(t, math.Abs(float64(rect.Dy())-want), 1.0, "%v %s", sz, r)
			}

			// centred: margins differ by at most one pixel
			assert.LessOrEqual(t, abs(rect.Min.X-(sz.X-rect.Max.X)), 1)
			assert.LessOrEqual(t, abs(rect.Min.Y-(sz.Y-rect.Max.Y)), 1)
		}
	}
}

func TestCropToRatio(t *testing.T) {
	img := imaging.New(400, 200, color.White)
	fillRect(img, image.Rect(100, 0, 101, 200), black)

	out, rect, err := CropToRatio(img, Ratio{1, 1})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(100, 0, 300, 200), rect)
	assert.Equal(t, image.Rect(0, 0, 200, 200), out.Bounds())

	r, g, b, _ := out.At(0, 100).RGBA()
	assert.Zero(t, r|g|b, "left column of the crop comes from source x=100")
}

func TestCropToRatioOffsetBounds(t *testing.T) {
	img := imaging.New(300, 300, color.White)
	sub := img.SubImage(image.Rect(100, 100, 300, 200))

	out, rect, err := CropToRatio(sub, Ratio{1, 1})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(50, 0, 150, 100), rect)
	assert.Equal(t, 100, out.Bounds().Dx())
	assert.Equal(t, 100, out.Bounds().Dy())
}

func TestCropToRatioInvalid(t *testing.T) {
	img := imaging.New(10, 10, color.White)
	_, _, err := CropToRatio(img, Ratio{0, 1})
	assert.Error(t, err)
	_, _, err = CropToRatio(nil, Ratio{1, 1})
	assert.Error(t, err)
}
