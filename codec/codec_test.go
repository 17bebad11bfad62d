package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *image.NRGBA {
	img := imaging.New(40, 20, color.White)
	img.SetNRGBA(5, 5, color.NRGBA{R: 0xff, A: 0xff})
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{".png", PNG},
		{"JPG", JPEG},
		{"jpeg", JPEG},
		{".TIF", TIFF},
		{"tiff", TIFF},
		{"bmp", BMP},
		{"gif", GIF},
		{".pdf", PDF},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := FormatFromPath("out.svg")
	assert.Error(t, err)
	_, err = FormatFromPath("noext")
	assert.Error(t, err)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.png"))
	var de *ImageDecodeError
	require.True(t, errors.As(err, &de))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "nope.png")
}

func TestOpenCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\ntruncated"), 0644))

	_, err := Open(path)
	var de *ImageDecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, path, de.Path)
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, sample()))

	src, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "png", src.Format)
	assert.Equal(t, 72.0, src.DPI)
	assert.False(t, src.HasDPI)
	assert.Equal(t, image.Rect(0, 0, 40, 20), src.Image.Bounds())
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	img := sample()

	for _, name := range []string{"out.png", "out.jpg", "out.tiff", "out.bmp", "out.gif"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, img, EncodeOptions{}))

			src, err := Open(path)
			require.NoError(t, err)
			assert.Equal(t, img.Bounds(), src.Image.Bounds())
		})
	}

	t.Run("png is lossless", func(t *testing.T) {
		src, err := Open(filepath.Join(dir, "out.png"))
		require.NoError(t, err)
		r, g, b, _ := src.Image.At(5, 5).RGBA()
		assert.Equal(t, []uint32{0xffff, 0, 0}, []uint32{r, g, b})
	})
}

func TestSavePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, Save(path, sample(), EncodeOptions{DPI: 300}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestSaveFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jpg")

	err := Save(path, sample(), EncodeOptions{Quality: 500})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
