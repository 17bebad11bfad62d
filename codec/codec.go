// Package codec decodes input images and encodes framed results.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"imgframe/configs"
	"imgframe/files_manager"
	"imgframe/pdf_writer"
	"imgframe/utils"
)

type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	PDF  Format = "pdf"
)

// ImageDecodeError reports an input that is missing or cannot be decoded.
type ImageDecodeError struct {
	Path string
	Err  error
}

func (e *ImageDecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot decode image: %v", e.Err)
	}
	return fmt.Sprintf("cannot decode image %s: %v", e.Path, e.Err)
}

func (e *ImageDecodeError) Unwrap() error { return e.Err }

// Source is a decoded image together with what was learned about its file.
type Source struct {
	Image  image.Image
	Format string // as sniffed from the content, "" when unknown
	DPI    float64
	HasDPI bool // false when DPI is the default
}

// Open reads and decodes the image at path. EXIF orientation is applied.
func Open(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("file not found: %w", os.ErrNotExist)
		}
		return nil, &ImageDecodeError{Path: path, Err: err}
	}
	src, err := Decode(data)
	if err != nil {
		var de *ImageDecodeError
		if errors.As(err, &de) {
			de.Path = path
		}
		return nil, err
	}
	return src, nil
}

// Decode decodes an in-memory image.
func Decode(data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, &ImageDecodeError{Err: errors.New("empty input")}
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &ImageDecodeError{Err: err}
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, &ImageDecodeError{Err: fmt.Errorf("image has zero size %dx%d", b.Dx(), b.Dy())}
	}
	dpi, _, ok := utils.ReadDPI(data)
	return &Source{Image: img, Format: utils.SniffFormat(data), DPI: dpi, HasDPI: ok}, nil
}

// FormatFromPath picks the output format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// ParseFormat accepts a format name or extension, with or without the dot.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "pdf":
		return PDF, nil
	}
	return "", fmt.Errorf("unsupported output format %q", name)
}

type EncodeOptions struct {
	Quality int     // JPEG quality, 1-100
	DPI     float64 // PDF page resolution
}

// Encode writes img to w in format.
func Encode(w io.Writer, img image.Image, format Format, opts EncodeOptions) error {
	var f imaging.Format
	switch format {
	case PDF:
		return pdf_writer.WriteImagePDF(w, img, opts.DPI)
	case PNG:
		f = imaging.PNG
	case JPEG:
		f = imaging.JPEG
	case GIF:
		f = imaging.GIF
	case BMP:
		f = imaging.BMP
	case TIFF:
		f = imaging.TIFF
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	quality := opts.Quality
	if quality == 0 {
		quality = configs.DefaultJPEGQuality
	}
	if quality < 1 || quality > 100 {
		return fmt.Errorf("JPEG quality must be between 1 and 100, got %d", quality)
	}
	return imaging.Encode(w, img, f, imaging.JPEGQuality(quality))
}

// Save encodes img into path, choosing the format from the extension.
// The file only appears once encoding has fully succeeded.
func Save(path string, img image.Image, opts EncodeOptions) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	return files_manager.WriteAtomic(path, func(w io.Writer) error {
		return Encode(w, img, format, opts)
	})
}
