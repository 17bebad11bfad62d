package utils

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"

	"imgframe/configs"
)

// DefaultDPI is assumed when an image carries no resolution metadata.
const DefaultDPI = configs.DefaultDPI

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// ReadDPI returns the horizontal and vertical resolution stored in the image
// metadata: EXIF X/YResolution first, then the PNG pHYs chunk. ok is false
// and DefaultDPI is returned when neither is present.
func ReadDPI(data []byte) (x, y float64, ok bool) {
	if x, y, ok = dpiFromEXIF(data); ok {
		return x, y, true
	}
	if x, y, ok = dpiFromPNG(data); ok {
		return x, y, true
	}
	return DefaultDPI, DefaultDPI, false
}

func dpiFromEXIF(data []byte) (x, y float64, ok bool) {
	// go-exif panics on some malformed IFDs
	defer func() {
		if r := recover(); r != nil {
			x, y, ok = 0, 0, false
		}
	}()

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return 0, 0, false
	}

	im := exifcommon.NewIfdMapping()
	if err := exifcommon.LoadStandardIfds(im); err != nil {
		return 0, 0, false
	}
	ti := exif.NewTagIndex()

	_, index, err := exif.Collect(im, ti, rawExif)
	if err != nil || index.RootIfd == nil {
		return 0, 0, false
	}

	dpiX, okX := rationalTag(index.RootIfd, "XResolution")
	dpiY, okY := rationalTag(index.RootIfd, "YResolution")
	if !okX {
		return 0, 0, false
	}
	if !okY {
		dpiY = dpiX
	}

	// ResolutionUnit 3 is centimetres
	if tags, err := index.RootIfd.FindTagWithName("ResolutionUnit"); err == nil && len(tags) > 0 {
		if val, err := tags[0].Value(); err == nil && shortValue(val) == 3 {
			dpiX *= 2.54
			dpiY *= 2.54
		}
	}
	return dpiX, dpiY, true
}

func rationalTag(ifd *exif.Ifd, name string) (float64, bool) {
	tags, err := ifd.FindTagWithName(name)
	if err != nil || len(tags) == 0 {
		return 0, false
	}
	val, err := tags[0].Value()
	if err != nil {
		return 0, false
	}
	rats, ok := val.([]exifcommon.Rational)
	if !ok || len(rats) == 0 || rats[0].Denominator == 0 {
		return 0, false
	}
	return float64(rats[0].Numerator) / float64(rats[0].Denominator), true
}

func shortValue(val interface{}) uint16 {
	switch v := val.(type) {
	case uint16:
		return v
	case []uint16:
		if len(v) > 0 {
			return v[0]
		}
	}
	return 0
}

func dpiFromPNG(data []byte) (float64, float64, bool) {
	if !bytes.HasPrefix(data, pngSignature) {
		return 0, 0, false
	}
	buf := bytes.NewReader(data[len(pngSignature):])

	for {
		var length uint32
		if err := binary.Read(buf, binary.BigEndian, &length); err != nil {
			return 0, 0, false
		}
		var chunkType [4]byte
		if _, err := io.ReadFull(buf, chunkType[:]); err != nil {
			return 0, 0, false
		}

		switch string(chunkType[:]) {
		case "pHYs":
			var phys struct {
				PerUnitX, PerUnitY uint32
				Unit               byte
			}
			if err := binary.Read(buf, binary.BigEndian, &phys); err != nil {
				return 0, 0, false
			}
			// unit 0 only gives the pixel aspect ratio
			if phys.Unit != 1 {
				return 0, 0, false
			}
			return float64(phys.PerUnitX) * 0.0254, float64(phys.PerUnitY) * 0.0254, true
		case "IDAT", "IEND":
			// pHYs must precede the image data
			return 0, 0, false
		}

		// skip chunk data + CRC
		if _, err := buf.Seek(int64(length)+4, io.SeekCurrent); err != nil {
			return 0, 0, false
		}
	}
}
