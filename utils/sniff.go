package utils

import (
	"bytes"
)

// SniffFormat names the image format of data from its leading bytes:
// "png", "jpeg", "gif", "tiff", "bmp", "webp", "svg" or "" when unknown.
func SniffFormat(data []byte) string {
	switch {
	case bytes.HasPrefix(data, pngSignature):
		return "png"
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return "jpeg"
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return "gif"
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return "tiff"
	case bytes.HasPrefix(data, []byte("BM")):
		return "bmp"
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return "webp"
	case looksLikeSVG(data):
		return "svg"
	}
	return ""
}

// IsRaster reports whether format names a raster format SniffFormat knows.
func IsRaster(format string) bool {
	switch format {
	case "png", "jpeg", "gif", "tiff", "bmp", "webp":
		return true
	}
	return false
}

func looksLikeSVG(data []byte) bool {
	head := data[:min(len(data), 512)]
	head = bytes.TrimPrefix(head, []byte("\xEF\xBB\xBF"))
	head = bytes.ToLower(bytes.TrimSpace(head))
	return bytes.HasPrefix(head, []byte("<?xml")) || bytes.Contains(head, []byte("<svg"))
}
