package pdf_writer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/phpdave11/gofpdf"

	"imgframe/configs"
)

const mmPerInch = 25.4

// PageSize returns the page size in millimetres for a w×h pixel image
// printed at dpi.
func PageSize(w, h int, dpi float64) gofpdf.SizeType {
	return gofpdf.SizeType{
		Wd: float64(w) / dpi * mmPerInch,
		Ht: float64(h) / dpi * mmPerInch,
	}
}

// WriteImagePDF writes a one-page PDF to w whose page is exactly img at dpi
// (72 when dpi is not positive). The image is embedded losslessly as PNG.
func WriteImagePDF(w io.Writer, img image.Image, dpi float64) error {
	b := img.Bounds()
	if b.Empty() {
		return errors.New("cannot write an empty image to PDF")
	}
	if dpi <= 0 {
		dpi = configs.DefaultDPI
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("error encoding page image: %w", err)
	}

	size := PageSize(b.Dx(), b.Dy(), dpi)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "mm", Size: size})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", size)

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("frame", opts, &buf)
	pdf.ImageOptions("frame", 0, 0, size.Wd, size.Ht, false, opts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("error writing PDF: %w", err)
	}
	return nil
}
