package segment

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"codeberg.org/go-pdf/fpdf"
)

const captionHeight = 24.0

// Sheet is one crop placed on the contact sheet.
type Sheet struct {
	Path    string // image file, typically written by Crop
	Caption string
}

// ContactSheet writes a PDF with one page per crop, the image at its pixel
// size in points and the caption underneath.
func ContactSheet(w io.Writer, crops []Sheet) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", 10)

	for i, c := range crops {
		data, err := os.ReadFile(c.Path)
		if err != nil {
			return fmt.Errorf("failed to read crop %d: %w", i+1, err)
		}
		cfg, imageType, err := detectImage(data)
		if err != nil {
			return fmt.Errorf("crop %s: %w", c.Path, err)
		}

		width, height := float64(cfg.Width), float64(cfg.Height)
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: width, Ht: height + captionHeight})

		name := fmt.Sprintf("crop%d", i)
		opts := fpdf.ImageOptions{ReadDpi: false, ImageType: imageType}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		pdf.ImageOptions(name, 0, 0, width, height, false, opts, 0, "")
		pdf.Text(4, height+captionHeight-8, pdf.UnicodeTranslatorFromDescriptor("")(c.Caption))

		if err := pdf.Error(); err != nil {
			return fmt.Errorf("failed to add crop %s: %w", c.Path, err)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	return nil
}

// detectImage reads the image size and the fpdf image type of data.
func detectImage(data []byte) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, "", fmt.Errorf("failed to decode image config: %w", err)
	}
	switch format {
	case "jpeg", "png", "gif":
		return cfg, strings.ToUpper(format), nil
	}
	return image.Config{}, "", fmt.Errorf("unsupported image format %q", format)
}
