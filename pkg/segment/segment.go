// Package segment crops article regions out of scanned page images and
// assembles the crops into a PDF contact sheet.
package segment

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gardar/metsmine/pkg/mets"
)

// ErrEmptyRegion is returned when a region does not overlap its page image.
var ErrEmptyRegion = errors.New("region is empty after clipping to the image")

// Request describes one region to crop.
type Request struct {
	Coords      string // "left,top,right,bottom" in image pixels
	PageName    string // page file name inside the archive, e.g. "alto/0001.xml"
	ArchivePath string // path of the archive; page images sit next to it
	Year        int
	Keyword     string
}

// ImagePath returns the page image for req: the page name with its
// extension replaced by cfg.ImageExt, in the directory of the archive.
func ImagePath(req Request, cfg Config) string {
	cfg = cfg.withDefaults()
	stem := strings.TrimSuffix(req.PageName, filepath.Ext(req.PageName))
	return filepath.Join(filepath.Dir(req.ArchivePath), stem+cfg.ImageExt)
}

// OutputName returns the file name a crop is written under:
// crop_<image stem>_<year>_<keyword>_<coords>.jpg
func OutputName(req Request) string {
	base := filepath.Base(req.PageName)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("crop_%s_%s_%s_%s.jpg", stem, strconv.Itoa(req.Year), safe(req.Keyword), safe(req.Coords))
}

func safe(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, s)
}

// Crop cuts the requested region out of its page image and writes it as a
// JPEG into cfg.OutputDir. It returns the path of the written file. The box
// is clipped to the image bounds.
func Crop(req Request, cfg Config) (string, error) {
	cfg = cfg.withDefaults()

	box, err := mets.Geometry{Coords: req.Coords}.Box()
	if err != nil {
		return "", fmt.Errorf("invalid region: %w", err)
	}

	src, err := decodeImage(ImagePath(req, cfg))
	if err != nil {
		return "", err
	}

	box = box.Canon().Intersect(src.Bounds())
	if box.Empty() {
		return "", fmt.Errorf("%w: %s", ErrEmptyRegion, req.Coords)
	}

	dst := image.NewRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	draw.Draw(dst, dst.Bounds(), src, box.Min, draw.Src)

	out := filepath.Join(cfg.OutputDir, OutputName(req))
	if err := writeJPEG(out, dst, cfg.Quality); err != nil {
		return "", err
	}
	return out, nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode page image %s: %w", path, err)
	}
	return img, nil
}

func writeJPEG(path string, img image.Image, quality int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create crop: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close crop: %w", cerr)
		}
	}()

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("failed to encode crop: %w", err)
	}
	return nil
}
