package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gardar/metsmine/pkg/alto"
	"github.com/gardar/metsmine/pkg/gdocai"
	"github.com/gardar/metsmine/pkg/hocr"
	"github.com/gardar/metsmine/pkg/mets"
	"github.com/gardar/metsmine/pkg/page"
)

const metsSuffix = "_mets.xml"

// issue is one loaded issue directory: its document and its pages in page
// code order.
type issue struct {
	dir   string
	doc   *mets.Document
	pages []page.Page
}

// loadIssue reads the METS file and the page files of an issue directory.
// Page names are kept relative to dir so crops can find their images.
func loadIssue(dir, format string, log *slog.Logger) (*issue, error) {
	metsPath, err := findMETS(dir)
	if err != nil {
		return nil, err
	}

	pages, err := loadPages(dir, metsPath, format, log)
	if err != nil {
		return nil, err
	}
	page.Sort(pages)

	codes := make([]string, 0, len(pages))
	for _, p := range pages {
		codes = append(codes, p.Code)
	}

	f, err := os.Open(metsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open METS file: %w", err)
	}
	defer f.Close()

	code := strings.TrimSuffix(filepath.Base(metsPath), metsSuffix)
	doc, err := mets.NewDocument(code, metsPath, f, codes)
	if err != nil {
		return nil, err
	}
	return &issue{dir: dir, doc: doc, pages: pages}, nil
}

// findMETS returns the single *_mets.xml file directly inside dir.
func findMETS(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+metsSuffix))
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s file in %s", metsSuffix, dir)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%d %s files in %s", len(matches), metsSuffix, dir)
	}
}

// pageExtensions lists the page file extensions of each format.
var pageExtensions = map[string][]string{
	FormatALTO:  {".xml"},
	FormatHOCR:  {".hocr", ".html", ".htm"},
	FormatDocAI: {".json"},
}

func loadPages(dir, metsPath, format string, log *slog.Logger) ([]page.Page, error) {
	exts, ok := pageExtensions[format]
	if !ok {
		return nil, fmt.Errorf("unknown page format %q", format)
	}

	var pages []page.Page
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == metsPath || !hasExt(path, exts) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read page %s: %w", rel, err)
		}
		got, err := decodePages(format, rel, data)
		if errors.Is(err, alto.ErrNotALTO) {
			log.Debug("skipping non-ALTO file", "file", rel)
			return nil
		}
		if err != nil {
			return err
		}
		pages = append(pages, got...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func decodePages(format, name string, data []byte) ([]page.Page, error) {
	switch format {
	case FormatALTO:
		p, err := alto.Parse(bytes.NewReader(data), name)
		if err != nil {
			return nil, err
		}
		return []page.Page{p}, nil
	case FormatHOCR:
		doc, err := hocr.ParseHOCR(data)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", name, err)
		}
		return hocr.ToPages(doc, name), nil
	case FormatDocAI:
		doc, err := gdocai.LoadDocument(data)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", name, err)
		}
		return gdocai.Pages(doc, name), nil
	}
	return nil, fmt.Errorf("unknown page format %q", format)
}

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
