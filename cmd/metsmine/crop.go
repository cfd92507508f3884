package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gardar/metsmine/pkg/segment"
)

var sheetPath string

type cropRecord struct {
	Document string `json:"document" yaml:"document"`
	Article  string `json:"article" yaml:"article"`
	Region   string `json:"region" yaml:"region"`
	Keyword  string `json:"keyword" yaml:"keyword"`
	File     string `json:"file,omitempty" yaml:"file,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

var cropCmd = &cobra.Command{
	Use:   "crop <issue-dir>...",
	Short: "Crop article regions containing the keywords out of the page images",
	Long: `Runs the article keyword query and writes every matching region as a JPEG
named crop_<page>_<year>_<keyword>_<coords>.jpg into output_dir. Page images
are looked up next to each METS file under the page file name with image_ext
as extension. With --sheet, the crops are also collected into one PDF.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		matches, err := articleMatches(cmd, args)
		if err != nil {
			return err
		}

		segCfg := cfg.Segment()
		if err := os.MkdirAll(segCfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		var (
			records []cropRecord
			sheets  []segment.Sheet
		)
		for _, m := range matches {
			rec := cropRecord{Document: m.Document, Article: m.Article, Region: m.Region, Keyword: m.Keyword}
			path, err := segment.Crop(segment.Request{
				Coords:      m.Geometry.Coords,
				PageName:    m.PageName,
				ArchivePath: m.Archive,
				Year:        m.Year,
				Keyword:     m.Keyword,
			}, segCfg)
			if err != nil {
				log.Warn("crop failed", "document", m.Document, "region", m.Region, "error", err)
				rec.Error = err.Error()
			} else {
				rec.File = path
				sheets = append(sheets, segment.Sheet{
					Path:    path,
					Caption: fmt.Sprintf("%s %s %s %q", m.Document, m.Article, m.Region, m.Keyword),
				})
			}
			records = append(records, rec)
		}

		if sheetPath != "" && len(sheets) > 0 {
			if err := writeSheet(sheetPath, sheets); err != nil {
				return err
			}
		}
		return output(cmd, records)
	},
}

func init() {
	cropCmd.Flags().StringVar(&sheetPath, "sheet", "", "also write the crops into this PDF")
}

func writeSheet(path string, sheets []segment.Sheet) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create contact sheet: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return segment.ContactSheet(f, sheets)
}
