package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gardar/metsmine/pkg/query"
)

var dictionaryPath string

var qualityCmd = &cobra.Command{
	Use:   "quality <issue-dir>...",
	Short: "Estimate OCR quality per page",
	Long: `For every page, report the percentage of normalized words found in a
reference dictionary and the mean OCR word confidence.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Dictionary
		if dictionaryPath != "" {
			path = dictionaryPath
		}
		dict, err := loadDictionary(path)
		if err != nil {
			return err
		}

		norm := cfg.Normalizer()
		records, err := eachIssue(cmd.Context(), args, cfg, log, func(iss *issue, _ *slog.Logger) ([]qualityRecord, error) {
			out := make([]qualityRecord, 0, len(iss.pages))
			for i := range iss.pages {
				q, err := query.MeasurePage(&iss.pages[i], dict, norm)
				if err != nil {
					return nil, err
				}
				out = append(out, qualityRecord{Document: iss.doc.Code, PageQuality: q})
			}
			return out, nil
		})
		if err != nil {
			return err
		}
		return output(cmd, records)
	},
}

func init() {
	qualityCmd.Flags().StringVar(&dictionaryPath, "dictionary", "", "word list, one word per line (overrides config)")
}

func loadDictionary(path string) (query.Dictionary, error) {
	if path == "" {
		return nil, fmt.Errorf("no dictionary: set dictionary in the config or pass --dictionary")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()
	return query.LoadDictionary(f)
}
