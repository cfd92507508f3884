package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gardar/metsmine/pkg/article"
	"github.com/gardar/metsmine/pkg/mets"
	"github.com/gardar/metsmine/pkg/query"
)

var errNoKeywords = errors.New("no keywords: set keywords in the config or pass -k")

type structureRecord struct {
	Document    string            `json:"document" yaml:"document"`
	Title       string            `json:"title" yaml:"title"`
	Publisher   string            `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Place       string            `json:"place,omitempty" yaml:"place,omitempty"`
	Years       []int             `json:"years,omitempty" yaml:"years,omitempty"`
	Pages       []string          `json:"pages" yaml:"pages"`
	Articles    []article.Article `json:"articles" yaml:"articles"`
	Diagnostics []mets.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

type pageRecord struct {
	Year     int    `json:"year,omitempty" yaml:"year,omitempty"`
	Document string `json:"document" yaml:"document"`
	PageCode string `json:"page_code" yaml:"page_code"`
	PageName string `json:"page_name" yaml:"page_name"`
	Keyword  string `json:"keyword" yaml:"keyword"`
}

type articleRecord struct {
	Year     int           `json:"year,omitempty" yaml:"year,omitempty"`
	Document string        `json:"document" yaml:"document"`
	Archive  string        `json:"archive" yaml:"archive"`
	Article  string        `json:"article" yaml:"article"`
	Region   string        `json:"region" yaml:"region"`
	Geometry mets.Geometry `json:"geometry" yaml:"geometry"`
	PageCode string        `json:"page_code" yaml:"page_code"`
	PageName string        `json:"page_name" yaml:"page_name"`
	Words    []string      `json:"words" yaml:"words,flow"`
	Keyword  string        `json:"keyword" yaml:"keyword"`
}

type keywordRecord struct {
	Document string   `json:"document" yaml:"document"`
	Year     int      `json:"year,omitempty" yaml:"year,omitempty"`
	Keywords []string `json:"keywords" yaml:"keywords,flow"`
}

type qualityRecord struct {
	Document          string `json:"document" yaml:"document"`
	query.PageQuality `yaml:",inline"`
}

var structureCmd = &cobra.Command{
	Use:   "structure <issue-dir>...",
	Short: "Print the article structure of each issue",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := eachIssue(cmd.Context(), args, cfg, log, func(iss *issue, _ *slog.Logger) ([]structureRecord, error) {
			return []structureRecord{{
				Document:    iss.doc.Code,
				Title:       iss.doc.Title,
				Publisher:   iss.doc.Publisher,
				Place:       iss.doc.Place,
				Years:       iss.doc.Years,
				Pages:       iss.doc.PageCodes,
				Articles:    article.Resolve(iss.doc.Structure, iss.pages),
				Diagnostics: iss.doc.Structure.Diagnostics,
			}}, nil
		})
		if err != nil {
			return err
		}
		return output(cmd, records)
	},
}

var pagesCmd = &cobra.Command{
	Use:   "pages <issue-dir>...",
	Short: "List pages containing the keywords",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cfg.Keywords) == 0 {
			return errNoKeywords
		}
		norm := cfg.Normalizer()
		records, err := eachIssue(cmd.Context(), args, cfg, log, func(iss *issue, _ *slog.Logger) ([]pageRecord, error) {
			var out []pageRecord
			for _, m := range query.PageMatches(iss.doc, iss.pages, cfg.Keywords, norm) {
				out = append(out, pageRecord{
					Year:     yearOf(m.HasYear, m.Year),
					Document: m.Document.Code,
					PageCode: m.Page.Code,
					PageName: m.Page.Name,
					Keyword:  m.Keyword,
				})
			}
			return out, nil
		})
		if err != nil {
			return err
		}
		return output(cmd, records)
	},
}

var articlesCmd = &cobra.Command{
	Use:   "articles <issue-dir>...",
	Short: "List article regions containing the keywords",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := articleMatches(cmd, args)
		if err != nil {
			return err
		}
		return output(cmd, records)
	},
}

func articleMatches(cmd *cobra.Command, args []string) ([]articleRecord, error) {
	if len(cfg.Keywords) == 0 {
		return nil, errNoKeywords
	}
	norm := cfg.Normalizer()
	return eachIssue(cmd.Context(), args, cfg, log, func(iss *issue, _ *slog.Logger) ([]articleRecord, error) {
		articles := article.Resolve(iss.doc.Structure, iss.pages)
		var out []articleRecord
		for _, m := range query.ArticleMatches(iss.doc, articles, cfg.Keywords, norm) {
			out = append(out, articleRecord{
				Year:     yearOf(m.HasYear, m.Year),
				Document: m.Document.Code,
				Archive:  m.Document.Archive,
				Article:  string(m.Article),
				Region:   string(m.Region),
				Geometry: m.Geometry,
				PageCode: m.PageCode,
				PageName: m.PageName,
				Words:    m.Words,
				Keyword:  m.Keyword,
			})
		}
		return out, nil
	})
}

var keywordsCmd = &cobra.Command{
	Use:   "keywords <issue-dir>...",
	Short: "List the keywords present in each issue",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cfg.Keywords) == 0 {
			return errNoKeywords
		}
		norm := cfg.Normalizer()
		records, err := eachIssue(cmd.Context(), args, cfg, log, func(iss *issue, _ *slog.Logger) ([]keywordRecord, error) {
			found := query.DocumentKeywords(iss.pages, cfg.Keywords, norm)
			if len(found) == 0 {
				return nil, nil
			}
			return []keywordRecord{{
				Document: iss.doc.Code,
				Year:     yearOf(iss.doc.HasYear, iss.doc.Year),
				Keywords: found,
			}}, nil
		})
		if err != nil {
			return err
		}
		return output(cmd, records)
	},
}

var rowsCmd = &cobra.Command{
	Use:   "rows <issue-dir>...",
	Short: "Export every page as normalized text with its issue metadata",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		norm := cfg.Normalizer()
		records, err := eachIssue(cmd.Context(), args, cfg, log, func(iss *issue, _ *slog.Logger) ([]query.PageRow, error) {
			return query.PageRows(iss.doc, iss.pages, norm, cfg.Preprocess), nil
		})
		if err != nil {
			return err
		}
		return output(cmd, records)
	},
}

func yearOf(has bool, year int) int {
	if !has {
		return 0
	}
	return year
}
