package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	outputFormat string
	logFormat    string
	keywords     []string

	cfg Config
	log = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

var rootCmd = &cobra.Command{
	Use:   "metsmine",
	Short: "Text mining over METS/MODS newspaper issues",
	Long: `metsmine reads digitized newspaper issues (METS/MODS structure plus
per-page OCR output), resolves their articles to page regions and runs
keyword and text-quality queries over them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cfgFile, nil)
		if err != nil {
			return err
		}
		if len(keywords) > 0 {
			cfg.Keywords = keywords
		}
		switch outputFormat {
		case OutputYAML, OutputJSON:
		default:
			return fmt.Errorf("unknown output format: %s", outputFormat)
		}
		log, err = newLogger(cmd.ErrOrStderr(), logFormat, cfg)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", OutputYAML, "output format: yaml or json")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().StringArrayVarP(&keywords, "keyword", "k", nil, "keyword to search for (repeatable, overrides config)")

	rootCmd.AddCommand(structureCmd, pagesCmd, articlesCmd, keywordsCmd, qualityCmd, rowsCmd, cropCmd)
}

func newLogger(w io.Writer, format string, cfg Config) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch format {
	case "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format: %s", format)
	}
	return slog.New(h).With("run", uuid.NewString()), nil
}

func output(cmd *cobra.Command, data any) error {
	return writeOutput(cmd.OutOrStdout(), outputFormat, data)
}
