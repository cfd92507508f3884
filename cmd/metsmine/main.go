// metsmine runs text-mining queries over digitized newspaper issues.
//
// Each argument is an issue directory holding one *_mets.xml file and the
// OCR output of its pages (ALTO, hOCR or Document AI JSON). Issues are
// processed in parallel; an issue that fails to load is logged and skipped.
//
// Usage:
//
//	metsmine <command> [flags] <issue-dir>...
//
// Commands:
//
//	structure  article structure of each issue
//	pages      pages containing the keywords
//	articles   article regions containing the keywords
//	keywords   keywords present in each issue
//	quality    dictionary coverage and mean word confidence per page
//	rows       pages as normalized text with issue metadata
//	crop       crop matching article regions out of the page images
//
// Examples:
//
//	metsmine pages -k whale -k ship ./0000164_18470101
//	metsmine quality --config metsmine.yaml -o json ./issues/*
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
