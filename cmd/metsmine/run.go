package main

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// eachIssue loads every issue directory and applies fn to it, running up to
// workers issues at once. An issue that fails to load or to query is logged
// and skipped. Results are returned in argument order.
func eachIssue[T any](ctx context.Context, dirs []string, cfg Config, log *slog.Logger, fn func(*issue, *slog.Logger) ([]T, error)) ([]T, error) {
	results := make([][]T, len(dirs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			l := log.With("issue", dir)

			iss, err := loadIssue(dir, cfg.PageFormat, l)
			if err != nil {
				l.Error("failed to load issue", "error", err)
				return nil
			}
			l = l.With("document", iss.doc.Code)
			for _, d := range iss.doc.Structure.Diagnostics {
				l.Warn("structure diagnostic", "block", d.Block, "message", d.Message)
			}

			res, err := fn(iss, l)
			if err != nil {
				l.Error("query failed", "error", err)
				return nil
			}
			l.Debug("issue done", "pages", len(iss.pages), "results", len(res))
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(dirs))
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
