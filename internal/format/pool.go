package format

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jorge-barreto/monozip/internal/fileblocks"
)

// All formats every entry with at most limit tools running at once and
// returns the results in input order. It never fails; entries whose
// formatting fails keep their original content.
func All(ctx context.Context, f Formatter, log *zap.Logger, entries []fileblocks.FileBlock, limit int) ([]fileblocks.FileBlock, Stats) {
	out := make([]fileblocks.FileBlock, len(entries))
	if limit < 1 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, e := range entries {
		g.Go(func() error {
			out[i] = fileblocks.FileBlock{
				Path:    e.Path,
				Content: Best(ctx, f, log, e.Path, e.Content),
			}
			return nil
		})
	}
	_ = g.Wait()

	var st Stats
	for i := range out {
		if out[i].Content != entries[i].Content {
			st.Formatted++
		} else {
			st.Unchanged++
		}
	}
	return out, st
}
