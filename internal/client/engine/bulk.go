package engine

import (
	"context"
	"runtime"

	"github.com/dmitrijs2005/gophjournal/internal/client/models"

	"golang.org/x/sync/errgroup"
)

// DecryptEntries returns a copy of entries with Content and Summary
// decrypted. Order and all other fields are preserved; a record that fails
// to decrypt degrades to a sentinel without affecting its siblings.
func (e *Engine) DecryptEntries(ctx context.Context, entries []models.Entry, userID string) []models.Entry {
	out := make([]models.Entry, len(entries))
	copy(out, entries)

	e.each(len(out), func(i int) {
		out[i].Content = e.Decrypt(ctx, out[i].Content, userID)
		if out[i].Summary != "" {
			out[i].Summary = e.Decrypt(ctx, out[i].Summary, userID)
		}
	})
	return out
}

// DecryptTasks is DecryptEntries for task titles and descriptions.
func (e *Engine) DecryptTasks(ctx context.Context, tasks []models.Task, userID string) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)

	e.each(len(out), func(i int) {
		out[i].Title = e.Decrypt(ctx, out[i].Title, userID)
		if out[i].Description != "" {
			out[i].Description = e.Decrypt(ctx, out[i].Description, userID)
		}
	})
	return out
}

// each runs fn for 0..n-1 on at most GOMAXPROCS goroutines. Every call
// derives a key, so the fan-out is CPU bound.
func (e *Engine) each(n int, fn func(i int)) {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}
