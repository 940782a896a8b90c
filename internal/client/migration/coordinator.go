// Package migration upgrades a user's unencrypted journal fields to
// envelopes after sign-in.
//
// A pass is: partition the records into fields that still hold plaintext,
// encrypt those fields concurrently, submit every patch in one request.
// Nothing is mutated before the submission, so an abandoned or failed pass is
// simply retried from scratch on the next sign-in; the per-field
// IsEncrypted filter keeps that retry from double-encrypting.
//
// Two clients migrating the same account at once both submit full
// overwrites; the last write wins and both values decrypt to the same text.
package migration

import (
	"context"
	"runtime"

	"github.com/dmitrijs2005/gophjournal/internal/client/engine"
	"github.com/dmitrijs2005/gophjournal/internal/client/models"
	"github.com/dmitrijs2005/gophjournal/internal/logging"

	"golang.org/x/sync/errgroup"
)

// Sealer is the part of engine.Engine a migration needs.
type Sealer interface {
	Seal(ctx context.Context, plaintext, userID string) engine.Result
}

// Submitter persists a migration batch at the server in a single request.
type Submitter interface {
	SubmitMigration(ctx context.Context, batch models.MigrationBatch) (models.MigrationResult, error)
}

type Coordinator struct {
	sealer    Sealer
	submitter Submitter
	logger    logging.Logger
}

func NewCoordinator(sealer Sealer, submitter Submitter, logger logging.Logger) *Coordinator {
	return &Coordinator{sealer: sealer, submitter: submitter, logger: logger}
}

// field is one plaintext value awaiting encryption. It points into the
// patch it will be written to.
type field struct {
	plaintext string
	target    **string
	sealed    string
	ok        bool
}

// plan holds the patches of a pass and the fields that fill them.
type plan struct {
	entries []models.EntryPatch
	tasks   []models.TaskPatch
	fields  []*field
}

func needsEncryption(v string) bool {
	return v != "" && !engine.IsEncrypted(v)
}

// partition selects the fields that still hold plaintext. Records with no
// such field are left out entirely.
func partition(entries []models.Entry, tasks []models.Task) *plan {
	p := &plan{
		entries: make([]models.EntryPatch, 0, len(entries)),
		tasks:   make([]models.TaskPatch, 0, len(tasks)),
	}

	for _, e := range entries {
		if !needsEncryption(e.Content) && !needsEncryption(e.Summary) {
			continue
		}
		p.entries = append(p.entries, models.EntryPatch{ID: e.ID})
	}
	for _, t := range tasks {
		if !needsEncryption(t.Title) && !needsEncryption(t.Description) {
			continue
		}
		p.tasks = append(p.tasks, models.TaskPatch{ID: t.ID})
	}

	// Fields point into the patch slices, which are not appended to past
	// this point.
	i := 0
	for _, e := range entries {
		if !needsEncryption(e.Content) && !needsEncryption(e.Summary) {
			continue
		}
		patch := &p.entries[i]
		i++
		p.add(e.Content, &patch.Content)
		p.add(e.Summary, &patch.Summary)
	}
	i = 0
	for _, t := range tasks {
		if !needsEncryption(t.Title) && !needsEncryption(t.Description) {
			continue
		}
		patch := &p.tasks[i]
		i++
		p.add(t.Title, &patch.Title)
		p.add(t.Description, &patch.Description)
	}
	return p
}

func (p *plan) add(value string, target **string) {
	if needsEncryption(value) {
		p.fields = append(p.fields, &field{plaintext: value, target: target})
	}
}

// batch assembles the request from the fields that encrypted successfully.
// A field that fell back to plaintext is dropped, and so is a patch left
// with no field.
func (p *plan) batch() models.MigrationBatch {
	for _, f := range p.fields {
		if f.ok {
			v := f.sealed
			*f.target = &v
		}
	}

	b := models.MigrationBatch{
		Entries: make([]models.EntryPatch, 0, len(p.entries)),
		Tasks:   make([]models.TaskPatch, 0, len(p.tasks)),
	}
	for _, e := range p.entries {
		if e.Content != nil || e.Summary != nil {
			b.Entries = append(b.Entries, e)
		}
	}
	for _, t := range p.tasks {
		if t.Title != nil || t.Description != nil {
			b.Tasks = append(b.Tasks, t)
		}
	}
	return b
}

// Migrate encrypts every plaintext field of entries and tasks and submits
// the result. It never returns an error: any failure is logged and reported
// as zero updates, leaving the records to be rediscovered next time.
func (c *Coordinator) Migrate(ctx context.Context, userID string, entries []models.Entry, tasks []models.Task) models.MigrationResult {
	log := c.logger.With("user_id", userID)

	if userID == "" {
		log.Warn(ctx, "migration skipped: empty user id")
		return models.MigrationResult{}
	}

	p := partition(entries, tasks)
	if len(p.fields) == 0 {
		log.Debug(ctx, "migration: nothing to encrypt")
		return models.MigrationResult{}
	}

	c.sealAll(ctx, userID, p.fields)

	batch := p.batch()
	if batch.Empty() {
		log.Warn(ctx, "migration skipped: no field could be encrypted", "fields", len(p.fields))
		return models.MigrationResult{}
	}

	res, err := c.submitter.SubmitMigration(ctx, batch)
	if err != nil {
		log.Warn(ctx, "migration submission failed", "error", err, "entries", len(batch.Entries), "tasks", len(batch.Tasks))
		return models.MigrationResult{}
	}

	log.Info(ctx, "migration submitted", "entries_updated", res.EntriesUpdated, "tasks_updated", res.TasksUpdated)
	return res
}

// sealAll encrypts fields concurrently; each field gets its own salt and IV
// so the order is irrelevant.
func (c *Coordinator) sealAll(ctx context.Context, userID string, fields []*field) {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, f := range fields {
		g.Go(func() error {
			r := c.sealer.Seal(ctx, f.plaintext, userID)
			if r.Status == engine.StatusOK {
				f.sealed, f.ok = r.Value, true
			}
			return nil
		})
	}
	_ = g.Wait()
}
