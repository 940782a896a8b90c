package services

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/gophjournal/internal/common"
	"github.com/dmitrijs2005/gophjournal/internal/dbx"
	"github.com/dmitrijs2005/gophjournal/internal/envelope"
	"github.com/dmitrijs2005/gophjournal/internal/logging"
	"github.com/dmitrijs2005/gophjournal/internal/server/archive"
	"github.com/dmitrijs2005/gophjournal/internal/server/models"
	"github.com/dmitrijs2005/gophjournal/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// MigrationService applies client migration batches: every submitted value
// must be an envelope, prior values are archived, and the whole batch is
// written in one transaction.
type MigrationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	archive     archive.Archive
	logger      logging.Logger
	now         func() time.Time
}

func NewMigrationService(db *sql.DB, m repomanager.RepositoryManager, a archive.Archive, logger logging.Logger) *MigrationService {
	return &MigrationService{db: db, repomanager: m, archive: a, logger: logger, now: time.Now}
}

// Validate rejects a batch carrying any non-envelope value.
func Validate(batch models.MigrationBatch) error {
	for _, p := range batch.Entries {
		if err := checkField("entry", p.ID, "content", p.Content); err != nil {
			return err
		}
		if err := checkField("entry", p.ID, "summary", p.Summary); err != nil {
			return err
		}
	}
	for _, p := range batch.Tasks {
		if err := checkField("task", p.ID, "title", p.Title); err != nil {
			return err
		}
		if err := checkField("task", p.ID, "description", p.Description); err != nil {
			return err
		}
	}
	return nil
}

func checkField(kind, id, name string, v *string) error {
	if v != nil && !envelope.IsEncrypted(*v) {
		return fmt.Errorf("%w: %s %s %s", common.ErrPlaintextField, kind, id, name)
	}
	return nil
}

// Apply validates and applies batch for userID. Patches for rows that do not
// exist or belong to another user are ignored and not counted.
func (s *MigrationService) Apply(ctx context.Context, userID string, batch models.MigrationBatch) (models.MigrationResult, error) {
	if err := Validate(batch); err != nil {
		return models.MigrationResult{}, err
	}
	if len(batch.Entries) == 0 && len(batch.Tasks) == 0 {
		return models.MigrationResult{}, nil
	}

	res, err := dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (models.MigrationResult, error) {
		entryRepo := s.repomanager.Entries(tx)
		taskRepo := s.repomanager.Tasks(tx)

		snap := models.Snapshot{UserID: userID, TakenAt: s.now().UTC().Format(time.RFC3339Nano)}
		var (
			entries []models.EntryPatch
			tasks   []models.TaskPatch
		)

		for _, p := range batch.Entries {
			if !hasEntryFields(p) || !validID(p.ID) {
				continue
			}
			e, err := entryRepo.GetForUpdate(ctx, userID, p.ID)
			if errors.Is(err, common.ErrorNotFound) {
				continue
			}
			if err != nil {
				return models.MigrationResult{}, err
			}
			snap.Records = append(snap.Records, entryRecord(*e, p))
			entries = append(entries, p)
		}
		for _, p := range batch.Tasks {
			if !hasTaskFields(p) || !validID(p.ID) {
				continue
			}
			t, err := taskRepo.GetForUpdate(ctx, userID, p.ID)
			if errors.Is(err, common.ErrorNotFound) {
				continue
			}
			if err != nil {
				return models.MigrationResult{}, err
			}
			snap.Records = append(snap.Records, taskRecord(*t, p))
			tasks = append(tasks, p)
		}

		if len(entries) == 0 && len(tasks) == 0 {
			return models.MigrationResult{}, nil
		}
		if err := s.saveSnapshot(ctx, snap); err != nil {
			return models.MigrationResult{}, err
		}

		var res models.MigrationResult
		for _, p := range entries {
			ok, err := entryRepo.ApplyPatch(ctx, userID, p)
			if err != nil {
				return models.MigrationResult{}, err
			}
			if ok {
				res.EntriesUpdated++
			}
		}
		for _, p := range tasks {
			ok, err := taskRepo.ApplyPatch(ctx, userID, p)
			if err != nil {
				return models.MigrationResult{}, err
			}
			if ok {
				res.TasksUpdated++
			}
		}
		return res, nil
	})
	if err != nil {
		return models.MigrationResult{}, fmt.Errorf("apply migration: %w", err)
	}

	s.logger.Info(ctx, "migration applied", "user_id", userID,
		"entries_updated", res.EntriesUpdated, "tasks_updated", res.TasksUpdated)
	return res, nil
}

func (s *MigrationService) saveSnapshot(ctx context.Context, snap models.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	key := fmt.Sprintf("snapshots/%s/%s-%s.json", url.PathEscape(snap.UserID), s.now().UTC().Format("20060102T150405Z"), uuid.NewString())
	if err := s.archive.Put(ctx, key, body); err != nil {
		return fmt.Errorf("archive snapshot: %w", err)
	}
	return nil
}

func entryRecord(e models.Entry, p models.EntryPatch) models.SnapshotRecord {
	rec := models.SnapshotRecord{Kind: "entry", ID: e.ID, UpdatedAt: e.UpdatedAt, Fields: map[string]models.SnapshotField{}}
	if p.Content != nil {
		rec.Fields["content"] = priorField(e.Content)
	}
	if p.Summary != nil {
		rec.Fields["summary"] = priorField(e.Summary)
	}
	return rec
}

func taskRecord(t models.Task, p models.TaskPatch) models.SnapshotRecord {
	rec := models.SnapshotRecord{Kind: "task", ID: t.ID, UpdatedAt: t.UpdatedAt, Fields: map[string]models.SnapshotField{}}
	if p.Title != nil {
		rec.Fields["title"] = priorField(t.Title)
	}
	if p.Description != nil {
		rec.Fields["description"] = priorField(t.Description)
	}
	return rec
}

// priorField keeps envelopes and fingerprints plaintext.
func priorField(v string) models.SnapshotField {
	switch {
	case v == "":
		return models.SnapshotField{}
	case envelope.IsEncrypted(v):
		return models.SnapshotField{Envelope: v}
	}
	sum := sha256.Sum256([]byte(v))
	return models.SnapshotField{SHA256: hex.EncodeToString(sum[:])}
}

func hasEntryFields(p models.EntryPatch) bool { return p.Content != nil || p.Summary != nil }

func hasTaskFields(p models.TaskPatch) bool { return p.Title != nil || p.Description != nil }

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
