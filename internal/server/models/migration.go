package models

import "time"

// EntryPatch replaces the non-nil fields of one entry.
type EntryPatch struct {
	ID      string  `json:"id"`
	Content *string `json:"content,omitempty"`
	Summary *string `json:"summary,omitempty"`
}

// TaskPatch replaces the non-nil fields of one task.
type TaskPatch struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type MigrationBatch struct {
	Entries []EntryPatch `json:"entries"`
	Tasks   []TaskPatch  `json:"tasks"`
}

type MigrationResult struct {
	EntriesUpdated int `json:"entriesUpdated"`
	TasksUpdated   int `json:"tasksUpdated"`
}

// Snapshot is the archived state of the rows a migration batch is about to
// overwrite. It never holds readable content: see SnapshotField.
type Snapshot struct {
	UserID  string           `json:"userId"`
	TakenAt string           `json:"takenAt"`
	Records []SnapshotRecord `json:"records"`
}

// SnapshotRecord lists the patched fields of one row as they were before the
// batch.
type SnapshotRecord struct {
	Kind      string                   `json:"kind"`
	ID        string                   `json:"id"`
	UpdatedAt time.Time                `json:"updatedAt"`
	Fields    map[string]SnapshotField `json:"fields"`
}

// SnapshotField is a prior value: kept verbatim when it was already an
// envelope, reduced to a hex SHA-256 digest when it was plaintext. Empty
// values leave both unset.
type SnapshotField struct {
	Envelope string `json:"envelope,omitempty"`
	SHA256   string `json:"sha256,omitempty"`
}
