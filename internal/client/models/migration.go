package models

// EntryPatch carries only the entry fields that were encrypted by a
// migration pass. Nil means "leave unchanged".
type EntryPatch struct {
	ID      string  `json:"id"`
	Content *string `json:"content,omitempty"`
	Summary *string `json:"summary,omitempty"`
}

// TaskPatch carries only the task fields that were encrypted by a
// migration pass. Nil means "leave unchanged".
type TaskPatch struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// MigrationBatch is the single request a migration pass submits.
type MigrationBatch struct {
	Entries []EntryPatch `json:"entries"`
	Tasks   []TaskPatch  `json:"tasks"`
}

// Empty reports whether the batch has nothing to submit.
func (b MigrationBatch) Empty() bool {
	return len(b.Entries) == 0 && len(b.Tasks) == 0
}

// MigrationResult is the server acknowledgement of a MigrationBatch.
type MigrationResult struct {
	EntriesUpdated int `json:"entriesUpdated"`
	TasksUpdated   int `json:"tasksUpdated"`
}
