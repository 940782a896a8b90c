// Package models defines the records the journal client reads, writes and
// migrates. Fields marked as encryptable hold either plaintext or an
// envelope string; isEncrypted is always derived, never stored.
package models

import "time"

// Entry is one journal entry. Content and Summary are encryptable.
type Entry struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Summary    string    `json:"summary,omitempty"`
	Mood       string    `json:"mood,omitempty"`
	Activities []string  `json:"activities,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Task is a to-do, usually distilled from an entry. Title and Description
// are encryptable.
type Task struct {
	ID          string    `json:"id"`
	EntryID     string    `json:"entryId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
