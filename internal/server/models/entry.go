// Package models holds the server-side records. Content, Summary, Title and
// Description arrive from clients already encrypted and are stored opaquely.
package models

import "time"

type Entry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	Content    string    `json:"content"`
	Summary    string    `json:"summary,omitempty"`
	Mood       string    `json:"mood,omitempty"`
	Activities []string  `json:"activities,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	EntryID     string    `json:"entryId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
