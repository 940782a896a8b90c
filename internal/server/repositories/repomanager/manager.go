package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophjournal/internal/dbx"
	"github.com/dmitrijs2005/gophjournal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/gophjournal/internal/server/repositories/tasks"
)

// RepositoryManager vends repositories bound to a *sql.DB or *sql.Tx, so a
// service can run several of them in one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Entries(db dbx.DBTX) entries.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
