package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/photojournal/internal/dbx"
	"github.com/dmitrijs2005/photojournal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/photojournal/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Entries(db dbx.DBTX) entries.Repository
}
