package services

import (
	"fmt"

	"github.com/dmitrijs2005/photojournal/internal/common"
)

// Client-facing failures. Each wraps a common sentinel; the text after the
// colon is what the HTTP layer shows to the caller.
var (
	ErrMissingCredentials = fmt.Errorf("%w: username and password are required fields", common.ErrorBadRequest)
	ErrUsernameTaken      = fmt.Errorf("%w: username already taken", common.ErrorAlreadyExists)
	ErrInvalidLogin       = fmt.Errorf("%w: invalid login", common.ErrorUnauthorized)
	ErrIdentityMissing    = fmt.Errorf("%w: authentication required", common.ErrorUnauthorized)
	ErrInvalidEntryID     = fmt.Errorf("%w: entryId must be a positive integer", common.ErrorBadRequest)
	ErrMissingEntryFields = fmt.Errorf("%w: title, notes and photoUrl are required fields", common.ErrorBadRequest)
)

func entryNotFound(entryID int64) error {
	return fmt.Errorf("%w: entry with id %d not found", common.ErrorNotFound, entryID)
}
