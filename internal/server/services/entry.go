package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/photojournal/internal/common"
	"github.com/dmitrijs2005/photojournal/internal/server/models"
	"github.com/dmitrijs2005/photojournal/internal/server/repositories/repomanager"
)

// EntryInput carries the client-editable fields of an entry.
type EntryInput struct {
	Title    string
	Notes    string
	PhotoURL string
}

func (in EntryInput) validate() error {
	if in.Title == "" || in.Notes == "" || in.PhotoURL == "" {
		return ErrMissingEntryFields
	}
	return nil
}

// EntryService implements journal entry operations on behalf of an
// authenticated user. Entries of other users are reported as not found.
type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewEntryService(db *sql.DB, repomanager repomanager.RepositoryManager) *EntryService {
	return &EntryService{
		db:          db,
		repomanager: repomanager,
	}
}

func (s *EntryService) List(ctx context.Context, userID int64) ([]*models.Entry, error) {
	if userID <= 0 {
		return nil, ErrIdentityMissing
	}

	entries, err := s.repomanager.Entries(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return entries, nil
}

func (s *EntryService) Get(ctx context.Context, userID, entryID int64) (*models.Entry, error) {
	if err := checkIDs(userID, entryID); err != nil {
		return nil, err
	}

	e, err := s.repomanager.Entries(s.db).GetByID(ctx, userID, entryID)
	if err != nil {
		return nil, translateNotFound(err, entryID, "error reading entry")
	}
	return e, nil
}

func (s *EntryService) Create(ctx context.Context, userID int64, in EntryInput) (*models.Entry, error) {
	if userID <= 0 {
		return nil, ErrIdentityMissing
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	e, err := s.repomanager.Entries(s.db).Create(ctx, &models.Entry{
		UserID:   userID,
		Title:    in.Title,
		Notes:    in.Notes,
		PhotoURL: in.PhotoURL,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}
	return e, nil
}

func (s *EntryService) Update(ctx context.Context, userID, entryID int64, in EntryInput) (*models.Entry, error) {
	if err := checkIDs(userID, entryID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	e, err := s.repomanager.Entries(s.db).Update(ctx, &models.Entry{
		ID:       entryID,
		UserID:   userID,
		Title:    in.Title,
		Notes:    in.Notes,
		PhotoURL: in.PhotoURL,
	})
	if err != nil {
		return nil, translateNotFound(err, entryID, "error updating entry")
	}
	return e, nil
}

func (s *EntryService) Delete(ctx context.Context, userID, entryID int64) error {
	if err := checkIDs(userID, entryID); err != nil {
		return err
	}

	if err := s.repomanager.Entries(s.db).Delete(ctx, userID, entryID); err != nil {
		return translateNotFound(err, entryID, "error deleting entry")
	}
	return nil
}

func checkIDs(userID, entryID int64) error {
	if userID <= 0 {
		return ErrIdentityMissing
	}
	if entryID <= 0 {
		return ErrInvalidEntryID
	}
	return nil
}

func translateNotFound(err error, entryID int64, op string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return entryNotFound(entryID)
	}
	return fmt.Errorf("%s: %w", op, err)
}
