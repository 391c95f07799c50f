package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/elevennote/elevennote/internal/models"
	"gorm.io/gorm"
)

// UserID is a user identity that has already been verified upstream (by the
// auth middleware or by the token issuer). Handlers must not build one from
// raw request data.
type UserID uint

const (
	titleMinLen   = 2
	titleMaxLen   = 100
	contentMaxLen = 8000
)

// NoteStore implements CRUD over notes with the owner check baked into every
// operation. A note belonging to a different owner behaves exactly like a
// note that does not exist.
type NoteStore struct {
	db *gorm.DB
}

func NewNoteStore(db *gorm.DB) *NoteStore {
	return &NoteStore{db: db}
}

// validateNoteInput re-checks the length constraints the handlers already
// enforce, so a store invoked directly still rejects impossible states.
func validateNoteInput(title, content string) error {
	titleLen := utf8.RuneCountInString(title)
	if titleLen < titleMinLen || titleLen > titleMaxLen {
		return ErrInvalidNoteInput
	}
	if utf8.RuneCountInString(content) > contentMaxLen {
		return ErrInvalidNoteInput
	}
	return nil
}

// CreateNote inserts a note owned by owner with the current server time.
func (s *NoteStore) CreateNote(ctx context.Context, owner UserID, title, content string) (*models.NoteListItem, error) {
	if err := validateNoteInput(title, content); err != nil {
		return nil, err
	}

	note := models.Note{
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		OwnerID:   uint(owner),
	}

	res := s.db.WithContext(ctx).Create(&note)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected != 1 {
		return nil, ErrUnexpectedRowCount
	}

	return &models.NoteListItem{
		ID:        note.ID,
		Title:     note.Title,
		CreatedAt: note.CreatedAt,
	}, nil
}

// GetAllNotes lists every note owned by owner, reduced to the list view.
// A user with no notes gets an empty slice, not an error.
func (s *NoteStore) GetAllNotes(ctx context.Context, owner UserID) ([]models.NoteListItem, error) {
	items := []models.NoteListItem{}
	err := s.db.WithContext(ctx).
		Model(&models.Note{}).
		Where("owner_id = ?", uint(owner)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetNoteByID returns the full detail of one note, or ErrNoteNotFound if the
// note is absent or owned by someone else.
func (s *NoteStore) GetNoteByID(ctx context.Context, owner UserID, noteID uint) (*models.NoteDetail, error) {
	var note models.Note
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", noteID, uint(owner)).
		First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	return &models.NoteDetail{
		ID:         note.ID,
		Title:      note.Title,
		Content:    note.Content,
		CreatedAt:  note.CreatedAt,
		ModifiedAt: note.ModifiedAt,
	}, nil
}

// UpdateNote replaces title and content of an owned note and stamps the
// modified time. Success requires exactly one row to change.
func (s *NoteStore) UpdateNote(ctx context.Context, owner UserID, noteID uint, title, content string) error {
	if err := validateNoteInput(title, content); err != nil {
		return err
	}

	note, err := s.findOwned(ctx, owner, noteID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	res := s.db.WithContext(ctx).Model(note).Updates(map[string]any{
		"title":       title,
		"content":     content,
		"modified_at": now,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrUnexpectedRowCount
	}
	return nil
}

// DeleteNote removes an owned note. Success requires exactly one row removed.
func (s *NoteStore) DeleteNote(ctx context.Context, owner UserID, noteID uint) error {
	note, err := s.findOwned(ctx, owner, noteID)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Delete(&models.Note{}, note.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrUnexpectedRowCount
	}
	return nil
}

// findOwned loads a note by primary key and checks the owner afterwards, so
// an owner mismatch is indistinguishable from a missing row.
func (s *NoteStore) findOwned(ctx context.Context, owner UserID, noteID uint) (*models.Note, error) {
	var note models.Note
	err := s.db.WithContext(ctx).First(&note, noteID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	if note.OwnerID != uint(owner) {
		return nil, ErrNoteNotFound
	}
	return &note, nil
}
