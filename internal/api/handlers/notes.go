package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/elevennote/elevennote/internal/api/middleware"
	"github.com/elevennote/elevennote/internal/services"
	"github.com/elevennote/elevennote/internal/utils"
)

// NotesHandler exposes the note store over HTTP. Every request's owner id
// comes from the auth middleware; a missing id means the route was mounted
// outside the middleware, which is a wiring bug, not a client error.
type NotesHandler struct {
	store *services.NoteStore
}

func NewNotesHandler(store *services.NoteStore) *NotesHandler {
	return &NotesHandler{store: store}
}

// NoteInput is the request body for creating and updating notes.
type NoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// validate enforces the field-length contract before the store is invoked.
func (in *NoteInput) validate() (string, bool) {
	titleLen := utf8.RuneCountInString(in.Title)
	if titleLen < 2 || titleLen > 100 {
		return "Title must be between 2 and 100 characters", false
	}
	if utf8.RuneCountInString(in.Content) > 8000 {
		return "Content must contain no more than 8000 characters", false
	}
	return "", true
}

// Create godoc
// @Summary Create a note
// @Tags Notes
// @Accept json
// @Produce json
// @Param input body handlers.NoteInput true "Note fields"
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Security BearerAuth
// @Router /api/v1/notes [post]
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.GetUserID(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input NoteInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg, ok := input.validate(); !ok {
		utils.JSONError(w, http.StatusBadRequest, msg)
		return
	}

	item, err := h.store.CreateNote(r.Context(), owner, input.Title, input.Content)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Note created",
		Data:    item,
	})
}

// List godoc
// @Summary List the caller's notes
// @Tags Notes
// @Produce json
// @Success 200 {object} utils.Payload
// @Security BearerAuth
// @Router /api/v1/notes [get]
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.GetUserID(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := h.store.GetAllNotes(r.Context(), owner)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Notes retrieved",
		Data:    items,
	})
}

// Get godoc
// @Summary Fetch one note with full content
// @Tags Notes
// @Produce json
// @Param id path int true "Note id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Security BearerAuth
// @Router /api/v1/notes/{id} [get]
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.GetUserID(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	noteID, ok := pathNoteID(r)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "Note not found")
		return
	}

	detail, err := h.store.GetNoteByID(r.Context(), owner, noteID)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Note retrieved",
		Data:    detail,
	})
}

// Update godoc
// @Summary Replace a note's title and content
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path int true "Note id"
// @Param input body handlers.NoteInput true "New note fields"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Security BearerAuth
// @Router /api/v1/notes/{id} [put]
func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.GetUserID(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	noteID, ok := pathNoteID(r)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "Note not found")
		return
	}

	var input NoteInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg, ok := input.validate(); !ok {
		utils.JSONError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.store.UpdateNote(r.Context(), owner, noteID, input.Title, input.Content); err != nil {
		h.writeStoreError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Note updated",
	})
}

// Delete godoc
// @Summary Delete a note
// @Tags Notes
// @Produce json
// @Param id path int true "Note id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Security BearerAuth
// @Router /api/v1/notes/{id} [delete]
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.GetUserID(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	noteID, ok := pathNoteID(r)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "Note not found")
		return
	}

	if err := h.store.DeleteNote(r.Context(), owner, noteID); err != nil {
		h.writeStoreError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Note deleted",
	})
}

// writeStoreError maps store outcomes to HTTP statuses. Not-found stays 404;
// validation misses that slipped past the handler become 400; row-count
// anomalies and database faults collapse to 500.
func (h *NotesHandler) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNoteNotFound):
		utils.JSONError(w, http.StatusNotFound, "Note not found")
	case errors.Is(err, services.ErrInvalidNoteInput):
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
	default:
		utils.JSONError(w, http.StatusInternalServerError, "Database error")
	}
}

func pathNoteID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
