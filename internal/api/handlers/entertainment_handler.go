package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avelasquez/entertainment-api/internal/models"
	"github.com/avelasquez/entertainment-api/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// EntertainmentHandler handles HTTP requests for catalog entries.
type EntertainmentHandler struct {
	service services.EntertainmentServiceProvider
}

// NewEntertainmentHandler creates a new EntertainmentHandler.
func NewEntertainmentHandler(service services.EntertainmentServiceProvider) *EntertainmentHandler {
	return &EntertainmentHandler{service: service}
}

// Create handles the request to create a new entry.
func (h *EntertainmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var entry models.Entertainment
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(entry)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetAll handles the request to list every entry.
func (h *EntertainmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.GetAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list entertainment entries")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// Get handles the request to get a single entry by its ID.
func (h *EntertainmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("Failed to get entertainment entry")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// Update handles a partial update of an existing entry.
func (h *EntertainmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch models.EntertainmentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(id, patch)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete handles the request to delete an entry, echoing the deleted entry
// back in the response.
func (h *EntertainmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, err := h.service.Delete(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("Failed to delete entertainment entry")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Entry deleted successfully",
		"entertainment": entry,
	})
}
