package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// CollectionWriteRequest is the body for the generic upload endpoint
// POST /tournament: a target collection plus one object or a list of objects.
type CollectionWriteRequest struct {
	Collection string          `json:"collection"`
	Data       json.RawMessage `json:"data"`
}

type CollectionWriteResponse struct {
	Message    string `json:"message"`
	Collection string `json:"collection"`
	Count      int    `json:"count"`
}

func handleCollectionWrite(stores *StoreHandle, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CollectionWriteRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request format, expecting {collection, data}")
			return
		}

		name := strings.TrimSpace(req.Collection)
		if name == "" {
			writeError(w, http.StatusBadRequest, "collection is required")
			return
		}
		if !writableCollection(name) {
			writeError(w, http.StatusBadRequest, "unknown collection: "+name)
			return
		}

		docs, err := normalizeDocs(req.Data)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if len(docs) == 0 {
			writeError(w, http.StatusBadRequest, "data must contain at least one document")
			return
		}

		store, ok := stores.Get()
		if !ok {
			writeError(w, http.StatusServiceUnavailable, "store not ready")
			return
		}

		if err := store.InsertMany(r.Context(), name, docs); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save data")
			return
		}

		writesTotal.WithLabelValues(name).Inc()
		if event, ok := eventForCollection(name); ok {
			broker.Publish(event, docs)
		}

		writeJSON(w, http.StatusCreated, CollectionWriteResponse{
			Message:    "data saved successfully",
			Collection: name,
			Count:      len(docs),
		})
	}
}

func handleCollectionRead(stores *StoreHandle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "collection")
		if !readableCollections[name] {
			writeError(w, http.StatusBadRequest, "unknown collection: "+name)
			return
		}

		store, ok := stores.Get()
		if !ok {
			writeError(w, http.StatusServiceUnavailable, "store not ready")
			return
		}

		// Entity collections live in their own tables and are returned in
		// their typed shapes; everything else is raw documents.
		switch name {
		case "admins":
			admins, err := store.ListAdmins(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to fetch admins")
				return
			}
			writeJSON(w, http.StatusOK, admins)
		case "joinmatches":
			regs, err := store.ListRegistrations(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to fetch joinmatches")
				return
			}
			writeJSON(w, http.StatusOK, regs)
		default:
			docs, err := store.FindAll(r.Context(), name)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to fetch "+name)
				return
			}
			writeJSON(w, http.StatusOK, docs)
		}
	}
}

// handleTournamentDetail looks a tournament detail up by its human-readable
// tournamentId field, as opposed to the storage identifier.
func handleTournamentDetail(stores *StoreHandle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		store, ok := stores.Get()
		if !ok {
			writeError(w, http.StatusServiceUnavailable, "store not ready")
			return
		}

		doc, err := store.FindOneByField(r.Context(), "tournamentdetail", "tournamentId", id)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "tournament detail not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, doc)
	}
}
