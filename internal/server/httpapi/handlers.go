package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophjournal/internal/common"
	"github.com/dmitrijs2005/gophjournal/internal/server/models"
)

const maxBodyBytes = 8 << 20

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.journal.ListEntries(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	var in models.Entry
	if !s.decode(w, r, &in) {
		return
	}
	created, err := s.journal.CreateEntry(r.Context(), userIDFrom(r.Context()), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.journal.ListTasks(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var in models.Task
	if !s.decode(w, r, &in) {
		return
	}
	created, err := s.journal.CreateTask(r.Context(), userIDFrom(r.Context()), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) migrate(w http.ResponseWriter, r *http.Request) {
	var batch models.MigrationBatch
	if !s.decode(w, r, &batch) {
		return
	}

	userID := userIDFrom(r.Context())
	res, err := s.migrations.Apply(r.Context(), userID, batch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info(r.Context(), "migration applied",
		"user_id", userID, "entries", res.EntriesUpdated, "tasks", res.TasksUpdated)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrPlaintextField), errors.Is(err, common.ErrorValidation):
		writeMessage(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusInternalServerError, common.ErrorInternal.Error())
	}
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
