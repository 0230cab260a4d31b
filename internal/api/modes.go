package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/augur/internal/engine"
	"github.com/MikeSquared-Agency/augur/internal/mode"
	"github.com/MikeSquared-Agency/augur/internal/signals"
	"github.com/MikeSquared-Agency/augur/internal/store"
)

const maxBodyBytes = 64 << 10

// DecideRequest asks for a mode decision. Signals, when present, replace
// extraction; an unknown previous mode is treated as none.
type DecideRequest struct {
	Text         string          `json:"text"`
	PreviousMode string          `json:"previous_mode,omitempty"`
	Signals      *signals.Vector `json:"signals,omitempty"`
}

type DecideResponse struct {
	engine.Result
	Changed      bool   `json:"changed"`
	SignalSource string `json:"signal_source"`
}

func (s *Server) decide(w http.ResponseWriter, r *http.Request) {
	var req DecideRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	prev := mode.OrNone(req.PreviousMode)

	source := s.sourceName
	var v signals.Vector
	if req.Signals != nil {
		v = *req.Signals
		source = "request"
	} else {
		extracted, err := s.source.Extract(r.Context(), req.Text)
		if err != nil {
			slog.Warn("signal source failed, using rules", "error", err)
			extracted = s.engine.Signals(req.Text)
			source = "rules"
		}
		v = extracted
	}

	res := s.engine.ClassifyWithSignals(req.Text, v, prev)
	writeJSON(w, http.StatusOK, DecideResponse{Result: res, Changed: res.Changed(), SignalSource: source})
}

func (s *Server) ownerMode(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.ownerParam(w, r)
	if !ok {
		return
	}

	m, err := s.store.LatestMode(r.Context(), owner)
	if err != nil {
		slog.Error("latest mode lookup failed", "owner", owner.String(), "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if m == mode.None {
		writeError(w, http.StatusNotFound, "no decisions for owner")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"owner_uuid": owner.String(), "mode": string(m)})
}

func (s *Server) ownerDecisions(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.ownerParam(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	list, err := s.store.ListDecisions(r.Context(), owner, limit)
	if err != nil {
		slog.Error("list decisions failed", "owner", owner.String(), "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if list == nil {
		list = []store.Decision{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"owner_uuid": owner.String(), "decisions": list})
}

// ownerParam parses the owner id and checks a store is configured.
func (s *Server) ownerParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "decision store not configured")
		return uuid.Nil, false
	}
	owner, err := uuid.Parse(chi.URLParam(r, "ownerUUID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid owner uuid")
		return uuid.Nil, false
	}
	return owner, true
}
