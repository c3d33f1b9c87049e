package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/levels/formats"
	"github.com/vovakirdan/tui-pipes/internal/logging"
	"github.com/vovakirdan/tui-pipes/internal/storage"
)

// stageResponse is a stored stage in its JSON document form.
type stageResponse struct {
	formats.JSONLevel
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(rec storage.StageRecord) stageResponse {
	return stageResponse{
		JSONLevel: formats.ToJSONLevel(formats.FromStage(rec.Stage)),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

// validateStage checks the fields a stored stage must carry. Cell contents are
// not checked here; FromStage repairs them on load.
func validateStage(doc formats.JSONLevel) error {
	switch {
	case doc.Name == "":
		return errors.New("name is required")
	case doc.Width < 0 || doc.Height < 0:
		return fmt.Errorf("size %dx%d must be non-negative", doc.Width, doc.Height)
	case doc.Width > core.MaxStageSize || doc.Height > core.MaxStageSize:
		return fmt.Errorf("size %dx%d exceeds the %d cell limit per side", doc.Width, doc.Height, core.MaxStageSize)
	}
	return nil
}

func (s *Server) handleListStages(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListStages(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("list stages", "err", err)
		writeError(w, http.StatusInternalServerError, "list_failed", "")
		return
	}

	out := make([]stageResponse, len(records))
	for i, rec := range records {
		out[i] = toResponse(rec)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetStage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.GetStage(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "stage "+id)
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).Error("get stage", "stage", id, "err", err)
		writeError(w, http.StatusInternalServerError, "get_failed", "")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(rec))
}

func (s *Server) handleCreateStage(w http.ResponseWriter, r *http.Request) {
	var doc formats.JSONLevel
	if !decodeBody(w, r, &doc) {
		return
	}
	if err := validateStage(doc); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_stage", err.Error())
		return
	}

	logger := logging.FromContext(r.Context())
	stage, err := s.store.CreateStage(r.Context(), doc.Level().Stage())
	if errors.Is(err, storage.ErrExists) {
		writeError(w, http.StatusConflict, "exists", "stage "+doc.ID)
		return
	}
	if err != nil {
		logger.Error("create stage", "err", err)
		writeError(w, http.StatusInternalServerError, "create_failed", "")
		return
	}
	logger.Info("stage created", "stage", stage.ID, "name", stage.Name)

	rec, err := s.store.GetStage(r.Context(), stage.ID)
	if err != nil {
		rec = storage.StageRecord{Stage: stage}
	}
	w.Header().Set("Location", "/stages/"+stage.ID)
	writeJSON(w, http.StatusCreated, toResponse(rec))
}

func (s *Server) handleUpdateStage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var doc formats.JSONLevel
	if !decodeBody(w, r, &doc) {
		return
	}
	if doc.ID != "" && doc.ID != id {
		writeError(w, http.StatusUnprocessableEntity, "invalid_stage", "body id does not match path")
		return
	}
	if err := validateStage(doc); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_stage", err.Error())
		return
	}
	doc.ID = id

	err := s.store.UpdateStage(r.Context(), doc.Level().Stage())
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "stage "+id)
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).Error("update stage", "stage", id, "err", err)
		writeError(w, http.StatusInternalServerError, "update_failed", "")
		return
	}

	rec, err := s.store.GetStage(r.Context(), id)
	if err != nil {
		logging.FromContext(r.Context()).Error("reload stage", "stage", id, "err", err)
		writeError(w, http.StatusInternalServerError, "update_failed", "")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(rec))
}

func (s *Server) handleDeleteStage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.DeleteStage(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "stage "+id)
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).Error("delete stage", "stage", id, "err", err)
		writeError(w, http.StatusInternalServerError, "delete_failed", "")
		return
	}
	logging.FromContext(r.Context()).Info("stage deleted", "stage", id)
	w.WriteHeader(http.StatusNoContent)
}

// evaluateResponse is the outcome of POST /evaluate.
type evaluateResponse struct {
	Connected    [][]bool      `json:"connected"`
	Solved       bool          `json:"solved"`
	ReachedSinks int           `json:"reachedSinks"`
	Sinks        int           `json:"sinks"`
	Anomalies    []anomalyJSON `json:"anomalies"`
}

type anomalyJSON struct {
	Code    string `json:"code"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var doc formats.JSONLevel
	if !decodeBody(w, r, &doc) {
		return
	}

	grid, anomalies := core.FromStage(doc.Level().Stage())
	res := core.Evaluate(grid)
	if s.metrics != nil {
		s.metrics.ObserveEvaluation(res.Solved)
	}

	out := evaluateResponse{
		Connected:    res.Connected,
		Solved:       res.Solved,
		ReachedSinks: len(res.ReachedSinks),
		Sinks:        len(res.Sinks),
		Anomalies:    make([]anomalyJSON, len(anomalies)),
	}
	if out.Connected == nil {
		out.Connected = [][]bool{}
	}
	for i, a := range anomalies {
		out.Anomalies[i] = anomalyJSON{Code: a.Code, Row: a.Row, Col: a.Col, Message: a.Message}
	}
	writeJSON(w, http.StatusOK, out)
}
