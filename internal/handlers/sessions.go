package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/itemshuffle/internal/session"
	"github.com/jwebster45206/itemshuffle/pkg/delivery"
	"github.com/jwebster45206/itemshuffle/pkg/engine"
	"github.com/jwebster45206/itemshuffle/pkg/items"
	"github.com/jwebster45206/itemshuffle/pkg/override"
	"github.com/jwebster45206/itemshuffle/pkg/xflags"
)

// MaxFramesPerRequest bounds the frames one request may advance.
const MaxFramesPerRequest = 600

// CollectRequest names exactly one location: a trigger, a collection flag
// or the flag of a delayed item.
type CollectRequest struct {
	Ref     engine.ActorRef   `json:"ref"`
	Trigger *override.Trigger `json:"trigger,omitempty"`
	Flag    *xflags.Flag      `json:"flag,omitempty"`
	Delayed *uint32           `json:"delayed,omitempty"`
}

type DelayedResponse struct {
	Queued bool `json:"queued"`
}

// FramesRequest advances the engine one frame per status.
type FramesRequest struct {
	Frames []delivery.Status `json:"frames"`
}

type FramesResponse struct {
	Results []engine.FrameResult `json:"results"`
}

type ChestRequest struct {
	Trigger override.Trigger `json:"trigger"`
	Vanilla items.ChestType  `json:"vanilla"`
}

type ChestResponse struct {
	ChestType items.ChestType `json:"chest_type"`
}

type SessionHandler struct {
	sessions *session.Manager
	logger   *slog.Logger
}

func NewSessionHandler(sessions *session.Manager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// ServeHTTP handles HTTP requests for sessions
// Routes:
// POST /v1/sessions              - Create a session
// GET /v1/sessions/{id}          - Session snapshot
// DELETE /v1/sessions/{id}       - Delete a session
// POST /v1/sessions/{id}/collect - Collect a location
// POST /v1/sessions/{id}/frames  - Advance frames
// POST /v1/sessions/{id}/chest   - Resolve a chest appearance
// POST /v1/sessions/{id}/save    - Persist the save file
// POST /v1/sessions/{id}/sync    - Relay multiworld items now
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/sessions"), "/")
	if path == "" {
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleCreate(w, r)
		return
	}

	idStr, action, _ := strings.Cut(path, "/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Warn("Invalid session ID", "id", idStr, "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var handle func(http.ResponseWriter, *http.Request, *session.Session)
	method := http.MethodPost
	switch action {
	case "":
		switch r.Method {
		case http.MethodGet:
			method, handle = r.Method, h.handleRead
		case http.MethodDelete:
			h.handleDelete(w, r, id)
			return
		default:
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
			return
		}
	case "collect":
		handle = h.handleCollect
	case "frames":
		handle = h.handleFrames
	case "chest":
		handle = h.handleChest
	case "save":
		handle = h.handleSave
	case "sync":
		handle = h.handleSync
	default:
		writeError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Unknown session action %q", action))
		return
	}
	if r.Method != method {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: "+method)
		return
	}

	sess, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		h.fail(w, "Failed to load session", err)
		return
	}
	handle(w, r, sess)
}

// fail writes err with its mapped status. Server errors are logged and
// their detail is not exposed.
func (h *SessionHandler) fail(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(msg, "error", err)
		writeError(w, h.logger, status, msg)
		return
	}
	writeError(w, h.logger, status, err.Error())
}

func (h *SessionHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.logger.Warn("Invalid request body", "error", err, "path", r.URL.Path)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req session.CreateRequest
	if !h.decode(w, r, &req) {
		return
	}

	sess, err := h.sessions.Create(r.Context(), req)
	if err != nil {
		h.fail(w, "Failed to create session", err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, sess.Snapshot())
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	writeJSON(w, h.logger, http.StatusOK, sess.Snapshot())
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.sessions.Delete(r.Context(), id); err != nil {
		h.fail(w, "Failed to delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) handleCollect(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req CollectRequest
	if !h.decode(w, r, &req) {
		return
	}

	n := 0
	for _, set := range []bool{req.Trigger != nil, req.Flag != nil, req.Delayed != nil} {
		if set {
			n++
		}
	}
	if n != 1 {
		writeError(w, h.logger, http.StatusBadRequest, "Exactly one of trigger, flag or delayed is required")
		return
	}

	switch {
	case req.Trigger != nil:
		writeJSON(w, h.logger, http.StatusOK, sess.Collect(req.Ref, *req.Trigger))
	case req.Flag != nil:
		writeJSON(w, h.logger, http.StatusOK, sess.CollectNewFlag(req.Ref, *req.Flag))
	default:
		writeJSON(w, h.logger, http.StatusOK, DelayedResponse{Queued: sess.PushDelayedItem(*req.Delayed)})
	}
}

func (h *SessionHandler) handleFrames(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req FramesRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Frames) == 0 || len(req.Frames) > MaxFramesPerRequest {
		writeError(w, h.logger, http.StatusBadRequest, fmt.Sprintf("frames must hold 1 to %d statuses", MaxFramesPerRequest))
		return
	}
	writeJSON(w, h.logger, http.StatusOK, FramesResponse{Results: sess.Frames(req.Frames)})
}

func (h *SessionHandler) handleChest(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req ChestRequest
	if !h.decode(w, r, &req) {
		return
	}
	writeJSON(w, h.logger, http.StatusOK, ChestResponse{ChestType: sess.ChestType(req.Trigger, req.Vanilla)})
}

func (h *SessionHandler) handleSave(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := sess.Save(r.Context()); err != nil {
		h.fail(w, "Failed to save session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) handleSync(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if !sess.Multiworld() {
		writeError(w, h.logger, http.StatusConflict, "Session is not in a multiworld room")
		return
	}
	res, err := sess.Sync(r.Context())
	if err != nil {
		h.fail(w, "Failed to sync session", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, res)
}
