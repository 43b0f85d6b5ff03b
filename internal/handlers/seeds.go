package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/itemshuffle/pkg/seed"
	"github.com/jwebster45206/itemshuffle/pkg/storage"
)

// SeedResponse is a seed with the problems Validate found in it.
type SeedResponse struct {
	*seed.Seed
	Problems []string `json:"problems,omitempty"`
}

type SeedHandler struct {
	log     *slog.Logger
	storage storage.Storage
}

func NewSeedHandler(log *slog.Logger, storage storage.Storage) *SeedHandler {
	return &SeedHandler{
		log:     log,
		storage: storage,
	}
}

// ServeHTTP handles seed requests
// Routes:
// GET /v1/seeds        - Map of seed names to file names
// GET /v1/seeds/{file} - One seed
func (h *SeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, h.log, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	filename := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/seeds"), "/")
	if filename == "" {
		h.handleList(w, r)
		return
	}
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") {
		writeError(w, h.log, http.StatusBadRequest, "Invalid filename")
		return
	}
	h.handleGet(w, r, filename)
}

func (h *SeedHandler) handleList(w http.ResponseWriter, r *http.Request) {
	seeds, err := h.storage.ListSeeds(r.Context())
	if err != nil {
		h.log.Error("Failed to list seeds", "error", err)
		writeError(w, h.log, http.StatusInternalServerError, "Failed to list seeds")
		return
	}
	writeJSON(w, h.log, http.StatusOK, seeds)
}

func (h *SeedHandler) handleGet(w http.ResponseWriter, r *http.Request, filename string) {
	s, err := h.storage.GetSeed(r.Context(), filename)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.log.Error("Failed to get seed", "error", err, "filename", filename)
			writeError(w, h.log, status, "Failed to retrieve seed")
			return
		}
		writeError(w, h.log, status, "Seed not found")
		return
	}
	writeJSON(w, h.log, http.StatusOK, SeedResponse{Seed: s, Problems: s.Validate()})
}
