package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"placemarks-service/internal/domain/entity"
	"placemarks-service/internal/usecase"
	"placemarks-service/pkg/logger"
	"placemarks-service/pkg/pacer"
	"placemarks-service/templates"
)

// Handler exposes the enrichment and migration operations as thin JSON
// endpoints. Domain-level failures (a place that could not be enhanced)
// still answer 2xx with the error carried in the payload; only malformed
// requests and store failures produce non-2xx responses.
type Handler struct {
	enhancer *usecase.PlaceEnhancer
	sweeper  *usecase.MigrationSweeper
	janitor  *usecase.CacheJanitor
	logger   logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(enhancer *usecase.PlaceEnhancer, sweeper *usecase.MigrationSweeper, janitor *usecase.CacheJanitor, log logger.Logger) *Handler {
	return &Handler{
		enhancer: enhancer,
		sweeper:  sweeper,
		janitor:  janitor,
		logger:   log,
	}
}

// Register attaches all routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/places/{placeID}/enhance", h.enhancePlace)
	mux.HandleFunc("POST /api/v1/places/fix-photos", h.fixPhotos)
	mux.HandleFunc("GET /api/v1/migration/candidates", h.findCandidates)
	mux.HandleFunc("POST /api/v1/migration/run", h.runMigration)
	mux.HandleFunc("GET /api/v1/migration/validate", h.validate)
	mux.HandleFunc("POST /api/v1/cache/cleanup", h.cleanupCache)
}

func (h *Handler) enhancePlace(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("placeID")
	force := r.URL.Query().Get("force") == "true"

	result := h.enhancer.EnhancePlace(r.Context(), placeID, force)
	writeJSON(w, http.StatusOK, result)
}

type fixPhotosRequest struct {
	PlaceIDs  []string `json:"placeIds"`
	BatchSize int      `json:"batchSize"`
	DelayMs   int      `json:"delayMs"`
}

func (h *Handler) fixPhotos(w http.ResponseWriter, r *http.Request) {
	var req fixPhotosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.PlaceIDs) == 0 {
		writeError(w, http.StatusBadRequest, "placeIds is required")
		return
	}

	delay := usecase.PhotoFixDelay
	if req.DelayMs > 0 {
		delay = time.Duration(req.DelayMs) * time.Millisecond
	}

	summary := h.enhancer.FixPhotoStructures(r.Context(), req.PlaceIDs, req.BatchSize, pacer.NewIntervalPacer(delay))
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) findCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.sweeper.FindPlacesNeedingEnhancement(r.Context())
	if err != nil {
		h.logger.Error("Candidate query failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":      len(candidates),
		"candidates": candidates,
	})
}

type runMigrationRequest struct {
	BatchSize             int  `json:"batchSize"`
	DelayBetweenBatchesMs int  `json:"delayBetweenBatchesMs"`
	DryRun                bool `json:"dryRun"`
}

func (h *Handler) runMigration(w http.ResponseWriter, r *http.Request) {
	var req runMigrationRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	opts := entity.MigrationOptions{
		BatchSize:           req.BatchSize,
		DelayBetweenBatches: time.Duration(req.DelayBetweenBatchesMs) * time.Millisecond,
		DryRun:              req.DryRun,
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = usecase.DefaultBatchSize
	}
	if opts.DelayBetweenBatches <= 0 {
		opts.DelayBetweenBatches = usecase.DefaultBatchDelay
	}

	report, err := h.sweeper.MigrateCuratedListPlaces(r.Context(), opts)
	if err != nil {
		h.logger.Error("Migration failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(templates.FormatMigrationReport(report)))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	summary, err := h.sweeper.ValidateEnhancement(r.Context())
	if err != nil {
		h.logger.Error("Validation query failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) cleanupCache(w http.ResponseWriter, r *http.Request) {
	removed, err := h.janitor.SweepOnce(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
