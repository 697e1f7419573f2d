package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/meditation-api/internal/api/shared"
	"github.com/phrazzld/meditation-api/internal/domain"
	"github.com/phrazzld/meditation-api/internal/platform/logger"
	"github.com/phrazzld/meditation-api/internal/service"
)

// ScriptHandler handles script and section HTTP requests
type ScriptHandler struct {
	scriptService service.ScriptService
	logger        *slog.Logger
}

// NewScriptHandler creates a new ScriptHandler
func NewScriptHandler(scriptService service.ScriptService, logger *slog.Logger) *ScriptHandler {
	if scriptService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("scriptService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScriptHandler{
		scriptService: scriptService,
		logger:        logger.With(slog.String("component", "script_handler")),
	}
}

// CreateScript handles POST /api/scripts requests
func (h *ScriptHandler) CreateScript(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateScriptRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, decodeError(err), "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, SanitizeValidationError(err))
		return
	}

	id, err := h.scriptService.CreateScript(r.Context(), userID, req.ToInput())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, IDResponse{ID: id})
}

// UpdateScript handles PATCH /api/scripts/{id} requests
func (h *ScriptHandler) UpdateScript(w http.ResponseWriter, r *http.Request) {
	userID, scriptID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateScriptRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, decodeError(err), "Invalid request format")
		return
	}

	id, err := h.scriptService.UpdateScript(r.Context(), userID, scriptID, req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, IDResponse{ID: id})
}

// ListScripts handles GET /api/scripts requests
func (h *ScriptHandler) ListScripts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	params, err := parseListParams(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	page, err := h.scriptService.ListScripts(r.Context(), userID, params)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("listed scripts",
		slog.Int("total", page.Total),
		slog.Int("returned", len(page.Items)))
	shared.RespondWithData(w, r, http.StatusOK, page)
}

// parseListParams reads page, pageSize, focusArea and isFavorite from the
// query string. Missing values are left zero for the service defaults.
func parseListParams(r *http.Request) (service.ListScriptsParams, error) {
	q := r.URL.Query()
	var params service.ListScriptsParams

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return params, domain.NewValidationError("page", "must be a positive integer", domain.ErrNotPositive)
		}
		params.Page = n
	}
	if v := q.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return params, domain.NewValidationError("pageSize", "must be a positive integer", domain.ErrNotPositive)
		}
		params.PageSize = n
	}
	if q.Has("focusArea") {
		focus := q.Get("focusArea")
		params.FocusArea = &focus
	}
	if v := q.Get("isFavorite"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return params, domain.NewValidationError("isFavorite", "must be true or false", nil)
		}
		params.IsFavorite = &b
	}
	return params, nil
}

// GetScript handles GET /api/scripts/{id} requests
func (h *ScriptHandler) GetScript(w http.ResponseWriter, r *http.Request) {
	userID, scriptID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.scriptService.GetScriptWithSections(r.Context(), userID, scriptID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, result)
}

// UpsertSection handles PUT /api/scripts/{scriptId}/sections requests
func (h *ScriptHandler) UpsertSection(w http.ResponseWriter, r *http.Request) {
	userID, scriptID, ok := handleUserIDAndPathUUID(w, r, "scriptId")
	if !ok {
		return
	}

	var req UpsertSectionRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, decodeError(err), "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, SanitizeValidationError(err))
		return
	}
	// The path names the script; a body scriptId may only repeat it
	if req.ScriptID != nil && *req.ScriptID != scriptID {
		HandleAPIError(w, r, domain.NewValidationError("scriptId", "does not match the path", domain.ErrInvalidID), "")
		return
	}

	sectionID, err := h.scriptService.UpsertSection(r.Context(), userID, service.SectionInput{
		ID:            req.ID,
		ScriptID:      scriptID,
		SectionUpdate: req.ToUpdate(),
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, SectionIDResponse{SectionID: sectionID})
}

// DeleteSection handles DELETE /api/sections/{id} requests
func (h *ScriptHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	userID, sectionID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	id, err := h.scriptService.DeleteSection(r.Context(), userID, sectionID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, IDResponse{ID: id})
}
