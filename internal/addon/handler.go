package addon

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"msa-addon/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

const jsonContentType = "application/json"

// Handler exposes the addon protocol endpoints using go-chi.
type Handler struct {
	resolver *Resolver
	manifest Manifest
	log      *slog.Logger
	metrics  *metrics.Metrics
}

// NewHandler returns a Handler serving manifest and resolving through r.
// Metrics may be nil to disable metric recording (e.g. in tests).
func NewHandler(r *Resolver, manifest Manifest, log *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{resolver: r, manifest: manifest, log: log, metrics: m}
}

// Routes mounts the protocol endpoints on r. A trailing "/{extra}.json"
// segment carries protocol extra args; they are accepted and ignored.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/manifest.json", h.GetManifest)
	r.Get("/catalog/{type}/{id}.json", h.GetCatalog)
	r.Get("/catalog/{type}/{id}/*", h.extraArgs(h.GetCatalog))
	r.Get("/meta/{type}/{id}.json", h.GetMeta)
	r.Get("/meta/{type}/{id}/*", h.extraArgs(h.GetMeta))
	r.Get("/stream/{type}/{id}.json", h.GetStream)
	r.Get("/stream/{type}/{id}/*", h.extraArgs(h.GetStream))
}

// extraArgs guards the extra-args routes. chi ends a "{param}.json" match at
// the first dot, so the segment is taken whole from the wildcard and must be
// a single path element ending in ".json".
func (h *Handler) extraArgs(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		extra := chi.URLParam(r, "*")
		name, ok := strings.CutSuffix(extra, ".json")
		if !ok || name == "" || strings.Contains(name, "/") {
			h.writeError(w, http.StatusNotFound, "not found")
			return
		}
		next(w, r)
	}
}

// GetManifest handles GET /manifest.json.
func (h *Handler) GetManifest(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.manifest)
}

// GetCatalog handles GET /catalog/{type}/{id}.json.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	catalogID := chi.URLParam(r, "id")
	if catalogID != CatalogID {
		h.log.Debug("unknown catalog requested", slog.String("catalog_id", catalogID))
		h.writeError(w, http.StatusNotFound, "unknown catalog")
		return
	}
	h.resolve(w, ResourceCatalog, "")
}

// GetMeta handles GET /meta/{type}/{id}.json.
func (h *Handler) GetMeta(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, ResourceMeta, chi.URLParam(r, "id"))
}

// GetStream handles GET /stream/{type}/{id}.json.
func (h *Handler) GetStream(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, ResourceStream, chi.URLParam(r, "id"))
}

func (h *Handler) resolve(w http.ResponseWriter, kind ResourceKind, token string) {
	body, err := h.resolver.Resolve(kind, token)
	if err != nil {
		status, outcome := classify(err)
		h.recordResolution(kind, outcome)
		if status == http.StatusInternalServerError {
			h.log.Error("resolve failed",
				slog.String("resource", string(kind)),
				slog.String("id", token),
				slog.String("error", err.Error()))
		} else {
			h.log.Info("resolve rejected",
				slog.String("resource", string(kind)),
				slog.String("id", token),
				slog.String("error", err.Error()))
		}
		h.writeError(w, status, err.Error())
		return
	}

	h.recordResolution(kind, "ok")
	h.writeJSON(w, http.StatusOK, body)
}

// classify maps a resolver error to an HTTP status and a metrics outcome label.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMalformedIdentifier):
		return http.StatusBadRequest, "malformed_identifier"
	case errors.Is(err, ErrUnknownTitle):
		return http.StatusNotFound, "unknown_title"
	case errors.Is(err, ErrUnknownEpisode):
		return http.StatusNotFound, "unknown_episode"
	case errors.Is(err, ErrFieldOverflow):
		return http.StatusInternalServerError, "field_overflow"
	default:
		return http.StatusInternalServerError, "error"
	}
}

func (h *Handler) recordResolution(kind ResourceKind, outcome string) {
	if h.metrics != nil {
		h.metrics.IncResolution(string(kind), outcome)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorBody{Error: strings.TrimSpace(msg)})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		h.log.Error("encode response failed", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(status)
	w.Write(b)
}
