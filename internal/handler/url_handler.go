package handler

import (
	"embed"
	"encoding/json"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/linkshorter/linkshorter/internal/auth"
	"github.com/linkshorter/linkshorter/internal/errors"
	"github.com/linkshorter/linkshorter/internal/model"
	"github.com/linkshorter/linkshorter/internal/service"
	"github.com/linkshorter/linkshorter/internal/validator"
)

//go:embed pages/404.html
var page404 string

//go:embed pages/302.html
var page302 string

//go:embed static
var staticFiles embed.FS

const statusMessage = "Welcome! Administrator. The link shorter service is running."

// Options control the HTTP surface: CORS headers on JSON responses and
// the referrer-suppressing redirect mode.
type Options struct {
	CORS  bool
	NoRef bool
}

// URLHandler handles HTTP requests for short link operations
type URLHandler struct {
	service  *service.ShortenerService
	verifier *auth.Verifier
	opts     Options
	assets   fs.FS
}

// NewURLHandler creates a new handler instance
func NewURLHandler(svc *service.ShortenerService, verifier *auth.Verifier, opts Options) *URLHandler {
	assets, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err) // embedded directory is known at compile time
	}

	return &URLHandler{
		service:  svc,
		verifier: verifier,
		opts:     opts,
		assets:   assets,
	}
}

// ============ ROUTER SETUP ============

// SetupRoutes configures all HTTP routes. Every method is dispatched to
// exactly one handler; anything else gets a 405.
func (h *URLHandler) SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Options("/*", h.HandleOptions)
	r.Post("/*", h.HandleCreate)
	r.Get("/*", h.HandleRedirect)
	r.Delete("/*", h.HandleDelete)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, errors.MethodNotAllowed())
	})

	return r
}

// ============ HANDLERS ============

// HandleOptions answers CORS preflight requests with an empty body.
// OPTIONS any
func (h *URLHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	h.setJSONHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreate serves every POST route: the api-auth status check, the
// body-based delete endpoint, and short link creation (with the path as
// custom key when one is present).
// POST /{custom_key}
func (h *URLHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errors.InvalidJSON())
		return
	}

	if !h.verifier.Verify(auth.ExtractPassword(r, req.Password)) {
		h.writeError(w, errors.InvalidPassword())
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/")

	// Administrative routes
	switch path {
	case "api-auth":
		h.writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Data: statusMessage})
		return
	case "api-del":
		h.deleteShortKey(w, r, req.ShortKey)
		return
	}

	// Path-based custom keys take precedence over the body field
	customKey := req.CustomKey
	if path != "" && path != "r" && !strings.Contains(path, "/") {
		customKey = path
	}

	shortKey, err := h.service.Create(r.Context(), req.URL, customKey)
	if err != nil {
		switch err {
		case service.ErrInvalidURL:
			h.writeError(w, errors.InvalidURL())
		case service.ErrKeyReserved:
			h.writeError(w, errors.KeyReserved())
		case service.ErrKeyFormat:
			h.writeError(w, errors.KeyFormat())
		case service.ErrKeyTaken:
			h.writeError(w, errors.KeyTaken())
		default:
			h.writeError(w, errors.Internal())
		}
		return
	}

	h.writeJSON(w, http.StatusOK, model.CreateResponse{
		Success:     true,
		ShortKey:    shortKey,
		ShortURL:    baseURL(r) + "/" + shortKey,
		OriginalURL: req.URL,
	})
}

// HandleRedirect resolves the first path segment as a short key.
// GET /{key}
func (h *URLHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	key, _, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")

	if key == "" || validator.IsGetBlockedKey(key) {
		h.notFoundPage(w)
		return
	}
	if validator.IsReservedKey(key) {
		h.serveAsset(w, r, key)
		return
	}

	target, err := h.service.Resolve(r.Context(), key, r.URL.RawQuery)
	if err != nil {
		if err == service.ErrKeyNotFound {
			h.notFoundPage(w)
			return
		}
		h.writeError(w, errors.Internal())
		return
	}

	if h.opts.NoRef {
		h.writeHTML(w, http.StatusOK, strings.ReplaceAll(page302, "{url}", target))
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// HandleDelete removes a short link addressed by path.
// DELETE /{key}
func (h *URLHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	// A missing or malformed body is fine here; auth may come from the
	// Authorization header alone.
	var req model.ShortenRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if !h.verifier.Verify(auth.ExtractPassword(r, req.Password)) {
		h.writeError(w, errors.InvalidPassword())
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/")
	if key == "" || strings.Contains(key, "/") || validator.IsReservedKey(key) {
		h.writeError(w, errors.DeleteReserved())
		return
	}

	h.deleteKey(w, r, key)
}

// deleteShortKey handles the body-based delete route (POST /api-del).
func (h *URLHandler) deleteShortKey(w http.ResponseWriter, r *http.Request, shortKey string) {
	if shortKey == "" {
		h.writeError(w, errors.MissingShortKey())
		return
	}
	h.deleteKey(w, r, shortKey)
}

func (h *URLHandler) deleteKey(w http.ResponseWriter, r *http.Request, key string) {
	if err := h.service.Delete(r.Context(), key); err != nil {
		if err == service.ErrKeyNotFound {
			h.writeError(w, errors.KeyNotFound())
			return
		}
		h.writeError(w, errors.Internal())
		return
	}
	h.writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Data: "Deleted successfully."})
}

// ============ RESPONSE HELPERS ============

func (h *URLHandler) setJSONHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	if h.opts.CORS {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	}
}

func (h *URLHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	h.setJSONHeaders(w)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *URLHandler) writeError(w http.ResponseWriter, appErr *errors.AppError) {
	if h.opts.CORS {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	}
	appErr.WriteJSON(w)
}

func (h *URLHandler) writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html;charset=UTF-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func (h *URLHandler) notFoundPage(w http.ResponseWriter) {
	h.writeHTML(w, http.StatusNotFound, page404)
}

// serveAsset serves an asset-backed reserved name from the embedded
// static files, or the not-found page when no asset exists for it.
// Written out by hand because http.ServeFileFS redirects index.html.
func (h *URLHandler) serveAsset(w http.ResponseWriter, r *http.Request, name string) {
	data, err := fs.ReadFile(h.assets, name)
	if err != nil {
		h.notFoundPage(w)
		return
	}

	ctype := mime.TypeByExtension(path.Ext(name))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", ctype)
	w.Write(data)
}

// baseURL reconstructs the scheme and host the request arrived on.
func baseURL(r *http.Request) string {
	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}
	return scheme + "://" + r.Host
}
