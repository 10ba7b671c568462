package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hazyhaar/crosswalk/pkg/kit"
	"github.com/hazyhaar/crosswalk/pkg/match"
)

// DefaultThreshold is the similarity cutoff applied when a matches query
// carries no threshold parameter. The engine itself accepts any value in
// [0,1]; this is only the handler's default.
const DefaultThreshold = 0.65

// NewRouter returns an http.Handler with all crosswalk API routes.
func NewRouter(sessions *Sessions, endpoints Endpoints) http.Handler {
	mux := http.NewServeMux()
	h := &handler{endpoints: endpoints, sessions: sessions}

	mux.HandleFunc("GET /v1/health", h.handleHealth)
	mux.HandleFunc("GET /v1/session", h.handleStatus)
	mux.HandleFunc("POST /v1/session/raw", h.handleImportRaw)
	mux.HandleFunc("POST /v1/session/clean", h.handleAddClean)
	mux.HandleFunc("POST /v1/session/save", h.handleSave)
	mux.HandleFunc("POST /v1/session/load", h.handleLoad)
	mux.HandleFunc("GET /v1/matches", h.handleMatches)
	mux.HandleFunc("GET /v1/suggest", h.handleSuggest)
	mux.HandleFunc("POST /v1/assign", h.handleAssign)
	mux.HandleFunc("POST /v1/assign/bulk", h.handleAssignBulk)
	mux.HandleFunc("GET /v1/export", h.handleExport)

	return cors(identify(mux))
}

type handler struct {
	endpoints Endpoints
	sessions  *Sessions
}

// --- health ---

type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Sessions: h.sessions.Count()})
}

// --- session status / persistence ---

func (h *handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.endpoints.Status, nil)
}

func (h *handler) handleSave(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.endpoints.SaveSession, nil)
}

func (h *handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.endpoints.LoadSession, nil)
}

// --- imports (newline-delimited text bodies) ---

func (h *handler) handleImportRaw(w http.ResponseWriter, r *http.Request) {
	lines, ok := readLineBody(w, r)
	if !ok {
		return
	}
	h.respond(w, r, h.endpoints.ImportRaw, &importReq{Lines: lines})
}

func (h *handler) handleAddClean(w http.ResponseWriter, r *http.Request) {
	lines, ok := readLineBody(w, r)
	if !ok {
		return
	}
	h.respond(w, r, h.endpoints.AddClean, &importReq{Lines: lines})
}

// readLineBody reads a newline-delimited request body, honouring an
// optional ?encoding= source charset.
func readLineBody(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 8*1024*1024) // 8 MiB max
	lines, err := match.ReadLines(r.Body, r.URL.Query().Get("encoding"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return lines, true
}

// --- matching ---

func (h *handler) handleMatches(w http.ResponseWriter, r *http.Request) {
	threshold := DefaultThreshold
	if v := r.URL.Query().Get("threshold"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid threshold")
			return
		}
		threshold = t
	}
	h.respond(w, r, h.endpoints.FilterMatches, &filterReq{
		Term:      r.URL.Query().Get("term"),
		Threshold: threshold,
	})
}

func (h *handler) handleSuggest(w http.ResponseWriter, r *http.Request) {
	req := &suggestReq{
		Term:     r.URL.Query().Get("term"),
		Limit:    match.DefaultSuggestLimit,
		MinScore: match.DefaultSuggestMinScore,
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		req.Limit = n
	}
	if v := r.URL.Query().Get("min_score"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid min_score")
			return
		}
		req.MinScore = f
	}
	h.respond(w, r, h.endpoints.SuggestNames, req)
}

// --- assignment ---

func (h *handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req assignReq
	if !decodeJSON(w, r, &req) {
		return
	}
	h.respond(w, r, h.endpoints.AssignOne, &req)
}

func (h *handler) handleAssignBulk(w http.ResponseWriter, r *http.Request) {
	var req assignBulkReq
	if !decodeJSON(w, r, &req) {
		return
	}
	h.respond(w, r, h.endpoints.AssignBulk, &req)
}

// --- export ---

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.ForUser(kit.GetUserID(r.Context()))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="matches.csv"`)
	match.WriteExport(w, sess.RawInputs(), sess.Matches())
}

// --- helpers ---

func (h *handler) respond(w http.ResponseWriter, r *http.Request, endpoint kit.Endpoint, req any) {
	resp, err := endpoint(r.Context(), req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, match.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, match.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024) // 64 KiB max
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// identify stamps the caller id from the X-User-ID header onto the context.
func identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Header.Get("X-User-ID")
		if user == "" {
			user = AnonymousUser
		}
		next.ServeHTTP(w, r.WithContext(kit.WithUserID(r.Context(), user)))
	})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-User-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
