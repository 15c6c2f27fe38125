package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/claimsight/claimsight/internal/core/ports"
	"github.com/claimsight/claimsight/internal/observability/metrics"
)

const serviceName = "api"

// maxUploadBytes caps multipart uploads; statement scans are photos, not
// archives.
const maxUploadBytes = 32 << 20

type Router struct {
	ingestUC ports.ClaimIngestor
	reader   ports.ClaimReader
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(
	ingestUC ports.ClaimIngestor,
	reader ports.ClaimReader,
	serverMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		ingestUC: ingestUC,
		reader:   reader,
		metrics:  serverMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/claims", rt.uploadClaim)
	mux.HandleFunc("/v1/claims/", rt.getClaimByID)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadClaim(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	claim, err := rt.ingestUC.Upload(r.Context(), fileHeader.Filename, mimeType, file)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordClaimReceived(serviceName, mimeType, fileHeader.Size)
	}
	writeJSON(w, http.StatusAccepted, claim)
}

func (rt *Router) getClaimByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/claims/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "claim id is required"})
		return
	}

	claim, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, claim)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
