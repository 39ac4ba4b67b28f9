// api.go
package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"welldash/internal/well"
)

// Version is reported by the health endpoint.
var Version = "1.0.0"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   Version,
		"wells":     a.project.Len(),
		"stale":     a.Stale(),
	})
}

func (a *App) wellsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: a.project.Options()})
}

// statsHandler summarizes every curve of a well, derived velocities included
// when the well has the sonic curves to compute them.
func (a *App) statsHandler(w http.ResponseWriter, r *http.Request) {
	wl, ok := a.wellFromPath(w, r)
	if !ok {
		return
	}
	t := wl.Table()
	if derived, err := well.Derive(t); err == nil {
		t = derived
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    wellStats{Well: wl.Name, Curves: well.Summarize(t)},
	})
}
