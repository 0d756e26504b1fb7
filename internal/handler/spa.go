package handler

import (
	"io/fs"
	"net/http"
)

// SPAHandler serves the frontend shell for every path the router does not own.
type SPAHandler struct {
	static fs.FS
}

// NewSPAHandler creates a new SPAHandler over a filesystem containing index.html.
func NewSPAHandler(static fs.FS) *SPAHandler { return &SPAHandler{static: static} }

// Index serves index.html. The shell is never cached so a redeploy is picked
// up on the next load.
func (h *SPAHandler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(h.static, "index.html")
	if err != nil {
		http.Error(w, "index.html not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}
