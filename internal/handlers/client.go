package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const clientIndex = "index.html"

// registerClient serves the built single-page client. Unknown GET paths
// outside the API fall back to index.html so client-side routes resolve.
func (h *Handler) registerClient(r *gin.Engine) {
	index := filepath.Join(h.clientDir, clientIndex)
	r.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || strings.HasPrefix(path, "/api/") {
			jsonMessage(c, http.StatusNotFound, "not found")
			return
		}

		if file, ok := h.clientFile(path); ok {
			c.File(file)
			return
		}
		c.File(index)
	})
}

// clientFile resolves path to a regular file inside the client directory.
func (h *Handler) clientFile(path string) (string, bool) {
	clean := filepath.Clean("/" + path)
	if clean == "/" {
		return "", false
	}
	full := filepath.Join(h.clientDir, filepath.FromSlash(clean))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", false
	}
	return full, true
}
