package screens

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// StaticFiles serves the browser client from dir. Paths that are not files
// fall back to index.html so client-side routes load the app.
func StaticFiles(c *gin.Context, dir string) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusNotFound)
		return
	}
	path := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		c.File(path)
		return
	}
	c.File(filepath.Join(dir, "index.html"))
}
