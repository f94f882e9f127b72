package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/terminal-bench/buckwave/web"
)

// Index serves the embedded landing page.
func Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
