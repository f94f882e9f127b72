package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/terminal-bench/buckwave/internal/models"
	"github.com/terminal-bench/buckwave/internal/services/chart"
	"github.com/terminal-bench/buckwave/internal/services/export"
	"github.com/terminal-bench/buckwave/internal/services/waveform"
)

// invalidParametersMessage is the fixed body for rejected parameters.
const invalidParametersMessage = "Invalid input parameters"

// SimulationHandler handles waveform requests
type SimulationHandler struct{}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler() *SimulationHandler {
	return &SimulationHandler{}
}

// Simulate returns one switching period of time, voltage and current samples.
func (h *SimulationHandler) Simulate(c *gin.Context) {
	p, ok := bindParameters(c)
	if !ok {
		return
	}

	result, err := waveform.Simulate(p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Summary returns the operating point and the extent of the generated waveform.
func (h *SimulationHandler) Summary(c *gin.Context) {
	p, ok := bindParameters(c)
	if !ok {
		return
	}

	result, err := waveform.Simulate(p)
	if err != nil {
		respondError(c, err)
		return
	}
	summary := waveform.Summarize(p.OperatingPoint(), result)
	if err := summary.CheckFinite(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Export returns the generated waveform as an XLSX or CSV attachment.
func (h *SimulationHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": export.ErrUnsupportedFormat.Error()})
		return
	}

	p, ok := bindParameters(c)
	if !ok {
		return
	}

	result, err := waveform.Simulate(p)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, p, result); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+format.Filename()+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// Chart renders the waveform as an HTML page. Parameters come from the
// query string so the page can be linked to.
func (h *SimulationHandler) Chart(c *gin.Context) {
	req, err := models.RequestFromValues(c.GetQuery)
	if err != nil {
		respondError(c, err)
		return
	}
	p, err := req.Parameters()
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := waveform.Simulate(p)
	if err != nil {
		respondError(c, err)
		return
	}

	page := &chart.Page{Parameters: p, Result: result}
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// bindParameters decodes the JSON body into parameters; range checks are
// left to waveform.Simulate. On failure the response has been written and
// ok is false.
func bindParameters(c *gin.Context) (waveform.Parameters, bool) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return waveform.Parameters{}, false
	}
	p, err := req.Parameters()
	if err != nil {
		respondError(c, err)
		return waveform.Parameters{}, false
	}
	return p, true
}

// respondError records err for the request log and writes the error body:
// 400 for parameters outside their domain, 500 for everything else.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	if errors.Is(err, waveform.ErrInvalidParameter) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidParametersMessage})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
