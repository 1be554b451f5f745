package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/rs/zerolog"
)

// FunctionHandlers expose the function runtime over HTTP
type FunctionHandlers struct {
	Functions domain.FunctionInvoker
	Log       zerolog.Logger
}

// Invoke runs the function named in the path with the request body
func (h *FunctionHandlers) Invoke(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be JSON"})
		return
	}

	out, err := h.Functions.Invoke(c.Request.Context(), c.Param("name"), json.RawMessage(body))
	if err != nil {
		status, msg := classify(err)
		if status == http.StatusInternalServerError {
			msg = err.Error()
		}
		h.Log.Warn().Err(err).Str("function", c.Param("name")).Msg("function invocation failed")
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.Data(http.StatusOK, "application/json", out)
}
