package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/indraprashad/Adhikari-tech-solution/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name          string
		path          string
		expectedLevel string
		expectedCode  int
	}{
		{"success logs info", "/ok", "info", http.StatusOK},
		{"client error logs warn", "/missing", "warn", http.StatusNotFound},
		{"server error logs error", "/boom", "error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := gin.New()
			r.Use(RequestLogger(logger.NewWithWriter(&buf, "debug", false)))
			r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
			r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

			w := serve(r, http.MethodGet, tt.path)
			require.Equal(t, tt.expectedCode, w.Code)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.expectedLevel, entry["level"])
			assert.Equal(t, tt.path, entry["path"])
			assert.Equal(t, float64(tt.expectedCode), entry["status"])
			assert.Equal(t, "http", entry["component"])
		})
	}
}
