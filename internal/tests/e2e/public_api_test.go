package e2e

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
)

func TestPublicAPI_PublishedBlogIsReadable(t *testing.T) {
	s := SetupTestSuite(t)
	s.CreateConfirmedAccount(t, adminEmail, "Indra Prashad")

	operator := s.NewVisitor(t)
	operator.SignIn(adminEmail)
	operator.AwaitAdmin(isDashboard)

	resp := operator.PostJSON("/admin/api/blogs", map[string]any{
		"title":   "Shipping Go services",
		"content": "Notes from the field",
		"slug":    "shipping-go-services",
	})
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	var created struct {
		Data domain.Blog `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &created))
	assert.False(t, created.Data.Published)

	reader := s.NewVisitor(t)
	assert.Equal(t, http.StatusNotFound, reader.Get("/api/blogs/shipping-go-services").Status, "drafts stay hidden")

	resp = operator.SendJSON(http.MethodPatch, "/admin/api/blogs/"+created.Data.ID+"/publish", nil)
	require.Equal(t, http.StatusOK, resp.Status, resp.Body)
	assert.JSONEq(t, `{"data":{"id":"`+created.Data.ID+`","published":true}}`, resp.Body)

	resp = reader.Get("/api/blogs/shipping-go-services")
	require.Equal(t, http.StatusOK, resp.Status, resp.Body)
	assert.Contains(t, resp.Body, "Shipping Go services")

	list := reader.Get("/api/blogs")
	assert.Equal(t, http.StatusOK, list.Status)
	assert.Contains(t, list.Body, "shipping-go-services")
}

func TestPublicAPI_AnonymousCannotWrite(t *testing.T) {
	s := SetupTestSuite(t)
	v := s.NewVisitor(t)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"read services", http.MethodGet, "/api/services", http.StatusOK},
		{"read projects", http.MethodGet, "/api/projects", http.StatusOK},
		{"write services", http.MethodPost, "/admin/api/services", http.StatusUnauthorized},
		{"delete blog", http.MethodDelete, "/admin/api/blogs/some-id", http.StatusUnauthorized},
		{"invoke function", http.MethodPost, "/functions/v1/send-hire-notification", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := v.SendJSON(tt.method, tt.path, map[string]string{"title": "x"})
			assert.Equal(t, tt.expectedStatus, resp.Status, resp.Body)
		})
	}
}

func TestPublicAPI_HealthAndMetrics(t *testing.T) {
	s := SetupTestSuite(t)
	v := s.NewVisitor(t)

	health := v.Get("/health")
	assert.Equal(t, http.StatusOK, health.Status)

	metrics := v.Get("/metrics")
	assert.Equal(t, http.StatusOK, metrics.Status)
	assert.Contains(t, metrics.Body, "portfolio_")
}
