package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/indraprashad/Adhikari-tech-solution/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func companyFields() map[string]string {
	return map[string]string{
		"type":            "company",
		"company_name":    "Acme Pvt Ltd",
		"company_email":   "hr@acme.test",
		"company_contact": "9800000000",
		"reason":          "Build our booking platform",
	}
}

func TestPublicHandlers_SubmitHireRequestLicenseTypes(t *testing.T) {
	tests := []struct {
		name           string
		file           *multipartFile
		expectedStatus int
		expectedUpload string
	}{
		{
			name:           "pdf license",
			file:           &multipartFile{field: "company_license", name: "license.pdf", contentType: "application/pdf", data: []byte("%PDF-1.4")},
			expectedStatus: http.StatusCreated,
			expectedUpload: "application/pdf",
		},
		{
			name:           "jpeg license",
			file:           &multipartFile{field: "company_license", name: "license.jpg", contentType: "image/jpeg", data: []byte{0xff, 0xd8}},
			expectedStatus: http.StatusCreated,
			expectedUpload: "image/jpeg",
		},
		{
			name:           "octet stream resolved by extension",
			file:           &multipartFile{field: "company_license", name: "license.png", contentType: "application/octet-stream", data: []byte{0x89, 'P', 'N', 'G'}},
			expectedStatus: http.StatusCreated,
			expectedUpload: "image/png",
		},
		{
			name:           "word document rejected",
			file:           &multipartFile{field: "company_license", name: "license.docx", contentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", data: []byte("PK")},
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "no license",
			expectedStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			w := doMultipart(t, f.publicRouter(), "/api/hire-requests", companyFields(), tt.file)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			objects := f.storage.Objects()
			if tt.expectedUpload == "" {
				assert.Empty(t, objects)
			} else {
				require.Len(t, objects, 1)
				assert.Equal(t, "company-licenses", objects[0].Bucket)
				assert.Equal(t, tt.expectedUpload, objects[0].ContentType)
				assert.Equal(t, tt.file.data, objects[0].Data)
			}

			if tt.expectedStatus != http.StatusCreated {
				assert.Equal(t, "Please upload a PDF, PNG, or JPEG file.", errorMessage(t, w))
				assert.Empty(t, f.requests.Inserted(), "rejected uploads must not store a request")
				assert.Empty(t, f.functions.Calls())
				return
			}
			rows := f.requests.Inserted()
			require.Len(t, rows, 1)
			assert.Equal(t, domain.HireStatusPending, rows[0].Status)
			if tt.expectedUpload != "" {
				assert.True(t, strings.HasPrefix(rows[0].CompanyLicenseURL, "http://storage.test/company-licenses/"))
			}
		})
	}
}

func TestPublicHandlers_SubmitHireRequestJSON(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "personal request",
			body: map[string]string{
				"type": "personal", "name": "Sita", "email": "sita@example.com",
				"contact": "9811111111", "reason": "Portfolio site",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "unknown type",
			body:           map[string]string{"type": "agency", "reason": "x"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad email",
			body: map[string]string{
				"type": "personal", "name": "Sita", "email": "not-an-email",
				"contact": "9811111111", "reason": "Portfolio site",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			w := doJSON(f.publicRouter(), http.MethodPost, "/api/hire-requests", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestPublicHandlers_NotificationFailureStillSucceeds(t *testing.T) {
	f := newFixture(t)
	f.functions.InvokeFunc = func(ctx context.Context, name string, body any) ([]byte, error) {
		return nil, errors.New("resend: 500")
	}
	before := testutil.ToFloat64(metrics.NotificationFailures)

	w := doMultipart(t, f.publicRouter(), "/api/hire-requests", companyFields(), nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, f.requests.Inserted(), 1)
	require.Len(t, f.functions.Calls(), 1)
	assert.Equal(t, "send-hire-notification", f.functions.Calls()[0].Name)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.NotificationFailures))
}

func TestPublicHandlers_LicenseTooLarge(t *testing.T) {
	f := newFixture(t)
	f.public.MaxLicense = 4

	file := &multipartFile{field: "company_license", name: "license.pdf", contentType: "application/pdf", data: []byte("%PDF-1.4 long")}
	w := doMultipart(t, f.publicRouter(), "/api/hire-requests", companyFields(), file)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Empty(t, f.storage.Objects())
}

func TestPublicHandlers_Blogs(t *testing.T) {
	f := newFixture(t)
	f.blogs.SelectFunc = func(ctx context.Context, q domain.Query) ([]domain.Blog, error) {
		for _, flt := range q.Filters {
			if flt.Column == "slug" && flt.Value == "hello-world" {
				return []domain.Blog{{ID: "b1", Slug: "hello-world", Title: "Hello", Published: true}}, nil
			}
			if flt.Column == "slug" {
				return nil, nil
			}
		}
		return []domain.Blog{{ID: "b1", Slug: "hello-world", Title: "Hello", Published: true}}, nil
	}
	r := f.publicRouter()

	t.Run("list published posts", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/blogs", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "hello-world")

		queries := f.blogs.Queries()
		require.NotEmpty(t, queries)
		assert.Contains(t, queries[len(queries)-1].Filters, domain.Eq("published", true))
	})

	t.Run("by slug", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/blogs/hello-world", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"Hello"`)
	})

	t.Run("unknown slug", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/blogs/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
