package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/indraprashad/Adhikari-tech-solution/internal/mocks"
	"github.com/indraprashad/Adhikari-tech-solution/internal/services"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fixture wires real managers to mock tables
type fixture struct {
	services  *mocks.MockTable[domain.Service]
	projects  *mocks.MockTable[domain.Project]
	blogs     *mocks.MockTable[domain.Blog]
	requests  *mocks.MockTable[domain.HireRequest]
	profiles  *mocks.MockProfileRepository
	storage   *mocks.MockFileStorage
	functions *mocks.MockFunctionInvoker
	auth      *mocks.MockAuthService

	public *PublicHandlers
	admin  *AdminHandlers
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zerolog.Nop()

	f := &fixture{
		services:  mocks.NewMockTable[domain.Service]("services"),
		projects:  mocks.NewMockTable[domain.Project]("projects"),
		blogs:     mocks.NewMockTable[domain.Blog]("blogs"),
		requests:  mocks.NewMockTable[domain.HireRequest]("hire_requests"),
		profiles:  mocks.NewMockProfileRepository(),
		storage:   mocks.NewMockFileStorage(),
		functions: mocks.NewMockFunctionInvoker(),
		auth:      mocks.NewMockAuthService(),
	}

	serviceMgr := services.NewServiceManager(f.services, 0, log)
	projectMgr := services.NewProjectManager(f.projects, 0, log)
	blogMgr := services.NewBlogManager(f.blogs, 0, log)
	requestSvc := services.NewHireRequestService(f.requests, f.storage, f.functions, "company-licenses", services.HireTimeouts{}, log)
	dashboard := services.NewDashboardService(f.services, f.projects, f.blogs, f.requests, f.profiles, 0)

	f.public = &PublicHandlers{
		Services:   serviceMgr,
		Projects:   projectMgr,
		Blogs:      blogMgr,
		Requests:   requestSvc,
		Dashboard:  dashboard,
		MaxLicense: 1 << 20,
		Log:        log,
	}
	f.admin = &AdminHandlers{
		Services:  serviceMgr,
		Projects:  projectMgr,
		Blogs:     blogMgr,
		Requests:  requestSvc,
		Profile:   services.NewProfileService(f.profiles, f.auth, 0, log),
		Dashboard: dashboard,
		Log:       log,
	}
	return f
}

func (f *fixture) publicRouter() *gin.Engine {
	r := gin.New()
	f.public.Register(r.Group("/api"))
	return r
}

func (f *fixture) adminRouter() *gin.Engine {
	r := gin.New()
	f.admin.Register(r.Group("/admin/api"))
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// multipartFile is one file part of a form
type multipartFile struct {
	field, name, contentType string
	data                     []byte
}

func doMultipart(t *testing.T, r http.Handler, path string, fields map[string]string, file *multipartFile) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.name+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(file.data))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}
