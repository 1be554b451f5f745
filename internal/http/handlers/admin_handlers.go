package handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/indraprashad/Adhikari-tech-solution/internal/http/middleware"
	"github.com/indraprashad/Adhikari-tech-solution/internal/services"
	"github.com/rs/zerolog"
)

// AdminHandlers serve the back office. Every route sits behind the route guard.
type AdminHandlers struct {
	Services  *services.ServiceManager
	Projects  *services.ProjectManager
	Blogs     *services.BlogManager
	Requests  *services.HireRequestService
	Profile   *services.ProfileService
	Dashboard *services.DashboardService
	Log       zerolog.Logger
}

var dashboardPage = template.Must(template.New("dashboard").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>Dashboard</title></head>
<body>
<h1>Dashboard</h1>
<p>Signed in as {{.Email}}</p>
<ul>
<li>Services: {{.Stats.Services}}</li>
<li>Projects: {{.Stats.Projects}}</li>
<li>Blog posts: {{.Stats.Blogs}}</li>
<li>Pending hire requests: {{.Stats.PendingRequests}}</li>
</ul>
</body></html>`))

// Register mounts the JSON API under g
func (h *AdminHandlers) Register(g gin.IRoutes) {
	Resource[services.ServiceInput, domain.Service]{
		List: h.Services.List, Create: h.Services.Create, Update: h.Services.Update, Delete: h.Services.Delete, Log: h.Log,
	}.Register(g, "/services")
	Resource[services.ProjectInput, domain.Project]{
		List: h.Projects.List, Create: h.Projects.Create, Update: h.Projects.Update, Delete: h.Projects.Delete, Log: h.Log,
	}.Register(g, "/projects")
	Resource[services.BlogInput, domain.Blog]{
		List: h.Blogs.List, Create: h.Blogs.Create, Update: h.Blogs.Update, Delete: h.Blogs.Delete, Log: h.Log,
	}.Register(g, "/blogs")

	g.PATCH("/blogs/:id/publish", h.TogglePublished)
	g.GET("/hire-requests", h.ListRequests)
	g.PATCH("/hire-requests/:id/status", h.UpdateRequestStatus)
	g.GET("/stats", h.Stats)
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.SaveProfile)
}

// Page renders the dashboard screen
func (h *AdminHandlers) Page(c *gin.Context) {
	st, _ := middleware.State(c)
	stats, err := h.Dashboard.Stats(c.Request.Context())
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	var buf bytes.Buffer
	email := ""
	if st.Session != nil {
		email = st.Session.Email
	}
	if err := dashboardPage.Execute(&buf, gin.H{"Email": email, "Stats": stats}); err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// TogglePublished flips a blog post between draft and published
func (h *AdminHandlers) TogglePublished(c *gin.Context) {
	published, err := h.Blogs.TogglePublished(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": c.Param("id"), "published": published}})
}

// ListRequests lists hire requests, newest first
func (h *AdminHandlers) ListRequests(c *gin.Context) {
	rows, err := h.Requests.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

type statusRequest struct {
	Status domain.HireRequestStatus `json:"status" binding:"required"`
}

// UpdateRequestStatus moves a hire request through its lifecycle
func (h *AdminHandlers) UpdateRequestStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Requests.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": c.Param("id"), "status": req.Status}})
}

// Stats returns the dashboard counters
func (h *AdminHandlers) Stats(c *gin.Context) {
	stats, err := h.Dashboard.Stats(c.Request.Context())
	if err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func signedInUser(c *gin.Context) string {
	if st, ok := middleware.State(c); ok && st.Session != nil {
		return st.Session.UserID
	}
	return ""
}

// GetProfile returns the signed-in user's profile
func (h *AdminHandlers) GetProfile(c *gin.Context) {
	profile, err := h.Profile.Get(c.Request.Context(), signedInUser(c))
	if err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// SaveProfile updates the signed-in user's profile, creating it when missing
func (h *AdminHandlers) SaveProfile(c *gin.Context) {
	var in services.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, err := h.Profile.Save(c.Request.Context(), signedInUser(c), in)
	if err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile})
}
