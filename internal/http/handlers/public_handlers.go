package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/indraprashad/Adhikari-tech-solution/internal/services"
	"github.com/rs/zerolog"
)

// PublicHandlers serve the public pages and the hire form
type PublicHandlers struct {
	Services   *services.ServiceManager
	Projects   *services.ProjectManager
	Blogs      *services.BlogManager
	Requests   *services.HireRequestService
	Dashboard  *services.DashboardService
	MaxLicense int64
	Log        zerolog.Logger
}

// Register mounts the public API under g
func (h *PublicHandlers) Register(g gin.IRoutes) {
	g.GET("/services", h.ListServices)
	g.GET("/projects", h.ListProjects)
	g.GET("/blogs", h.ListBlogs)
	g.GET("/blogs/:slug", h.GetBlog)
	g.GET("/profile", h.Profile)
	g.POST("/hire-requests", h.SubmitHireRequest)
}

func (h *PublicHandlers) ListServices(c *gin.Context) {
	rows, err := h.Services.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (h *PublicHandlers) ListProjects(c *gin.Context) {
	rows, err := h.Projects.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// ListBlogs returns published posts only
func (h *PublicHandlers) ListBlogs(c *gin.Context) {
	rows, err := h.Blogs.Published(c.Request.Context())
	if err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (h *PublicHandlers) GetBlog(c *gin.Context) {
	post, err := h.Blogs.BySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

// Profile returns the visitor's profile, or the site owner's when there is none
func (h *PublicHandlers) Profile(c *gin.Context) {
	out, err := h.Dashboard.PublicProfile(c.Request.Context(), signedInUser(c))
	if err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// SubmitHireRequest accepts the hire form as multipart or JSON
func (h *PublicHandlers) SubmitHireRequest(c *gin.Context) {
	var sub services.HireSubmission

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		fh, err := c.FormFile("company_license")
		switch {
		case err == http.ErrMissingFile:
		case err != nil:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		default:
			if h.MaxLicense > 0 && fh.Size > h.MaxLicense {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "License file is too large"})
				return
			}
			f, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			defer f.Close()
			sub.License = &domain.Upload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
				Reader:      f,
			}
		}
	} else if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.Requests.Submit(c.Request.Context(), sub)
	if err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": gin.H{
		"id":      req.ID,
		"message": "Your request has been submitted. We'll get back to you soon.",
	}})
}
