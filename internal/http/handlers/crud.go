package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Resource wires list/create/update/delete of one manager to handlers
type Resource[In, T any] struct {
	List   func(ctx context.Context) ([]T, error)
	Create func(ctx context.Context, in In) (*T, error)
	Update func(ctx context.Context, id string, in In) (*T, error)
	Delete func(ctx context.Context, id string) error
	Log    zerolog.Logger
}

// Register mounts the resource under g
func (r Resource[In, T]) Register(g gin.IRoutes, path string) {
	g.GET(path, r.list)
	g.POST(path, r.create)
	g.PUT(path+"/:id", r.update)
	g.DELETE(path+"/:id", r.delete)
}

func (r Resource[In, T]) list(c *gin.Context) {
	rows, err := r.List(c.Request.Context())
	if err != nil {
		writeError(c, r.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (r Resource[In, T]) create(c *gin.Context) {
	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := r.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, r.Log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": row})
}

func (r Resource[In, T]) update(c *gin.Context) {
	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := r.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, r.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": row})
}

func (r Resource[In, T]) delete(c *gin.Context) {
	if err := r.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, r.Log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
