package stub

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockroom/internal/core/apperror"
	"stockroom/internal/infrastructure/memstore"
)

// CollectionHandler serves CRUD over one collection.
type CollectionHandler struct {
	resource   string
	collection *memstore.Collection

	// filter builds the list predicate from the query. Nil lists everything.
	filter func(c *gin.Context) (func(memstore.Record) bool, error)

	// beforeCreate prepares a new record; it may reject it.
	beforeCreate func(rec memstore.Record) error
}

func (h *CollectionHandler) List(c *gin.Context) {
	var match func(memstore.Record) bool
	if h.filter != nil {
		m, err := h.filter(c)
		if err != nil {
			handleError(c, err)
			return
		}
		match = m
	}
	c.JSON(http.StatusOK, h.collection.List(match))
}

func (h *CollectionHandler) Get(c *gin.Context) {
	rec, ok := h.collection.Get(c.Param("id"))
	if !ok {
		handleError(c, apperror.NewNotFound(h.resource, c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *CollectionHandler) Create(c *gin.Context) {
	rec, ok := bindRecord(c)
	if !ok {
		return
	}
	if h.beforeCreate != nil {
		if err := h.beforeCreate(rec); err != nil {
			handleError(c, err)
			return
		}
	}
	c.JSON(http.StatusCreated, h.collection.Create(rec))
}

func (h *CollectionHandler) Update(c *gin.Context) {
	patch, ok := bindRecord(c)
	if !ok {
		return
	}
	rec, found := h.collection.Update(c.Param("id"), patch)
	if !found {
		handleError(c, apperror.NewNotFound(h.resource, c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *CollectionHandler) Delete(c *gin.Context) {
	if !h.collection.Delete(c.Param("id")) {
		handleError(c, apperror.NewNotFound(h.resource, c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": h.resource + " deleted successfully"})
}

// bindRecord decodes a JSON object body.
func bindRecord(c *gin.Context) (memstore.Record, bool) {
	var rec memstore.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		handleError(c, apperror.NewInvalidInput("invalid request body").WithDetail("error", err.Error()))
		return nil, false
	}
	if rec == nil {
		rec = memstore.Record{}
	}
	return rec, true
}

// handleError registers err on the gin context and aborts the request.
// The response is written by middleware.ErrorHandler.
func handleError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
