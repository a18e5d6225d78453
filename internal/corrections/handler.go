package corrections

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-o-matic/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches correction routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/corrections", h.list)
	rg.POST("/corrections", h.create)
	rg.GET("/corrections/:id", h.get)
	rg.PUT("/corrections/:id", h.update)
	rg.DELETE("/corrections/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	scope, err := ParseContext(c.Query("context"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	rows, err := h.Svc.List(c.Request.Context(), scope)
	if err != nil {
		h.fail(c, err, "failed to list corrections")
		return
	}
	resp := make([]CorrectionResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, toResponse(row))
	}
	respond.OK(c, resp)
}

func (h *Handler) create(c *gin.Context) {
	var req correctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	created, err := h.Svc.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.fail(c, err, "failed to create correction")
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(created))
}

func (h *Handler) get(c *gin.Context) {
	row, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to fetch correction")
		return
	}
	respond.OK(c, toResponse(row))
}

func (h *Handler) update(c *gin.Context) {
	var req correctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	updated, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		h.fail(c, err, "failed to update correction")
		return
	}
	respond.OK(c, toResponse(updated))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "failed to delete correction")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "correction not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
