package submissions

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

// RegisterRoutes attaches read and delete routes for submissions.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/submissions", h.list)
	rg.GET("/submissions/:id", h.get)
	rg.DELETE("/submissions/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	rows, err := h.Svc.List(c.Request.Context(), c.Query("state"))
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list submissions", nil)
		return
	}
	resp := make([]SummaryResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, toSummary(row))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("submissionId", id)
	row, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "submission not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch submission", nil)
		}
		return
	}
	respond.OK(c, ToResponse(row))
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set("submissionId", id)
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete submission", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
