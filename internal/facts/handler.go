package facts

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-o-matic/internal/shared/server/respond"
)

// ItemResponse is the outward-facing representation of a fact or tweak.
type ItemResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type itemRequest struct {
	Text string `json:"text" binding:"required"`
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches /facts and /tweaks routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	for path, kind := range map[string]Kind{"/facts": KindFact, "/tweaks": KindTweak} {
		rg.GET(path, h.list(kind))
		rg.POST(path, h.create(kind))
		rg.PUT(path+"/:id", h.update(kind))
		rg.DELETE(path+"/:id", h.delete(kind))
	}
}

func (h *Handler) list(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.Svc.List(c.Request.Context(), kind)
		if err != nil {
			fail(c, err)
			return
		}
		resp := make([]ItemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, toResponse(item))
		}
		respond.OK(c, resp)
	}
}

func (h *Handler) create(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req itemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
			return
		}
		item, err := h.Svc.Add(c.Request.Context(), kind, req.Text)
		if err != nil {
			fail(c, err)
			return
		}
		respond.JSON(c, http.StatusCreated, toResponse(item))
	}
}

func (h *Handler) update(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req itemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
			return
		}
		item, err := h.Svc.Update(c.Request.Context(), kind, c.Param("id"), req.Text)
		if err != nil {
			fail(c, err)
			return
		}
		respond.OK(c, toResponse(item))
	}
}

func (h *Handler) delete(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.Svc.Delete(c.Request.Context(), kind, c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func toResponse(item Item) ItemResponse {
	return ItemResponse{ID: item.ID, Text: item.Text, CreatedAt: item.CreatedAt}
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "item not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process request", nil)
	}
}
