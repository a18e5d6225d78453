package workflow

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-o-matic/internal/jobpost"
	"resume-o-matic/internal/llm"
	"resume-o-matic/internal/parser"
	"resume-o-matic/internal/shared/server/respond"
	"resume-o-matic/internal/submissions"
)

const maxUploadBytes = 10 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches generation and review routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/submissions", h.submit)
	rg.POST("/generate/resume", h.generateResume)
	rg.POST("/generate/cover", h.generateCover)
	rg.PATCH("/submissions/:id/state", h.setState)
	rg.POST("/submissions/:id/regenerate", h.regenerate)
	rg.GET("/submissions/:id/render", h.render)
}

func (h *Handler) submit(c *gin.Context) {
	req, ok := bindGenerate(c)
	if !ok {
		return
	}
	out, err := h.Svc.Submit(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "failed to create submission")
		return
	}
	c.Set("submissionId", out.Submission.ID)
	respond.JSON(c, http.StatusCreated, toOutcomeResponse(out))
}

func (h *Handler) generateResume(c *gin.Context) {
	req, ok := bindGenerate(c)
	if !ok {
		return
	}
	draft, err := h.Svc.GenerateResume(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "failed to generate resume")
		return
	}
	respond.OK(c, toDraftResponse(draft))
}

func (h *Handler) generateCover(c *gin.Context) {
	var body coverRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	draft := ResumeDraft{
		JobTitle:       body.JobTitle,
		CompanyName:    body.CompanyName,
		Resume:         body.Resume,
		JobDescription: body.JobDescription,
		Facts:          body.Facts,
		Tweaks:         body.Tweaks,
	}
	cover, err := h.Svc.GenerateCoverLetter(c.Request.Context(), body.toRequest(), draft)
	if err != nil {
		h.fail(c, err, "failed to generate cover letter")
		return
	}
	respond.OK(c, CoverDraftResponse{
		JobTitle:    firstNonEmpty(cover.JobTitle, body.JobTitle),
		CompanyName: firstNonEmpty(cover.CompanyName, body.CompanyName),
		CoverLetter: cover.CoverLetter,
	})
}

func (h *Handler) setState(c *gin.Context) {
	id := c.Param("id")
	c.Set("submissionId", id)
	var body stateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	sub, err := h.Svc.SetState(c.Request.Context(), id, body.State, body.ReviewerNotes)
	if err != nil {
		h.fail(c, err, "failed to update state")
		return
	}
	respond.OK(c, submissions.ToResponse(sub))
}

func (h *Handler) regenerate(c *gin.Context) {
	id := c.Param("id")
	c.Set("submissionId", id)
	out, err := h.Svc.Regenerate(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "failed to regenerate submission")
		return
	}
	respond.OK(c, toOutcomeResponse(out))
}

func (h *Handler) render(c *gin.Context) {
	id := c.Param("id")
	c.Set("submissionId", id)
	out, err := h.Svc.Render(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "failed to render submission")
		return
	}
	respond.OK(c, toOutcomeResponse(out))
}

func bindGenerate(c *gin.Context) (Request, bool) {
	var body generateRequest
	if err := c.ShouldBind(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return Request{}, false
	}
	req := body.toRequest()

	file, err := c.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return req, true
	case err != nil:
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file upload", nil)
		return Request{}, false
	}
	if file.Size > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "resume file exceeds 10MB", nil)
		return Request{}, false
	}
	data, err := readUpload(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return Request{}, false
	}
	req.Resume = &Upload{FileName: file.Filename, Data: data}
	return req, true
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxUploadBytes))
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	var pe *parser.ParseError
	var te *llm.TransportError
	var je *jobpost.Error
	switch {
	case errors.As(err, &pe):
		respond.Error(c, http.StatusBadGateway, "invalid_llm_output", pe.Error(), gin.H{
			"target": string(pe.Target),
			"raw":    pe.Raw,
		})
	case errors.Is(err, llm.ErrConfig):
		respond.Error(c, http.StatusInternalServerError, "llm_not_configured", err.Error(), nil)
	case errors.As(err, &te):
		details := gin.H{"backend": te.Backend, "statusCode": te.StatusCode}
		if te.Err != nil {
			details["cause"] = te.Err.Error()
		}
		respond.Error(c, http.StatusBadGateway, "llm_unavailable", "language model request failed: "+te.Error(), details)
	case errors.As(err, &je):
		respond.Error(c, http.StatusBadGateway, "job_post_unavailable", je.Error(), nil)
	case errors.Is(err, submissions.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "submission not found", nil)
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrInvalidMode),
		errors.Is(err, ErrInvalidInput), errors.Is(err, submissions.ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
