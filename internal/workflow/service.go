// Package workflow runs the two generation steps and manages submission review.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-o-matic/internal/corrections"
	"resume-o-matic/internal/extract"
	"resume-o-matic/internal/facts"
	"resume-o-matic/internal/highlight"
	"resume-o-matic/internal/llm"
	"resume-o-matic/internal/parser"
	"resume-o-matic/internal/prompt"
	"resume-o-matic/internal/shared/metrics"
	"resume-o-matic/internal/shared/telemetry"
	"resume-o-matic/internal/shared/util"
	"resume-o-matic/internal/submissions"
)

const coverDateLayout = "January 2, 2006"

// CorrectionLister returns the corrections for one context, oldest first.
type CorrectionLister interface {
	List(ctx context.Context, scope corrections.Context) ([]corrections.Correction, error)
}

// TextLister returns the current fact or tweak texts.
type TextLister interface {
	Texts(ctx context.Context, kind facts.Kind) ([]string, error)
}

// DocumentLoader resolves candidate text and keeps uploads of stored submissions.
type DocumentLoader interface {
	FromUpload(ctx context.Context, fileName string, data []byte) (extract.Document, error)
	FromStored(ctx context.Context, key string) (extract.Document, error)
	Default(ctx context.Context, mode string) (extract.Document, error)
	Persist(ctx context.Context, fileName string, data []byte, text string) (string, error)
	Discard(ctx context.Context, key string) error
}

// JobPostFetcher fetches the text of a job posting.
type JobPostFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Renderer turns markdown into HTML.
type Renderer interface {
	HTML(src string) (string, error)
}

// Options tunes model calls.
type Options struct {
	Model           string
	Temperature     float64
	ResumeMaxTokens int
	CoverMaxTokens  int
}

// Service orchestrates generation and review.
type Service struct {
	Submissions submissions.Repo
	Corrections CorrectionLister
	Facts       TextLister
	Generator   llm.Generator
	Documents   DocumentLoader

	// JobPosts is optional; without it a blank job description is rejected.
	JobPosts JobPostFetcher
	Renderer Renderer
	Options  Options
	Now      func() time.Time
}

// inputs is a request resolved against the store: the snapshot both steps share.
type inputs struct {
	req       Request
	candidate extract.Document
	facts     []string
	tweaks    []string
}

// GenerateResume resolves the request and runs the resume step without persisting.
func (s *Service) GenerateResume(ctx context.Context, req Request) (ResumeDraft, error) {
	in, err := s.prepare(ctx, req)
	if err != nil {
		return ResumeDraft{}, err
	}
	draft, _, err := s.resumeStep(ctx, in)
	return draft, err
}

// GenerateCoverLetter runs the cover step using the draft's resume as candidate text.
func (s *Service) GenerateCoverLetter(ctx context.Context, req Request, draft ResumeDraft) (CoverDraft, error) {
	req, err := normalize(req)
	if err != nil {
		return CoverDraft{}, err
	}
	if strings.TrimSpace(draft.Resume) == "" {
		return CoverDraft{}, fmt.Errorf("%w: resume draft is empty", ErrInvalidInput)
	}
	if draft.JobDescription == "" {
		draft.JobDescription = req.JobDescription
	}
	if draft.JobDescription == "" {
		return CoverDraft{}, fmt.Errorf("%w: job description is required", ErrInvalidInput)
	}
	cover, _, err := s.coverStep(ctx, req, draft)
	return cover, err
}

// Submit runs both steps and persists one pending submission. Nothing is stored,
// the uploaded resume included, unless both steps succeed.
func (s *Service) Submit(ctx context.Context, req Request) (Outcome, error) {
	in, err := s.prepare(ctx, req)
	if err != nil {
		return Outcome{}, err
	}
	draft, resumeCorr, err := s.resumeStep(ctx, in)
	if err != nil {
		return Outcome{}, err
	}
	cover, coverCorr, err := s.coverStep(ctx, in.req, draft)
	if err != nil {
		return Outcome{}, err
	}

	now := s.now()
	sub := submissions.Submission{
		ID:              uuid.NewString(),
		Timestamp:       now,
		UpdatedAt:       now,
		JobDescription:  draft.JobDescription,
		JobURL:          in.req.JobURL,
		CompanyName:     firstNonEmpty(draft.CompanyName, cover.CompanyName),
		JobTitle:        firstNonEmpty(draft.JobTitle, cover.JobTitle),
		Mode:            in.req.Mode,
		ApplicationType: in.req.ApplicationType,
		RecruiterName:   in.req.RecruiterName,
		TailoredResume:  draft.Resume,
		CoverLetter:     cover.CoverLetter,
		CompanyDetails:  in.req.CompanyDetails,
		Tone:            in.req.Tone,
		Emphasis:        in.req.Emphasis,
		Facts:           draft.Facts,
		Tweaks:          draft.Tweaks,
		Notes:           in.req.Notes,
		State:           submissions.StatePending,
	}
	out, err := s.outcome(sub, resumeCorr, coverCorr)
	if err != nil {
		return Outcome{}, err
	}
	if up := in.req.Resume; up != nil && len(up.Data) > 0 {
		key, err := s.Documents.Persist(ctx, up.FileName, up.Data, in.candidate.Text)
		if err != nil {
			return Outcome{}, err
		}
		sub.ResumePDFPath = key
		out.Submission.ResumePDFPath = key
	}
	if err := s.Submissions.Create(ctx, sub); err != nil {
		if derr := s.Documents.Discard(ctx, sub.ResumePDFPath); derr != nil {
			telemetry.Warn("workflow.discard_upload_failed", map[string]any{"key": sub.ResumePDFPath, "error": derr.Error()})
		}
		return Outcome{}, fmt.Errorf("create submission: %w", err)
	}
	metrics.IncSubmissionCreated()
	telemetry.Info("workflow.submission_created", map[string]any{
		"submission_id": sub.ID,
		"mode":          string(sub.Mode),
		"company_name":  sub.CompanyName,
	})
	return out, nil
}

// Regenerate reruns both steps from the stored inputs with the current facts,
// tweaks and corrections, and overwrites the generated texts in place.
func (s *Service) Regenerate(ctx context.Context, id string) (Outcome, error) {
	sub, err := s.Submissions.Get(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	req := Request{
		JobDescription:  sub.JobDescription,
		JobURL:          sub.JobURL,
		ApplicationType: sub.ApplicationType,
		RecruiterName:   sub.RecruiterName,
		Mode:            sub.Mode,
		CompanyDetails:  sub.CompanyDetails,
		Tone:            sub.Tone,
		Emphasis:        sub.Emphasis,
		Notes:           sub.Notes,
	}
	req, err = normalize(req)
	if err != nil {
		return Outcome{}, err
	}

	var doc extract.Document
	if sub.ResumePDFPath != "" {
		doc, err = s.Documents.FromStored(ctx, sub.ResumePDFPath)
	} else {
		doc, err = s.Documents.Default(ctx, string(req.Mode))
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("load resume: %w", err)
	}
	in, err := s.snapshot(ctx, req, doc)
	if err != nil {
		return Outcome{}, err
	}

	draft, resumeCorr, err := s.resumeStep(ctx, in)
	if err != nil {
		return Outcome{}, err
	}
	cover, coverCorr, err := s.coverStep(ctx, in.req, draft)
	if err != nil {
		return Outcome{}, err
	}

	now := s.now()
	if err := s.Submissions.UpdateOutputs(ctx, id, draft.Resume, cover.CoverLetter, now); err != nil {
		return Outcome{}, fmt.Errorf("update submission: %w", err)
	}
	metrics.IncRegeneration()
	sub.TailoredResume = draft.Resume
	sub.CoverLetter = cover.CoverLetter
	sub.UpdatedAt = now
	return s.outcome(sub, resumeCorr, coverCorr)
}

// SetState moves a submission to any review state. A nil notes pointer keeps the
// stored reviewer notes.
func (s *Service) SetState(ctx context.Context, id, rawState string, notes *string) (submissions.Submission, error) {
	state := submissions.ParseState(rawState)
	if !state.Valid() {
		return submissions.Submission{}, fmt.Errorf("%w: %q", ErrInvalidState, rawState)
	}
	if err := s.Submissions.SetState(ctx, id, state, notes, s.now()); err != nil {
		return submissions.Submission{}, err
	}
	return s.Submissions.Get(ctx, id)
}

// Render returns a stored submission highlighted with the current corrections.
func (s *Service) Render(ctx context.Context, id string) (Outcome, error) {
	sub, err := s.Submissions.Get(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	resumeCorr, err := s.Corrections.List(ctx, corrections.ContextResume)
	if err != nil {
		return Outcome{}, fmt.Errorf("list corrections: %w", err)
	}
	coverCorr, err := s.Corrections.List(ctx, corrections.ContextCover)
	if err != nil {
		return Outcome{}, fmt.Errorf("list corrections: %w", err)
	}
	return s.outcome(sub, resumeCorr, coverCorr)
}

func (s *Service) prepare(ctx context.Context, req Request) (inputs, error) {
	req, err := normalize(req)
	if err != nil {
		return inputs{}, err
	}
	if req.JobDescription == "" {
		if req.JobURL == "" || s.JobPosts == nil {
			return inputs{}, fmt.Errorf("%w: job description is required", ErrInvalidInput)
		}
		text, err := s.JobPosts.Fetch(ctx, req.JobURL)
		if err != nil {
			return inputs{}, fmt.Errorf("fetch job post: %w", err)
		}
		req.JobDescription = text
	}

	var doc extract.Document
	if req.Resume != nil && len(req.Resume.Data) > 0 {
		doc, err = s.Documents.FromUpload(ctx, req.Resume.FileName, req.Resume.Data)
	} else {
		doc, err = s.Documents.Default(ctx, string(req.Mode))
	}
	if err != nil {
		return inputs{}, fmt.Errorf("load resume: %w", err)
	}
	return s.snapshot(ctx, req, doc)
}

func (s *Service) snapshot(ctx context.Context, req Request, doc extract.Document) (inputs, error) {
	factTexts, err := s.Facts.Texts(ctx, facts.KindFact)
	if err != nil {
		return inputs{}, fmt.Errorf("list facts: %w", err)
	}
	tweakTexts, err := s.Facts.Texts(ctx, facts.KindTweak)
	if err != nil {
		return inputs{}, fmt.Errorf("list tweaks: %w", err)
	}
	if doc.Text == "" {
		telemetry.Warn("workflow.empty_candidate", map[string]any{"mode": string(req.Mode)})
	}
	return inputs{req: req, candidate: doc, facts: factTexts, tweaks: tweakTexts}, nil
}

func (s *Service) resumeStep(ctx context.Context, in inputs) (ResumeDraft, []corrections.Correction, error) {
	corr, err := s.Corrections.List(ctx, corrections.ContextResume)
	if err != nil {
		return ResumeDraft{}, nil, fmt.Errorf("list corrections: %w", err)
	}
	res, err := s.generate(ctx, prompt.TargetResume, prompt.Input{
		JobDescription:  in.req.JobDescription,
		ApplicationType: in.req.ApplicationType,
		RecruiterName:   in.req.RecruiterName,
		Mode:            string(in.req.Mode),
		CandidateText:   in.candidate.Text,
		Corrections:     corr,
		CompanyDetails:  in.req.CompanyDetails,
		Tone:            in.req.Tone,
		Emphasis:        in.req.Emphasis,
		Facts:           in.facts,
		Tweaks:          in.tweaks,
	}, s.Options.ResumeMaxTokens)
	if err != nil {
		return ResumeDraft{}, nil, err
	}
	return ResumeDraft{
		JobTitle:       res.JobTitle,
		CompanyName:    res.CompanyName,
		Resume:         res.Body,
		JobDescription: in.req.JobDescription,
		Facts:          in.facts,
		Tweaks:         in.tweaks,
	}, corr, nil
}

func (s *Service) coverStep(ctx context.Context, req Request, draft ResumeDraft) (CoverDraft, []corrections.Correction, error) {
	corr, err := s.Corrections.List(ctx, corrections.ContextCover)
	if err != nil {
		return CoverDraft{}, nil, fmt.Errorf("list corrections: %w", err)
	}
	res, err := s.generate(ctx, prompt.TargetCover, prompt.Input{
		JobDescription:  draft.JobDescription,
		ApplicationType: req.ApplicationType,
		RecruiterName:   req.RecruiterName,
		Mode:            string(req.Mode),
		CandidateText:   draft.Resume,
		Corrections:     corr,
		CompanyDetails:  req.CompanyDetails,
		Tone:            req.Tone,
		Emphasis:        req.Emphasis,
		Facts:           draft.Facts,
		Tweaks:          draft.Tweaks,
		Date:            s.now().Format(coverDateLayout),
	}, s.Options.CoverMaxTokens)
	if err != nil {
		return CoverDraft{}, nil, err
	}
	return CoverDraft{
		JobTitle:    res.JobTitle,
		CompanyName: res.CompanyName,
		CoverLetter: res.Body,
	}, corr, nil
}

func (s *Service) generate(ctx context.Context, target prompt.Target, in prompt.Input, maxTokens int) (parser.Result, error) {
	step := stepName(target)
	text, err := prompt.Build(target, in)
	if err != nil {
		return parser.Result{}, err
	}

	metrics.IncGenerationStarted(step)
	telemetry.Info("workflow.generate", map[string]any{
		"step":         step,
		"prompt_chars": len(text),
		"prompt_hash":  util.ShortHash(text),
		"corrections":  len(in.Corrections),
	})

	defaults := llm.DefaultResumeMaxTokens
	if target == prompt.TargetCover {
		defaults = llm.DefaultCoverMaxTokens
	}
	params := llm.Params{
		Model:       s.Options.Model,
		MaxTokens:   maxTokens,
		Temperature: s.Options.Temperature,
	}.WithDefaults(defaults)

	start := time.Now()
	raw, err := s.Generator.Generate(ctx, text, params)
	metrics.ObserveGenerationDuration(time.Since(start))
	if err != nil {
		metrics.IncGenerationFailed(step, failureReason(err))
		telemetry.Error("workflow.generate_failed", map[string]any{"step": step, "error": err.Error()})
		return parser.Result{}, fmt.Errorf("generate %s: %w", step, err)
	}

	res, err := parser.Parse(raw, target)
	if err != nil {
		metrics.IncGenerationFailed(step, "parse")
		telemetry.Warn("workflow.parse_failed", map[string]any{
			"step":      step,
			"raw_chars": len(raw),
			"error":     err.Error(),
		})
		return parser.Result{}, err
	}
	metrics.IncGenerationCompleted(step)
	return res, nil
}

func (s *Service) outcome(sub submissions.Submission, resumeCorr, coverCorr []corrections.Correction) (Outcome, error) {
	resumeHTML, err := s.Renderer.HTML(sub.TailoredResume)
	if err != nil {
		return Outcome{}, err
	}
	coverHTML, err := s.Renderer.HTML(sub.CoverLetter)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Submission: sub,
		ResumeHTML: highlight.Apply(resumeHTML, resumeCorr),
		CoverHTML:  highlight.Apply(coverHTML, coverCorr),
	}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func normalize(req Request) (Request, error) {
	req.JobDescription = strings.TrimSpace(req.JobDescription)
	req.JobURL = strings.TrimSpace(req.JobURL)
	req.RecruiterName = strings.TrimSpace(req.RecruiterName)
	if strings.TrimSpace(req.ApplicationType) == "" {
		req.ApplicationType = submissions.ApplicationDirect
	}
	switch strings.ToLower(strings.TrimSpace(string(req.Mode))) {
	case "", "resume":
		req.Mode = submissions.ModeResume
	case "cv":
		req.Mode = submissions.ModeCV
	default:
		return Request{}, fmt.Errorf("%w: %q", ErrInvalidMode, string(req.Mode))
	}
	return req, nil
}

func stepName(target prompt.Target) string {
	if target == prompt.TargetCover {
		return metrics.StepCover
	}
	return metrics.StepResume
}

func failureReason(err error) string {
	var te *llm.TransportError
	switch {
	case errors.Is(err, llm.ErrConfig):
		return "config"
	case errors.As(err, &te):
		return "transport"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
