package workflow

import (
	"errors"

	"resume-o-matic/internal/submissions"
)

var (
	// ErrInvalidState indicates an unknown review state.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidMode indicates a mode other than Resume or CV.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrInvalidInput indicates a request missing what generation needs.
	ErrInvalidInput = errors.New("invalid input")
)

// Upload is a candidate document supplied with a request.
type Upload struct {
	FileName string
	Data     []byte
}

// Request carries the user inputs for one generation.
type Request struct {
	JobDescription  string
	JobURL          string
	ApplicationType string
	RecruiterName   string
	Mode            submissions.Mode

	// Resume is optional; without it the mode's default file is used.
	Resume         *Upload
	CompanyDetails string
	Tone           string
	Emphasis       string
	Notes          string
}

// ResumeDraft is the parsed outcome of the resume step plus the inputs it was
// generated from, so the cover step and persistence see the same snapshot.
type ResumeDraft struct {
	JobTitle       string
	CompanyName    string
	Resume         string
	JobDescription string
	Facts          []string
	Tweaks         []string
}

// CoverDraft is the parsed outcome of the cover letter step.
type CoverDraft struct {
	JobTitle    string
	CompanyName string
	CoverLetter string
}

// Outcome is a stored submission with both documents rendered and highlighted.
type Outcome struct {
	Submission submissions.Submission
	ResumeHTML string
	CoverHTML  string
}
