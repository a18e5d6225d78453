package submissions

import (
	"strings"
	"time"
)

// State is the manual review state of a submission.
type State string

const (
	StatePending  State = "pending"
	StateApproved State = "approved"
	StateRejected State = "rejected"
	StateApplied  State = "applied"
)

// Valid reports whether s is a known review state.
func (s State) Valid() bool {
	switch s {
	case StatePending, StateApproved, StateRejected, StateApplied:
		return true
	default:
		return false
	}
}

// ParseState normalizes a raw state value.
func ParseState(raw string) State {
	return State(strings.ToLower(strings.TrimSpace(raw)))
}

// Mode selects which default candidate document is used.
type Mode string

const (
	ModeResume Mode = "Resume"
	ModeCV     Mode = "CV"
)

// Application types accepted from the front end.
const (
	ApplicationDirect    = "Direct to Company"
	ApplicationRecruiter = "Via Recruiter/Agency"
)

// Submission is one generated application package under review.
type Submission struct {
	ID              string
	Timestamp       time.Time
	UpdatedAt       time.Time
	JobDescription  string
	JobURL          string
	CompanyName     string
	JobTitle        string
	Mode            Mode
	ApplicationType string
	RecruiterName   string
	TailoredResume  string
	CoverLetter     string
	CompanyDetails  string
	Tone            string
	Emphasis        string
	Facts           []string
	Tweaks          []string
	ResumePDFPath   string
	Notes           string
	State           State
	ReviewerNotes   string
}
