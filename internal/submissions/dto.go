package submissions

import "time"

// SummaryResponse is the list view of a submission.
type SummaryResponse struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	CompanyName string    `json:"companyName"`
	JobTitle    string    `json:"jobTitle"`
	Mode        Mode      `json:"mode"`
	State       State     `json:"state"`
}

// Response is the full outward-facing representation of a submission.
type Response struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	UpdatedAt       time.Time `json:"updatedAt"`
	JobDescription  string    `json:"jobDescription"`
	JobURL          string    `json:"jobUrl"`
	CompanyName     string    `json:"companyName"`
	JobTitle        string    `json:"jobTitle"`
	Mode            Mode      `json:"mode"`
	ApplicationType string    `json:"applicationType"`
	RecruiterName   string    `json:"recruiterName"`
	TailoredResume  string    `json:"tailoredResume"`
	CoverLetter     string    `json:"coverLetter"`
	CompanyDetails  string    `json:"companyDetails"`
	Tone            string    `json:"tone"`
	Emphasis        string    `json:"emphasis"`
	Facts           []string  `json:"facts"`
	Tweaks          []string  `json:"tweaks"`
	ResumePDFPath   string    `json:"resumePdfPath"`
	Notes           string    `json:"notes"`
	State           State     `json:"state"`
	ReviewerNotes   string    `json:"reviewerNotes"`
}

// ToResponse converts a Submission into its JSON shape.
func ToResponse(s Submission) Response {
	facts := s.Facts
	if facts == nil {
		facts = []string{}
	}
	tweaks := s.Tweaks
	if tweaks == nil {
		tweaks = []string{}
	}
	return Response{
		ID:              s.ID,
		Timestamp:       s.Timestamp,
		UpdatedAt:       s.UpdatedAt,
		JobDescription:  s.JobDescription,
		JobURL:          s.JobURL,
		CompanyName:     s.CompanyName,
		JobTitle:        s.JobTitle,
		Mode:            s.Mode,
		ApplicationType: s.ApplicationType,
		RecruiterName:   s.RecruiterName,
		TailoredResume:  s.TailoredResume,
		CoverLetter:     s.CoverLetter,
		CompanyDetails:  s.CompanyDetails,
		Tone:            s.Tone,
		Emphasis:        s.Emphasis,
		Facts:           facts,
		Tweaks:          tweaks,
		ResumePDFPath:   s.ResumePDFPath,
		Notes:           s.Notes,
		State:           s.State,
		ReviewerNotes:   s.ReviewerNotes,
	}
}

func toSummary(s Submission) SummaryResponse {
	return SummaryResponse{
		ID:          s.ID,
		Timestamp:   s.Timestamp,
		CompanyName: s.CompanyName,
		JobTitle:    s.JobTitle,
		Mode:        s.Mode,
		State:       s.State,
	}
}
