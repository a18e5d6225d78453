package workflow

import (
	"resume-o-matic/internal/submissions"
)

// generateRequest binds both multipart forms and JSON bodies.
type generateRequest struct {
	JobDescription  string `form:"job_description" json:"jobDescription"`
	JobURL          string `form:"job_url" json:"jobUrl" binding:"omitempty,url"`
	ApplicationType string `form:"application_type" json:"applicationType"`
	RecruiterName   string `form:"recruiter_name" json:"recruiterName"`
	Mode            string `form:"mode" json:"mode"`
	CompanyDetails  string `form:"company_details" json:"companyDetails"`
	Tone            string `form:"tone" json:"tone"`
	Emphasis        string `form:"emphasis" json:"emphasis"`
	Notes           string `form:"notes" json:"notes"`
}

func (r generateRequest) toRequest() Request {
	return Request{
		JobDescription:  r.JobDescription,
		JobURL:          r.JobURL,
		ApplicationType: r.ApplicationType,
		RecruiterName:   r.RecruiterName,
		Mode:            submissions.Mode(r.Mode),
		CompanyDetails:  r.CompanyDetails,
		Tone:            r.Tone,
		Emphasis:        r.Emphasis,
		Notes:           r.Notes,
	}
}

type coverRequest struct {
	generateRequest
	Resume      string   `json:"resume" binding:"required"`
	JobTitle    string   `json:"jobTitle"`
	CompanyName string   `json:"companyName"`
	Facts       []string `json:"facts"`
	Tweaks      []string `json:"tweaks"`
}

type stateRequest struct {
	State         string  `json:"state" binding:"required"`
	ReviewerNotes *string `json:"reviewerNotes"`
}

// ResumeDraftResponse is the JSON shape of a resume step result.
type ResumeDraftResponse struct {
	JobTitle       string   `json:"jobTitle"`
	CompanyName    string   `json:"companyName"`
	Resume         string   `json:"resume"`
	JobDescription string   `json:"jobDescription"`
	Facts          []string `json:"facts"`
	Tweaks         []string `json:"tweaks"`
}

// CoverDraftResponse is the JSON shape of a cover letter step result.
type CoverDraftResponse struct {
	JobTitle    string `json:"jobTitle"`
	CompanyName string `json:"companyName"`
	CoverLetter string `json:"coverLetter"`
}

// OutcomeResponse pairs a submission with its rendered documents.
type OutcomeResponse struct {
	Submission submissions.Response `json:"submission"`
	ResumeHTML string               `json:"resumeHtml"`
	CoverHTML  string               `json:"coverHtml"`
}

func toDraftResponse(d ResumeDraft) ResumeDraftResponse {
	return ResumeDraftResponse{
		JobTitle:       d.JobTitle,
		CompanyName:    d.CompanyName,
		Resume:         d.Resume,
		JobDescription: d.JobDescription,
		Facts:          nonNil(d.Facts),
		Tweaks:         nonNil(d.Tweaks),
	}
}

func toOutcomeResponse(o Outcome) OutcomeResponse {
	return OutcomeResponse{
		Submission: submissions.ToResponse(o.Submission),
		ResumeHTML: o.ResumeHTML,
		CoverHTML:  o.CoverHTML,
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
