// Package prompt assembles the resume and cover-letter prompts sent to the model.
package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	"resume-o-matic/internal/corrections"
)

// Target selects which document a prompt asks for.
type Target string

const (
	TargetResume Target = "resume"
	TargetCover  Target = "cover"
)

// ApplicationViaRecruiter is the application type that carries a recruiter name.
const ApplicationViaRecruiter = "Via Recruiter/Agency"

const returnOnly = "\nReturn only the JSON object."

var (
	//go:embed templates/resume.txt
	resumeHeader string
	//go:embed templates/cover.txt
	coverHeader string
)

// Input carries everything a prompt may embed.
type Input struct {
	JobDescription  string
	ApplicationType string
	RecruiterName   string
	Mode            string

	// CandidateText is the extracted resume for the resume target and the
	// generated resume markdown for the cover target.
	CandidateText string

	// Corrections must already be filtered to the target's context.
	Corrections []corrections.Correction

	CompanyDetails string
	Tone           string
	Emphasis       string
	Facts          []string
	Tweaks         []string

	// Date is only embedded in cover prompts.
	Date string
}

// Build returns the prompt for target. Output is byte-identical for identical input.
func Build(target Target, in Input) (string, error) {
	switch target {
	case TargetResume:
		return Resume(in), nil
	case TargetCover:
		return Cover(in), nil
	default:
		return "", fmt.Errorf("unknown prompt target %q", string(target))
	}
}

// Resume builds the tailored-resume prompt.
func Resume(in Input) string {
	var b strings.Builder
	b.WriteString(resumeHeader)
	fmt.Fprintf(&b, "Job Description:\n%s\n\n%s\n\nResume Text:\n%s\n\nMode: %s\n",
		in.JobDescription, ApplicationDetails(in.ApplicationType, in.RecruiterName), in.CandidateText, in.Mode)
	writeExtended(&b, in, false)
	writeCorrections(&b, "resume", in.Corrections)
	b.WriteString(returnOnly)
	return b.String()
}

// Cover builds the cover-letter prompt.
func Cover(in Input) string {
	var b strings.Builder
	b.WriteString(coverHeader)
	fmt.Fprintf(&b, "Job Description:\n%s\n\n%s\n\nTailored Resume (markdown):\n%s\n\nMode: %s\n",
		in.JobDescription, ApplicationDetails(in.ApplicationType, in.RecruiterName), in.CandidateText, in.Mode)
	writeExtended(&b, in, true)
	writeCorrections(&b, "cover letter", in.Corrections)
	b.WriteString(returnOnly)
	return b.String()
}

// ApplicationDetails renders the application line. The recruiter is named only
// for recruiter applications with a non-blank name.
func ApplicationDetails(appType, recruiter string) string {
	line := "Application Type: " + appType
	if appType == ApplicationViaRecruiter {
		if name := strings.TrimSpace(recruiter); name != "" {
			line += " (Recruiter: " + name + ")"
		}
	}
	return line
}

func writeExtended(b *strings.Builder, in Input, withDate bool) {
	if s := strings.TrimSpace(in.CompanyDetails); s != "" {
		fmt.Fprintf(b, "\nCompany Details:\n%s\n", s)
	}
	if s := strings.TrimSpace(in.Tone); s != "" {
		fmt.Fprintf(b, "\nTone: %s\n", s)
	}
	if s := strings.TrimSpace(in.Emphasis); s != "" {
		fmt.Fprintf(b, "\nEmphasis: %s\n", s)
	}
	writeList(b, "Candidate Facts (always true, use where relevant):", in.Facts)
	writeList(b, "Situational Tweaks (apply to this application only):", in.Tweaks)
	if withDate {
		if s := strings.TrimSpace(in.Date); s != "" {
			fmt.Fprintf(b, "\nToday's Date: %s (use it in place of any date placeholder)\n", s)
		}
	}
}

func writeList(b *strings.Builder, title string, items []string) {
	wrote := false
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if !wrote {
			fmt.Fprintf(b, "\n%s\n", title)
			wrote = true
		}
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func writeCorrections(b *strings.Builder, label string, list []corrections.Correction) {
	if len(list) == 0 {
		return
	}
	fmt.Fprintf(b, "\n---\nPersistent Corrections for %s (apply these to your output):\n", label)
	for _, c := range list {
		fmt.Fprintf(b, "Section: %s\nReplace: %s\nWith: %s\n\n", c.Section, c.OriginalText, c.CorrectedText)
	}
}
