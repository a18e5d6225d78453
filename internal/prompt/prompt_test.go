package prompt

import (
	"strings"
	"testing"

	"resume-o-matic/internal/corrections"
)

func baseInput() Input {
	return Input{
		JobDescription:  "Senior Backend Engineer at Acme",
		ApplicationType: "Direct to Company",
		Mode:            "Resume",
		CandidateText:   "Jane Doe\nGo developer\n",
	}
}

func TestResumePromptShape(t *testing.T) {
	got := Resume(baseInput())

	for _, want := range []string{
		`"resume": "<markdown resume text>"`,
		"Job Description:\nSenior Backend Engineer at Acme\n\nApplication Type: Direct to Company\n\nResume Text:\nJane Doe\nGo developer\n\n\nMode: Resume\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("prompt missing %q:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, "\nReturn only the JSON object.") {
		t.Fatalf("prompt must end with return instruction:\n%s", got)
	}
	if strings.Contains(got, "Persistent Corrections") {
		t.Fatalf("empty corrections must omit the block")
	}
	if strings.Contains(got, "Today's Date") {
		t.Fatalf("resume prompt must not embed a date")
	}
}

func TestCorrectionsBlockOnePerEntry(t *testing.T) {
	for _, ctx := range []corrections.Context{corrections.ContextResume, corrections.ContextCover, corrections.ContextGlobal} {
		t.Run(string(ctx), func(t *testing.T) {
			in := baseInput()
			if strings.Contains(Resume(in), "Persistent Corrections") || strings.Contains(Cover(in), "Persistent Corrections") {
				t.Fatalf("empty list must not produce a corrections block")
			}

			in.Corrections = []corrections.Correction{
				{Section: "Summary", OriginalText: "team player", CorrectedText: "collaborator", Context: ctx},
				{Section: "Skills", OriginalText: "Golang", CorrectedText: "Go", Context: ctx},
			}
			got := Resume(in)
			if n := strings.Count(got, "Section: "); n != 2 {
				t.Fatalf("expected 2 entries, got %d", n)
			}
			if !strings.Contains(got, "Section: Summary\nReplace: team player\nWith: collaborator\n\n") {
				t.Fatalf("missing first entry:\n%s", got)
			}
			if !strings.Contains(got, "Section: Skills\nReplace: Golang\nWith: Go\n\n") {
				t.Fatalf("missing second entry:\n%s", got)
			}
			if !strings.HasSuffix(got, "Return only the JSON object.") {
				t.Fatalf("instruction must stay last")
			}
		})
	}
}

func TestApplicationDetails(t *testing.T) {
	tests := []struct {
		appType, recruiter, want string
	}{
		{"Direct to Company", "Dana", "Application Type: Direct to Company"},
		{"Via Recruiter/Agency", "  Dana  ", "Application Type: Via Recruiter/Agency (Recruiter: Dana)"},
		{"Via Recruiter/Agency", "   ", "Application Type: Via Recruiter/Agency"},
	}
	for _, tc := range tests {
		if got := ApplicationDetails(tc.appType, tc.recruiter); got != tc.want {
			t.Fatalf("ApplicationDetails(%q, %q) = %q, want %q", tc.appType, tc.recruiter, got, tc.want)
		}
	}
}

func TestCoverPromptEmbedsExtendedInputs(t *testing.T) {
	in := baseInput()
	in.CandidateText = "# Jane Doe"
	in.CompanyDetails = "Acme builds rockets."
	in.Tone = "warm"
	in.Facts = []string{"10 years of Go", " "}
	in.Tweaks = []string{"Mention relocation"}
	in.Date = "July 4, 2026"

	got := Cover(in)
	for _, want := range []string{
		`"cover_letter": "<markdown cover letter text>"`,
		"Tailored Resume (markdown):\n# Jane Doe\n",
		"Company Details:\nAcme builds rockets.\n",
		"Tone: warm\n",
		"Candidate Facts (always true, use where relevant):\n- 10 years of Go\n",
		"Situational Tweaks (apply to this application only):\n- Mention relocation\n",
		"Today's Date: July 4, 2026",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("cover prompt missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Emphasis:") {
		t.Fatalf("blank emphasis must be omitted")
	}
	if strings.Count(got, "- ") != 2 {
		t.Fatalf("blank facts must be skipped:\n%s", got)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	in := baseInput()
	in.Corrections = []corrections.Correction{{Section: "A", OriginalText: "b", CorrectedText: "c"}}
	first, err := Build(TargetResume, in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, _ := Build(TargetResume, in)
	if first != second {
		t.Fatalf("prompt not deterministic")
	}
	if _, err := Build(Target("email"), in); err == nil {
		t.Fatalf("expected error for unknown target")
	}
}
