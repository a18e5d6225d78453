package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-o-matic/internal/prompt"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare", in: `{"a":1}`, want: `{"a":1}`},
		{name: "prefixed", in: `Sure! {"a":1}`, want: `{"a":1}`},
		{name: "greedy", in: `x {"a":{"b":2}} trailing } end`, want: `{"a":{"b":2}} trailing }`},
		{name: "none", in: "no json here", want: "no json here"},
		{name: "reversed", in: "} then {", want: "} then {"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.in))
		})
	}
}

func TestParseEmbeddedResume(t *testing.T) {
	raw := "Sure! {\"job_title\": \"Engineer\", \"company_name\": \"Acme\", \"resume\": \"...\"}"
	got, err := Parse(raw, prompt.TargetResume)
	require.NoError(t, err)

	alone, err := Parse(ExtractJSON(raw), prompt.TargetResume)
	require.NoError(t, err)

	assert.Equal(t, alone, got)
	assert.Equal(t, "Engineer", got.JobTitle)
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, "...", got.Body)
}

func TestParseTrimsStrings(t *testing.T) {
	raw := `{"job_title":"  Staff Engineer\n","company_name":null,"cover_letter":"\n\nDear team,\n"}`
	got, err := Parse(raw, prompt.TargetCover)
	require.NoError(t, err)
	assert.Equal(t, Result{JobTitle: "Staff Engineer", CompanyName: "", Body: "Dear team,"}, got)
}

func TestParseNoBracesIsError(t *testing.T) {
	raw := "I could not write a resume today."
	_, err := Parse(raw, prompt.TargetResume)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, raw, pe.Raw)
	assert.Equal(t, prompt.TargetResume, pe.Target)
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestParseMalformedKeepsFullRaw(t *testing.T) {
	raw := "prefix {\"resume\": \"unterminated" + strings.Repeat("x", 5000) + "}"
	_, err := Parse(raw, prompt.TargetResume)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, raw, pe.Raw)
}

func TestParseMissingRequiredField(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		target prompt.Target
	}{
		{name: "resume without body", raw: `{"job_title":"Engineer"}`, target: prompt.TargetResume},
		{name: "cover given resume", raw: `{"resume":"text"}`, target: prompt.TargetCover},
		{name: "wrong type", raw: `{"resume":42}`, target: prompt.TargetResume},
		{name: "null body", raw: `{"resume":null}`, target: prompt.TargetResume},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw, tt.target)
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "got %v", err)
			var se *SchemaError
			require.True(t, errors.As(err, &se), "got %v", err)
			assert.NotEmpty(t, se.Problems)
		})
	}
}

func TestParseUnknownTarget(t *testing.T) {
	_, err := Parse(`{"resume":"x"}`, prompt.Target("poem"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
}
