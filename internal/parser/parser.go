// Package parser pulls the JSON object out of free-form model output.
package parser

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"resume-o-matic/internal/prompt"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Result holds the trimmed fields of a parsed model response.
type Result struct {
	JobTitle    string
	CompanyName string
	// Body is the resume markdown or the cover letter text, depending on target.
	Body string
}

// ParseError reports output that could not be decoded. Raw is never truncated.
type ParseError struct {
	Target prompt.Target
	Raw    string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s output: %v", e.Target, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrNoJSON is wrapped when the output holds no JSON object.
var ErrNoJSON = errors.New("no JSON object found")

// ExtractJSON returns the span from the first '{' to the last '}'. With no such
// span the whole input is returned.
func ExtractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return raw
	}
	return raw[start : end+1]
}

// Parse decodes raw for target and validates it against the target's schema.
func Parse(raw string, target prompt.Target) (Result, error) {
	schema, bodyField, err := schemaFor(target)
	if err != nil {
		return Result{}, &ParseError{Target: target, Raw: raw, Err: err}
	}

	candidate := ExtractJSON(raw)
	var doc any
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		if !strings.Contains(raw, "{") {
			err = ErrNoJSON
		}
		return Result{}, &ParseError{Target: target, Raw: raw, Err: err}
	}

	res, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return Result{}, &ParseError{Target: target, Raw: raw, Err: err}
	}
	if !res.Valid() {
		return Result{}, &ParseError{Target: target, Raw: raw, Err: &SchemaError{Problems: describe(res.Errors())}}
	}

	fields := doc.(map[string]any)
	return Result{
		JobTitle:    stringField(fields, "job_title"),
		CompanyName: stringField(fields, "company_name"),
		Body:        stringField(fields, bodyField),
	}, nil
}

// SchemaError lists every schema violation found in a response.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "schema validation failed: " + strings.Join(e.Problems, "; ")
}

func describe(errs []gojsonschema.ResultError) []string {
	out := make([]string, 0, len(errs))
	for _, desc := range errs {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		out = append(out, field+": "+desc.Description())
	}
	return out
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return strings.TrimSpace(s)
}

type compiled struct {
	schema    *gojsonschema.Schema
	bodyField string
}

var (
	schemasOnce sync.Once
	schemas     map[prompt.Target]compiled
	schemasErr  error
)

func schemaFor(target prompt.Target) (*gojsonschema.Schema, string, error) {
	schemasOnce.Do(loadSchemas)
	if schemasErr != nil {
		return nil, "", schemasErr
	}
	c, ok := schemas[target]
	if !ok {
		return nil, "", fmt.Errorf("unknown target %q", target)
	}
	return c.schema, c.bodyField, nil
}

func loadSchemas() {
	specs := []struct {
		target    prompt.Target
		file      string
		bodyField string
	}{
		{prompt.TargetResume, "schemas/resume.json", "resume"},
		{prompt.TargetCover, "schemas/cover.json", "cover_letter"},
	}
	schemas = make(map[prompt.Target]compiled, len(specs))
	for _, s := range specs {
		data, err := schemaFS.ReadFile(s.file)
		if err != nil {
			schemasErr = fmt.Errorf("read schema %s: %w", s.file, err)
			return
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			schemasErr = fmt.Errorf("compile schema %s: %w", s.file, err)
			return
		}
		schemas[s.target] = compiled{schema: schema, bodyField: s.bodyField}
	}
}
