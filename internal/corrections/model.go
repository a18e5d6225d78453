package corrections

import "time"

// Context scopes a correction to the output it applies to.
type Context string

const (
	ContextResume Context = "resume"
	ContextCover  Context = "cover"
	ContextGlobal Context = "global"
)

// Valid reports whether c is one of the known contexts.
func (c Context) Valid() bool {
	switch c {
	case ContextResume, ContextCover, ContextGlobal:
		return true
	default:
		return false
	}
}

// Correction is a user-entered rewrite rule reapplied to future outputs.
type Correction struct {
	ID            string
	Section       string  `validate:"max=200"`
	OriginalText  string  `validate:"max=10000"`
	CorrectedText string  `validate:"max=10000"`
	Context       Context `validate:"required,oneof=resume cover global"`
	CreatedAt     time.Time
}
