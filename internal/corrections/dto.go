package corrections

import "time"

// CorrectionResponse is the outward-facing representation of a correction.
type CorrectionResponse struct {
	ID            string    `json:"id"`
	Section       string    `json:"section"`
	OriginalText  string    `json:"originalText"`
	CorrectedText string    `json:"correctedText"`
	Context       Context   `json:"context"`
	CreatedAt     time.Time `json:"createdAt"`
}

type correctionRequest struct {
	Section       string `json:"section"`
	OriginalText  string `json:"originalText"`
	CorrectedText string `json:"correctedText"`
	Context       string `json:"context"`
}

func (r correctionRequest) toInput() Input {
	return Input{
		Section:       r.Section,
		OriginalText:  r.OriginalText,
		CorrectedText: r.CorrectedText,
		Context:       Context(r.Context),
	}
}

func toResponse(c Correction) CorrectionResponse {
	return CorrectionResponse{
		ID:            c.ID,
		Section:       c.Section,
		OriginalText:  c.OriginalText,
		CorrectedText: c.CorrectedText,
		Context:       c.Context,
		CreatedAt:     c.CreatedAt,
	}
}
