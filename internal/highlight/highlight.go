// Package highlight marks previously corrected phrases in rendered output.
package highlight

import (
	"strings"

	"resume-o-matic/internal/corrections"
)

const (
	openTag  = `<mark style="background: #ffe066;">`
	closeTag = `</mark>`
)

// Apply wraps every occurrence of each correction's original text, in slice order.
// Empty originals and originals absent from text are skipped. text is HTML: only
// character data is matched, never the inside of a tag, so earlier marks stay intact.
// A later correction matching inside an earlier span is wrapped innermost; one
// spanning an earlier mark no longer matches and is left alone.
func Apply(text string, list []corrections.Correction) string {
	for _, c := range list {
		orig := c.OriginalText
		if orig == "" || !strings.Contains(text, orig) {
			continue
		}
		text = wrapOutsideTags(text, orig)
	}
	return text
}

// Strip removes highlight markers added by Apply.
func Strip(text string) string {
	return strings.NewReplacer(openTag, "", closeTag, "").Replace(text)
}

func wrapOutsideTags(text, orig string) string {
	wrapped := openTag + orig + closeTag
	var b strings.Builder
	b.Grow(len(text))
	for text != "" {
		lt := strings.IndexByte(text, '<')
		if lt < 0 {
			b.WriteString(strings.ReplaceAll(text, orig, wrapped))
			break
		}
		b.WriteString(strings.ReplaceAll(text[:lt], orig, wrapped))
		gt := strings.IndexByte(text[lt:], '>')
		if gt < 0 {
			// unterminated tag: the remainder is character data
			b.WriteString(strings.ReplaceAll(text[lt:], orig, wrapped))
			break
		}
		b.WriteString(text[lt : lt+gt+1])
		text = text[lt+gt+1:]
	}
	return b.String()
}
