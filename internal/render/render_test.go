package render

import (
	"strings"
	"testing"
)

func TestHTML(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{name: "heading", src: "# Jane Doe\n", want: []string{"<h1>Jane Doe</h1>"}},
		{name: "list", src: "- Go\n- SQL\n", want: []string{"<ul>", "<li>Go</li>", "<li>SQL</li>"}},
		{name: "emphasis", src: "**Senior** engineer", want: []string{"<strong>Senior</strong>"}},
		{name: "table", src: "| a | b |\n|---|---|\n| 1 | 2 |\n", want: []string{"<table>", "<td>1</td>"}},
	}
	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.HTML(tt.src)
			if err != nil {
				t.Fatalf("HTML: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Fatalf("missing %q in %q", w, got)
				}
			}
		})
	}
}

func TestHTMLOmitsRawHTML(t *testing.T) {
	got, err := New().HTML("<script>alert(1)</script>\n")
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Fatalf("raw html leaked: %q", got)
	}
}
