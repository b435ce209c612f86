package text

import "strings"

// Span is a piece of a run sharing one set of inline attributes.
// A span with Break set is an explicit line break and carries no text.
type Span struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Link      string
	Break     bool
}

// Run is a formatted string: an ordered sequence of spans.
type Run struct {
	Spans []Span
}

// Plain returns a run consisting of a single unformatted span.
func Plain(s string) Run {
	if s == "" {
		return Run{}
	}
	return Run{Spans: []Span{{Text: s}}}
}

// String returns the text of the run, with line breaks as '\n'.
func (r Run) String() string {
	var sb strings.Builder
	for _, sp := range r.Spans {
		if sp.Break {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(sp.Text)
	}
	return sb.String()
}

// IsEmpty reports whether the run has no visible text.
func (r Run) IsEmpty() bool {
	for _, sp := range r.Spans {
		if !sp.Break && strings.TrimSpace(sp.Text) != "" {
			return false
		}
	}
	return true
}

// Emphasize returns a copy of the run with every span made bold and/or italic.
func (r Run) Emphasize(bold, italic bool) Run {
	spans := make([]Span, len(r.Spans))
	for i, sp := range r.Spans {
		sp.Bold = sp.Bold || bold
		sp.Italic = sp.Italic || italic
		spans[i] = sp
	}
	return Run{Spans: spans}
}
