package engine

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"docmark/pkg/text"
)

// runBuffer accumulates inline text and formatting between block
// boundaries. Formatting markers nest and survive a flush.
type runBuffer struct {
	spans     []text.Span
	bold      int
	italic    int
	underline int
	links     []string
}

func (b *runBuffer) reset() {
	*b = runBuffer{spans: b.spans[:0]}
}

func (b *runBuffer) current() text.Span {
	sp := text.Span{Bold: b.bold > 0, Italic: b.italic > 0, Underline: b.underline > 0}
	if n := len(b.links); n > 0 {
		sp.Link = b.links[n-1]
	}
	return sp
}

// text appends character data with whitespace collapsed.
func (b *runBuffer) text(data string) {
	s := collapse(norm.NFC.String(data))
	if s == "" {
		return
	}
	if s[0] == ' ' && b.endsInSpace() {
		s = s[1:]
		if s == "" {
			return
		}
	}
	sp := b.current()
	if n := len(b.spans); n > 0 && sameFormat(b.spans[n-1], sp) {
		b.spans[n-1].Text += s
		return
	}
	sp.Text = s
	b.spans = append(b.spans, sp)
}

func (b *runBuffer) lineBreak() {
	b.spans = append(b.spans, text.Span{Break: true})
}

// newLine ends the current line unless the buffer is empty or already
// ends in a break.
func (b *runBuffer) newLine() {
	if n := len(b.spans); n > 0 && !b.spans[n-1].Break {
		b.lineBreak()
	}
}

func (b *runBuffer) endsInSpace() bool {
	n := len(b.spans)
	if n == 0 {
		return true
	}
	last := b.spans[n-1]
	return last.Break || strings.HasSuffix(last.Text, " ")
}

// take returns the buffered run trimmed of whitespace and breaks at both
// ends, and empties the buffer. Without format the run is plain text.
func (b *runBuffer) take(format bool) text.Run {
	spans := b.spans
	for len(spans) > 0 {
		first := &spans[0]
		if !first.Break {
			first.Text = strings.TrimLeft(first.Text, " ")
			if first.Text != "" {
				break
			}
		}
		spans = spans[1:]
	}
	for len(spans) > 0 {
		last := &spans[len(spans)-1]
		if !last.Break {
			last.Text = strings.TrimRight(last.Text, " ")
			if last.Text != "" {
				break
			}
		}
		spans = spans[:len(spans)-1]
	}
	run := text.Run{Spans: make([]text.Span, 0, len(spans))}
	for _, sp := range spans {
		if !format {
			sp = text.Span{Text: sp.Text, Break: sp.Break}
			if n := len(run.Spans); n > 0 && !sp.Break && !run.Spans[n-1].Break {
				run.Spans[n-1].Text += sp.Text
				continue
			}
		}
		run.Spans = append(run.Spans, sp)
	}
	b.spans = b.spans[:0]
	return run
}

func sameFormat(a, b text.Span) bool {
	return !a.Break && !b.Break && a.Bold == b.Bold && a.Italic == b.Italic &&
		a.Underline == b.Underline && a.Link == b.Link
}

// collapse replaces each run of markup whitespace with a single space.
// Non-breaking spaces are kept.
func collapse(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				sb.WriteByte(' ')
			}
			space = true
		default:
			sb.WriteRune(r)
			space = false
		}
	}
	return sb.String()
}
