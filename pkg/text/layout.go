package text

import (
	"errors"
	"math"
	"strings"
	"unicode"

	"docmark/pkg/css"
)

// ErrCannotFit is returned when text cannot be set into the available
// width, even one character per line.
var ErrCannotFit = errors.New("text cannot fit into available width")

// Fragment is a piece of a line set in a single style.
// X is relative to the left edge of the block.
type Fragment struct {
	Text      string
	Style     Style
	X         float64
	Width     float64
	Underline bool
	Link      string
}

// Line is one line of a laid out block.
type Line struct {
	Fragments []Fragment
	Width     float64
	Height    float64
	Ascent    float64
}

// Block is a run broken into lines.
type Block struct {
	Lines  []Line
	Width  float64
	Height float64
	// Leading is the extra space between two lines.
	Leading float64
}

// piece is a word, or part of one, sharing a single span.
type piece struct {
	text  string
	span  Span
	style Style
	width float64
}

type atomKind int

const (
	atomWord atomKind = iota
	atomSpace
	atomBreak
)

// atom is the unit of line breaking. A word may consist of pieces from
// several spans ("<b>bo</b>ld").
type atom struct {
	kind   atomKind
	pieces []piece
	width  float64
}

// Layout breaks a run into lines of at most width points, using greedy
// word wrapping. Words wider than a line are broken between characters.
// If a single character is wider than width, ErrCannotFit is returned.
// An empty run yields an empty block.
func Layout(run Run, width float64, base Style, m Metrics) (Block, error) {
	atoms := atomize(run, base, m)
	lb := lineBreaker{width: width, base: base, metrics: m}
	for i, a := range atoms {
		switch a.kind {
		case atomBreak:
			lb.finish(true)
		case atomSpace:
			if len(lb.pieces) > 0 {
				lb.pendingSpace = &atoms[i]
			}
		case atomWord:
			if err := lb.place(a); err != nil {
				return Block{}, err
			}
		}
	}
	lb.finish(false)
	block := Block{Lines: lb.lines, Leading: base.Leading}
	for i, line := range block.Lines {
		if line.Width > block.Width {
			block.Width = line.Width
		}
		block.Height += line.Height
		if i > 0 {
			block.Height += base.Leading
		}
	}
	if !math.IsInf(width, 1) {
		align(block.Lines, width, base.Align)
	}
	return block, nil
}

// NaturalWidth returns the width of the widest line of run when set
// without wrapping.
func NaturalWidth(run Run, base Style, m Metrics) float64 {
	block, err := Layout(run, math.Inf(1), base, m)
	if err != nil {
		return 0
	}
	return block.Width
}

func atomize(run Run, base Style, m Metrics) []atom {
	var atoms []atom
	var word *atom
	endWord := func() {
		if word != nil {
			atoms = append(atoms, *word)
			word = nil
		}
	}
	for _, sp := range run.Spans {
		if sp.Break {
			endWord()
			atoms = append(atoms, atom{kind: atomBreak})
			continue
		}
		st := base.WithEmphasis(sp.Bold, sp.Italic)
		addPiece := func(s string) {
			if word == nil {
				word = &atom{kind: atomWord}
			}
			p := piece{text: s, span: sp, style: st, width: m.Advance(s, st)}
			word.pieces = append(word.pieces, p)
			word.width += p.width
		}
		start := -1
		for i, r := range sp.Text {
			if !unicode.IsSpace(r) {
				if start < 0 {
					start = i
				}
				continue
			}
			if start >= 0 {
				addPiece(sp.Text[start:i])
				start = -1
			}
			endWord()
			if len(atoms) > 0 && atoms[len(atoms)-1].kind == atomSpace {
				continue
			}
			p := piece{text: " ", span: sp, style: st, width: m.Advance(" ", st)}
			atoms = append(atoms, atom{kind: atomSpace, pieces: []piece{p}, width: p.width})
		}
		if start >= 0 {
			addPiece(sp.Text[start:])
		}
	}
	endWord()
	return atoms
}

const epsilon = 1e-9

type lineBreaker struct {
	width        float64
	base         Style
	metrics      Metrics
	pieces       []piece
	used         float64
	pendingSpace *atom
	lines        []Line
}

func (lb *lineBreaker) place(a atom) error {
	need := a.width
	if lb.pendingSpace != nil && len(lb.pieces) > 0 {
		need += lb.pendingSpace.width
	}
	if lb.used+need <= lb.width+epsilon {
		lb.appendSpace()
		lb.append(a.pieces...)
		return nil
	}
	if len(lb.pieces) > 0 {
		lb.finish(false)
	}
	if a.width <= lb.width+epsilon {
		lb.append(a.pieces...)
		return nil
	}
	// break the word between characters
	for _, p := range a.pieces {
		for _, r := range p.text {
			s := string(r)
			rw := lb.metrics.Advance(s, p.style)
			if rw > lb.width+epsilon {
				return ErrCannotFit
			}
			if lb.used+rw > lb.width+epsilon {
				lb.finish(false)
			}
			lb.append(piece{text: s, span: p.span, style: p.style, width: rw})
		}
	}
	return nil
}

func (lb *lineBreaker) appendSpace() {
	if lb.pendingSpace != nil && len(lb.pieces) > 0 {
		lb.append(lb.pendingSpace.pieces...)
	}
	lb.pendingSpace = nil
}

func (lb *lineBreaker) append(pieces ...piece) {
	for _, p := range pieces {
		lb.pieces = append(lb.pieces, p)
		lb.used += p.width
	}
}

// finish closes the current line. Empty lines are kept only for
// explicit breaks.
func (lb *lineBreaker) finish(explicit bool) {
	lb.pendingSpace = nil
	if len(lb.pieces) == 0 && !explicit {
		return
	}
	lb.lines = append(lb.lines, lb.buildLine(lb.pieces))
	lb.pieces = nil
	lb.used = 0
}

func (lb *lineBreaker) buildLine(pieces []piece) Line {
	var line Line
	var frag *Fragment
	var sb strings.Builder
	closeFragment := func() {
		if frag == nil {
			return
		}
		frag.Text = sb.String()
		frag.X = line.Width
		frag.Width = lb.metrics.Advance(frag.Text, frag.Style)
		line.Width += frag.Width
		line.Fragments = append(line.Fragments, *frag)
		frag = nil
		sb.Reset()
	}
	for _, p := range pieces {
		if frag != nil && (frag.Style != p.style || frag.Underline != p.span.Underline || frag.Link != p.span.Link) {
			closeFragment()
		}
		if frag == nil {
			frag = &Fragment{Style: p.style, Underline: p.span.Underline, Link: p.span.Link}
		}
		sb.WriteString(p.text)
	}
	closeFragment()
	e := lb.metrics.Extents(lb.base)
	line.Height, line.Ascent = e.LineHeight(), e.Ascent
	for _, f := range line.Fragments {
		fe := lb.metrics.Extents(f.Style)
		if fe.LineHeight() > line.Height {
			line.Height = fe.LineHeight()
		}
		if fe.Ascent > line.Ascent {
			line.Ascent = fe.Ascent
		}
	}
	return line
}

func align(lines []Line, width float64, a css.TextAlign) {
	for i := range lines {
		var dx float64
		switch a {
		case css.TextAlignCenter:
			dx = (width - lines[i].Width) / 2
		case css.TextAlignRight:
			dx = width - lines[i].Width
		}
		if dx <= 0 {
			continue
		}
		for j := range lines[i].Fragments {
			lines[i].Fragments[j].X += dx
		}
	}
}
