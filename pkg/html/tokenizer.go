package html

import (
	"errors"
	"fmt"
	"io"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type EventKind int

const (
	StartEvent EventKind = iota
	EndEvent
	TextEvent
	DocumentEndEvent
)

func (k EventKind) String() string {
	switch k {
	case StartEvent:
		return "start"
	case EndEvent:
		return "end"
	case TextEvent:
		return "text"
	case DocumentEndEvent:
		return "document-end"
	}
	return "unknown"
}

// Event is one markup event in document order. Tag names are lower case.
type Event struct {
	Kind EventKind
	Tag  string
	Attr map[string]string
	Data string
}

func (e Event) String() string {
	switch e.Kind {
	case StartEvent:
		return "<" + e.Tag + ">"
	case EndEvent:
		return "</" + e.Tag + ">"
	case TextEvent:
		return fmt.Sprintf("%q", e.Data)
	}
	return e.Kind.String()
}

// Start creates a start tag event.
func Start(tag string, attr map[string]string) Event {
	return Event{Kind: StartEvent, Tag: strings.ToLower(tag), Attr: attr}
}

func End(tag string) Event {
	return Event{Kind: EndEvent, Tag: strings.ToLower(tag)}
}

func Text(data string) Event {
	return Event{Kind: TextEvent, Data: data}
}

func DocumentEnd() Event {
	return Event{Kind: DocumentEndEvent}
}

// voidElements never have content; the tokenizer closes them right away.
var voidElements = map[atom.Atom]bool{
	atom.Br:    true,
	atom.Hr:    true,
	atom.Img:   true,
	atom.Input: true,
	atom.Meta:  true,
	atom.Link:  true,
	atom.Col:   true,
	atom.Wbr:   true,
}

// hiddenElements have text content that is not part of the document.
var hiddenElements = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
	atom.Title:  true,
	atom.Head:   true,
}

// Tokenize reads markup and returns its events, terminated by a
// DocumentEnd event. Entities are decoded. Comments and doctypes are
// dropped, as is the text of script, style and head elements.
func Tokenize(r io.Reader) ([]Event, error) {
	z := nethtml.NewTokenizer(r)
	var events []Event
	hidden := 0
	for {
		tt := z.Next()
		switch tt {
		case nethtml.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return append(events, DocumentEnd()), nil
			}
			return nil, fmt.Errorf("tokenizing markup: %w", z.Err())
		case nethtml.TextToken:
			if hidden == 0 {
				events = append(events, Text(string(z.Text())))
			}
		case nethtml.StartTagToken, nethtml.SelfClosingTagToken:
			tok := z.Token()
			if hiddenElements[tok.DataAtom] {
				if tt == nethtml.StartTagToken {
					hidden++
				}
				continue
			}
			events = append(events, Start(tok.Data, attributes(tok.Attr)))
			if tt == nethtml.SelfClosingTagToken || voidElements[tok.DataAtom] {
				events = append(events, End(tok.Data))
			}
		case nethtml.EndTagToken:
			tok := z.Token()
			if hiddenElements[tok.DataAtom] {
				if hidden > 0 {
					hidden--
				}
				continue
			}
			if voidElements[tok.DataAtom] {
				continue
			}
			events = append(events, End(tok.Data))
		}
	}
}

// TokenizeString is Tokenize for in-memory markup.
func TokenizeString(markup string) []Event {
	events, err := Tokenize(strings.NewReader(markup))
	if err != nil {
		// a strings.Reader does not fail
		panic(err)
	}
	return events
}

func attributes(attrs []nethtml.Attribute) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[strings.ToLower(a.Key)] = a.Val
	}
	return m
}
