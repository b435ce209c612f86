package html

import (
	"strings"
	"testing"
)

func eventStrings(events []Event) string {
	parts := make([]string, len(events))
	for i, e := range events {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

func TestTokenize_CompleteSequence(t *testing.T) {
	events := TokenizeString("<div>Hello</div>")
	if got := eventStrings(events); got != `<div> "Hello" </div> document-end` {
		t.Errorf("unexpected events: %s", got)
	}
}

func TestTokenize_Attributes(t *testing.T) {
	events := TokenizeString(`<TD Style="width: 3cm" id="main">`)
	if events[0].Tag != "td" {
		t.Errorf("expected tag 'td', got '%s'", events[0].Tag)
	}
	if events[0].Attr["style"] != "width: 3cm" {
		t.Errorf("expected style='width: 3cm', got '%s'", events[0].Attr["style"])
	}
	if events[0].Attr["id"] != "main" {
		t.Errorf("expected id='main', got '%s'", events[0].Attr["id"])
	}
}

func TestTokenize_SelfClosingAndVoid(t *testing.T) {
	events := TokenizeString("a<br/>b<hr>c<img src='x.png'></img>")
	want := `"a" <br> </br> "b" <hr> </hr> "c" <img> </img> document-end`
	if got := eventStrings(events); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestTokenize_EntitiesAndComments(t *testing.T) {
	events := TokenizeString("<!DOCTYPE html><!-- note -->a &amp; b&nbsp;c")
	if len(events) != 2 || events[0].Data != "a & b\u00a0c" {
		t.Errorf("unexpected events: %s", eventStrings(events))
	}
}

func TestTokenize_HiddenText(t *testing.T) {
	events := TokenizeString("<head><title>T</title><style>p{}</style></head><p>x</p><script>var a;</script>")
	if got := eventStrings(events); got != `<p> "x" </p> document-end` {
		t.Errorf("unexpected events: %s", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		tag  string
		want Element
	}{
		{"p", Element{Kind: Paragraph}},
		{"H3", Element{Kind: Heading, Level: 3}},
		{"ol", Element{Kind: ListContainer, Ordered: true}},
		{"ul", Element{Kind: ListContainer}},
		{"th", Element{Kind: Cell, Header: true}},
		{"strong", Element{Kind: InlineBold}},
		{"em", Element{Kind: InlineItalic}},
		{"blink", Element{Kind: Unknown}},
		{"tbody", Element{Kind: Unknown}},
	}
	for _, tt := range tests {
		if got := Classify(tt.tag); got != tt.want {
			t.Errorf("%s: expected %+v, got %+v", tt.tag, tt.want, got)
		}
	}
}

func TestFromMarkdown(t *testing.T) {
	src := "# Title\n\n* one\n* two\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"
	events, err := FromMarkdown([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var tags []string
	for _, e := range events {
		if e.Kind == StartEvent {
			tags = append(tags, e.Tag)
		}
	}
	got := strings.Join(tags, ",")
	for _, want := range []string{"h1", "ul,li", "table", "th", "td"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %s", want, got)
		}
	}
	if events[len(events)-1].Kind != DocumentEndEvent {
		t.Error("expected events to end with document end")
	}
}
