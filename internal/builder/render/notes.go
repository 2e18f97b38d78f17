package render

import (
	"html"
	"html/template"
	"strings"
)

// NoteSpan is a run of notes text with its inline emphasis resolved.
type NoteSpan struct {
	Text   string `json:"text"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
}

// NoteLine is one line of expanded notes.
type NoteLine []NoteSpan

// PlainText flattens the line to its text content, delimiters gone.
func (l NoteLine) PlainText() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// ParseNotes expands the notes mini-markup into styled spans: *text*
// for bold, _text_ for italic, one NoteLine per input line. An unpaired
// delimiter is kept literally.
func ParseNotes(notes string) []NoteLine {
	if notes == "" {
		return nil
	}
	notes = strings.ReplaceAll(notes, "\r\n", "\n")

	lines := make([]NoteLine, 0, strings.Count(notes, "\n")+1)
	for _, raw := range strings.Split(notes, "\n") {
		var line NoteLine
		for _, bold := range splitSpans(raw, '*') {
			for _, italic := range splitSpans(bold.text, '_') {
				if italic.text == "" {
					continue
				}
				line = append(line, NoteSpan{
					Text:   italic.text,
					Bold:   bold.marked,
					Italic: italic.marked,
				})
			}
		}
		lines = append(lines, line)
	}
	return lines
}

type span struct {
	text   string
	marked bool
}

// splitSpans cuts s on paired delimiters, marking the enclosed spans.
func splitSpans(s string, delim byte) []span {
	var out []span
	for {
		open := strings.IndexByte(s, delim)
		if open < 0 {
			break
		}
		close := strings.IndexByte(s[open+1:], delim)
		if close < 0 {
			break
		}
		close += open + 1

		if open > 0 {
			out = append(out, span{text: s[:open]})
		}
		out = append(out, span{text: s[open+1 : close], marked: true})
		s = s[close+1:]
	}
	if s != "" {
		out = append(out, span{text: s})
	}
	return out
}

// NotesHTML renders expanded note lines as safe HTML. Text is escaped,
// so notes can never inject markup into the preview.
func NotesHTML(lines []NoteLine) template.HTML {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("<br>")
		}
		for _, s := range line {
			text := html.EscapeString(s.Text)
			if s.Italic {
				text = "<em>" + text + "</em>"
			}
			if s.Bold {
				text = "<strong>" + text + "</strong>"
			}
			b.WriteString(text)
		}
	}
	return template.HTML(b.String())
}

// ExpandNotes parses and renders notes markup in one step.
func ExpandNotes(notes string) template.HTML {
	return NotesHTML(ParseNotes(notes))
}
