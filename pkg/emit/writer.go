package emit

import "strings"

// line is one output line; depth counts indent units and is applied by format.
type line struct {
	depth int
	text  string
}

// writer collects lines. Text is stored unindented so indentation and line
// endings are applied uniformly in one place.
type writer struct {
	lines []line
	depth int
}

func (w *writer) write(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, part := range strings.Split(text, "\n") {
		w.lines = append(w.lines, line{depth: w.depth, text: strings.TrimRight(part, " \t")})
	}
}

// blank adds an empty line unless the previous line is empty or opens a block.
func (w *writer) blank() {
	n := len(w.lines)
	if n == 0 || w.lines[n-1].text == "" || w.lines[n-1].text == "{" {
		return
	}
	w.lines = append(w.lines, line{})
}

func (w *writer) open() {
	w.write("{")
	w.depth++
}

func (w *writer) close(suffix string) {
	w.trimBlank()
	w.depth--
	w.write("}" + suffix)
}

func (w *writer) indent(fn func()) {
	w.depth++
	fn()
	w.depth--
}

func (w *writer) trimBlank() {
	for len(w.lines) > 0 && w.lines[len(w.lines)-1].text == "" {
		w.lines = w.lines[:len(w.lines)-1]
	}
}

// format joins lines with the configured indent unit and line ending. Blank
// lines carry no indentation and the text ends with exactly one line ending.
func format(lines []line, indent, eol string) string {
	for len(lines) > 0 && lines[len(lines)-1].text == "" {
		lines = lines[:len(lines)-1]
	}
	var b strings.Builder
	for _, l := range lines {
		if l.text != "" {
			b.WriteString(strings.Repeat(indent, l.depth))
			b.WriteString(l.text)
		}
		b.WriteString(eol)
	}
	return b.String()
}
