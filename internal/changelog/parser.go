package changelog

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

const headingMarker = "##"

// Parse reads a changelog and splits it into sections.
//
// A section starts at every line whose first whitespace-delimited token is exactly ## and
// that has at least one more token. Any other line is appended verbatim to the open section,
// or dropped if no section is open yet. Deeper headings such as ### are body text.
// Lines are split on \n only, so a CRLF line keeps its \r.
func Parse(r io.Reader) (Sections, error) {
	sections := Sections{}

	var open *Section
	var lines []string

	closeSection := func() {
		if open == nil {
			return
		}

		content := strings.Join(lines, "\n")
		open.Content = strings.TrimRightFunc(content, unicode.IsSpace)
		sections = append(sections, *open)
	}

	br := bufio.NewReader(r)

	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}

		if line != "" || err == nil {
			line = strings.TrimSuffix(line, "\n")

			if tokens := strings.Fields(line); len(tokens) > 1 && tokens[0] == headingMarker {
				closeSection()
				open = &Section{
					Tag:    tokens[1],
					Header: strings.Join(tokens[1:], " "),
				}
				lines = nil
			} else if open != nil {
				lines = append(lines, line)
			}
		}

		if err == io.EOF {
			break
		}
	}

	closeSection()

	return sections, nil
}
