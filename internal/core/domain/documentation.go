package domain

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"go.trai.ch/zerr"
)

// malformedMarker is emitted in place of a documentation comment whose markup the analyzer could not parse.
const malformedMarker = "<!-- Badly formed XML comment ignored"

const summaryElement = "summary"

// ParseSummary parses raw documentation markup and returns the text of its summary element.
// Absent documentation and documentation without a summary both yield "".
func ParseSummary(doc *string) (string, error) {
	if doc == nil || strings.TrimSpace(*doc) == "" {
		return "", nil
	}
	raw := *doc

	if strings.Contains(raw, malformedMarker) {
		return "", zerr.Wrap(ErrInvalidDocumentation, "analyzer reported badly formed markup")
	}

	dec := xml.NewDecoder(strings.NewReader("<doc>" + raw + "</doc>"))
	dec.Strict = true

	var (
		summary strings.Builder
		depth   int
		found   bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", zerr.With(zerr.Wrap(ErrInvalidDocumentation, "malformed markup"), "reason", err.Error())
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth > 0 {
				depth++
			} else if t.Name.Local == summaryElement && !found {
				depth = 1
			}
		case xml.EndElement:
			if depth > 0 {
				depth--
				if depth == 0 {
					found = true
				}
			}
		case xml.CharData:
			if depth > 0 {
				summary.Write(t)
			}
		}
	}

	return strings.Join(strings.Fields(summary.String()), " "), nil
}
