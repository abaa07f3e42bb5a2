package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/document"
)

// Result is a parsed model reply: the drawing, its declared bounds, an
// optional site location, and the remaining prose as the report.
type Result struct {
	Markup string
	Bounds string
	Geo    *document.GeoLocation
	Report string
}

// Document converts the result into a BaseDocument.
func (r Result) Document() document.BaseDocument {
	return document.New(r.Markup, r.Bounds, r.Geo)
}

// ParseReply extracts the structured parts of a model reply. The reply is
// expected to carry exactly one fenced svg (or xml) code block, an optional
// "BOUNDS: minX minY width height" line, and an optional "GEO: {...}" line;
// everything else is kept verbatim as the markdown report.
func ParseReply(text string) (Result, error) {
	var res Result

	markup, rest, err := extractFencedBlock(text)
	if err != nil {
		return res, err
	}
	res.Markup = markup

	var report []string
	for _, line := range strings.Split(rest, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "BOUNDS:"):
			res.Bounds = strings.TrimSpace(strings.TrimPrefix(trimmed, "BOUNDS:"))
		case strings.HasPrefix(trimmed, "GEO:"):
			payload := strings.TrimSpace(strings.TrimPrefix(trimmed, "GEO:"))
			var geo document.GeoLocation
			if err := json.Unmarshal([]byte(payload), &geo); err == nil {
				res.Geo = &geo
			}
		default:
			report = append(report, line)
		}
	}
	res.Report = strings.TrimSpace(strings.Join(report, "\n"))
	return res, nil
}

// extractFencedBlock pulls the first ```svg or ```xml block out of text and
// returns the block body and the surrounding prose.
func extractFencedBlock(text string) (block, rest string, err error) {
	for _, lang := range []string{"```svg", "```xml"} {
		start := strings.Index(text, lang)
		if start < 0 {
			continue
		}
		bodyStart := start + len(lang)
		end := strings.Index(text[bodyStart:], "```")
		if end < 0 {
			return "", "", fmt.Errorf("unterminated %s block in reply", lang)
		}
		block = strings.TrimSpace(text[bodyStart : bodyStart+end])
		rest = text[:start] + text[bodyStart+end+3:]
		return block, rest, nil
	}
	// Some replies skip the fence and send bare markup.
	if start := strings.Index(text, "<svg"); start >= 0 {
		if end := strings.LastIndex(text, "</svg>"); end > start {
			end += len("</svg>")
			return strings.TrimSpace(text[start:end]), text[:start] + text[end:], nil
		}
	}
	return "", "", fmt.Errorf("no drawing block in reply")
}
