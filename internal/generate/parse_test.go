package generate

import (
	"strings"
	"testing"
)

const sampleReply = "BOUNDS: 0 0 120 40\n" +
	"GEO: {\"lat\":51.5074,\"lng\":-0.1278,\"name\":\"London\"}\n" +
	"```svg\n" +
	"<svg viewBox=\"0 0 120 40\"><rect id=\"beam-1\" data-type=\"beam\" x=\"10\" y=\"10\" width=\"100\" height=\"4\"/></svg>\n" +
	"```\n" +
	"## Assumptions\n\nSimply supported span, 6 kN/m uniform load.\n"

func TestParseReply(t *testing.T) {
	res, err := ParseReply(sampleReply)
	if err != nil {
		t.Fatalf("parse reply: %v", err)
	}
	if !strings.HasPrefix(res.Markup, "<svg") || !strings.HasSuffix(res.Markup, "</svg>") {
		t.Fatalf("got markup %q", res.Markup)
	}
	if res.Bounds != "0 0 120 40" {
		t.Fatalf("got bounds %q, want %q", res.Bounds, "0 0 120 40")
	}
	if res.Geo == nil || res.Geo.Name != "London" || res.Geo.Lat != 51.5074 {
		t.Fatalf("got geo %+v", res.Geo)
	}
	if !strings.HasPrefix(res.Report, "## Assumptions") {
		t.Fatalf("got report %q", res.Report)
	}
	if strings.Contains(res.Report, "BOUNDS") || strings.Contains(res.Report, "```") {
		t.Fatal("report should not carry structural lines or fences")
	}

	doc := res.Document()
	if doc.Bounds.Width != 120 || doc.Bounds.Height != 40 {
		t.Fatalf("got document bounds %v", doc.Bounds)
	}
}

func TestParseReplyXMLFence(t *testing.T) {
	reply := "```xml\n<svg viewBox=\"0 0 10 10\"/>\n```\nnotes"
	res, err := ParseReply(reply)
	if err != nil {
		t.Fatalf("parse reply: %v", err)
	}
	if res.Markup != `<svg viewBox="0 0 10 10"/>` {
		t.Fatalf("got markup %q", res.Markup)
	}
	if res.Report != "notes" {
		t.Fatalf("got report %q", res.Report)
	}
}

func TestParseReplyBareMarkup(t *testing.T) {
	reply := "Here is the drawing.\n<svg viewBox=\"0 0 10 10\"><rect/></svg>\nDone."
	res, err := ParseReply(reply)
	if err != nil {
		t.Fatalf("parse reply: %v", err)
	}
	if !strings.HasPrefix(res.Markup, "<svg") {
		t.Fatalf("got markup %q", res.Markup)
	}
	if !strings.Contains(res.Report, "Here is the drawing.") {
		t.Fatalf("got report %q", res.Report)
	}
}

func TestParseReplyMissingBoundsFallsBack(t *testing.T) {
	reply := "```svg\n<svg viewBox=\"0 0 10 10\"/>\n```"
	res, err := ParseReply(reply)
	if err != nil {
		t.Fatalf("parse reply: %v", err)
	}
	doc := res.Document()
	// No BOUNDS line means the default document extents apply.
	if doc.Bounds.Width != 100 || doc.Bounds.Height != 100 {
		t.Fatalf("got bounds %v, want default 100x100", doc.Bounds)
	}
}

func TestParseReplyNoDrawing(t *testing.T) {
	if _, err := ParseReply("I cannot draw that."); err == nil {
		t.Fatal("expected error for reply without a drawing")
	}
	if _, err := ParseReply("```svg\n<svg/>"); err == nil {
		t.Fatal("expected error for unterminated fence")
	}
}

func TestParseReplyBadGeoIgnored(t *testing.T) {
	reply := "GEO: not-json\n```svg\n<svg viewBox=\"0 0 10 10\"/>\n```"
	res, err := ParseReply(reply)
	if err != nil {
		t.Fatalf("parse reply: %v", err)
	}
	if res.Geo != nil {
		t.Fatal("malformed geo payload should be dropped, not fatal")
	}
}
