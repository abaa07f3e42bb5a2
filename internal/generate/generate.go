package generate

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/document"
)

const drawingSystemPrompt = `You are a structural engineering draftsman. Given a
description of a structure, produce a 2D technical drawing as SVG.

Rules for the SVG:
- One root <svg> element with a viewBox matching the drawing extents.
- Give every structural element a meaningful id (beam-1, col-2, slab-1, ...)
  and a data-type attribute naming its kind (beam, column, slab, brace, ...).
- Group related elements in <g> containers with ids.
- Use ids prefixed "grid" only for grid lines and "arrow" only for dimension
  arrows; those are treated as scaffolding.
- Coordinates are in meters.

Reply format, in this order:
- a line "BOUNDS: minX minY width height" declaring the drawing extents
- if the description names a real place, a line GEO: {"lat":..,"lng":..,"name":".."}
- the drawing in a fenced code block tagged svg
- an engineering report in markdown: assumptions, member sizing, load notes.`

const detailSystemPrompt = `You are a structural engineering draftsman. Given an
existing drawing and the id of one element in it, produce a zoomed-in detail
drawing of that element (connections, reinforcement, section cut) as SVG.

Follow the same reply format: a BOUNDS line, the drawing in a fenced code
block tagged svg, then markdown notes for the detail.`

// retries for transient API failures before giving up.
const maxRetries = 3

// Service produces documents from natural-language descriptions.
type Service struct {
	client *Client
}

// NewService creates a generation service. The key is required; requests
// without one fail at call time, not construction time.
func NewService(apiKey, model string) *Service {
	return &Service{client: NewClient(apiKey, model)}
}

// Generate asks for a drawing of the described structure. It returns the
// parsed document and the accompanying markdown report.
func (s *Service) Generate(ctx context.Context, description string) (document.BaseDocument, string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return document.BaseDocument{}, "", fmt.Errorf("empty description")
	}

	log.Printf("generating drawing for %q", truncate(description, 80))
	reply, err := s.client.CompleteWithRetry(ctx, drawingSystemPrompt, description, maxRetries)
	if err != nil {
		return document.BaseDocument{}, "", fmt.Errorf("generate drawing: %w", err)
	}

	res, err := ParseReply(reply)
	if err != nil {
		return document.BaseDocument{}, "", fmt.Errorf("generate drawing: %w", err)
	}
	doc := res.Document()
	log.Printf("generated drawing: %d bytes markup, bounds %v", len(doc.Content), doc.Bounds)
	return doc, res.Report, nil
}

// GenerateDetail asks for a zoomed-in detail drawing of one element of the
// current document.
func (s *Service) GenerateDetail(ctx context.Context, elementID, markup string) (document.BaseDocument, string, error) {
	if elementID == "" {
		return document.BaseDocument{}, "", fmt.Errorf("empty element id")
	}

	prompt := fmt.Sprintf("Current drawing:\n\n%s\n\nProduce a detail drawing of element %q.", markup, elementID)
	log.Printf("requesting detail for element %q", elementID)
	reply, err := s.client.CompleteWithRetry(ctx, detailSystemPrompt, prompt, maxRetries)
	if err != nil {
		return document.BaseDocument{}, "", fmt.Errorf("generate detail for %q: %w", elementID, err)
	}

	res, err := ParseReply(reply)
	if err != nil {
		return document.BaseDocument{}, "", fmt.Errorf("generate detail for %q: %w", elementID, err)
	}
	return res.Document(), res.Report, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
