// Package app provides application lifecycle management, configuration, and events.
package app

import (
	"fmt"
	"sync"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/annotate"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/document"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/history"
)

// State holds the application state: the generated document, its parsed
// scene, user annotations, and measurements.
type State struct {
	mu sync.RWMutex

	// Current generated document and its parsed element tree. The scene is
	// the canonical model; Document.Content is refreshed from it whenever an
	// edit mutates an element.
	Document document.BaseDocument
	Scene    *document.Scene

	// Engineering report accompanying the current document, as markdown.
	Report string

	// Undo/redo snapshots of user-drawn shapes.
	History *history.History

	// Committed measurements, oldest first.
	measurements []annotate.Measurement

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventDocumentChanged EventType = iota
	EventShapesChanged
	EventMeasurementAdded
	EventMeasurementsCleared
	EventSelectionChanged
	EventViewportChanged
	EventDetailRequested
	EventContentMutated
	EventToolChanged
	EventReportChanged
	EventGenerationStarted
	EventGenerationFailed
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with an empty document.
func NewState() *State {
	return &State{
		Document:  document.BaseDocument{Bounds: document.DefaultBounds},
		Scene:     &document.Scene{},
		History:   history.New(),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetDocument installs a newly generated document. Annotation history,
// measurements, and the report are replaced in the same step so no listener
// ever sees shapes from the old drawing over the new one.
func (s *State) SetDocument(doc document.BaseDocument, report string) error {
	scene := &document.Scene{}
	if !doc.Empty() {
		var err error
		scene, err = document.ParseScene(doc.Content)
		if err != nil {
			return fmt.Errorf("parse document: %w", err)
		}
	}

	s.mu.Lock()
	s.Document = doc
	s.Scene = scene
	s.Report = report
	s.History.Reset()
	s.measurements = nil
	s.mu.Unlock()

	s.Emit(EventDocumentChanged, doc)
	s.Emit(EventReportChanged, report)
	return nil
}

// ApplyMarkup replaces the document content after an attribute edit. The
// viewport and annotations are unaffected; only the base drawing re-renders.
func (s *State) ApplyMarkup(markup string) error {
	scene, err := document.ParseScene(markup)
	if err != nil {
		return fmt.Errorf("parse edited markup: %w", err)
	}

	s.mu.Lock()
	s.Scene = scene
	s.Document.Content = markup
	s.mu.Unlock()

	s.Emit(EventContentMutated, markup)
	return nil
}

// Shapes returns the current annotation snapshot.
func (s *State) Shapes() []annotate.Shape {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.History.Current()
}

// Undo steps the annotation history back one frame.
func (s *State) Undo() {
	s.mu.Lock()
	ok := s.History.CanUndo()
	if ok {
		s.History.Undo()
	}
	s.mu.Unlock()
	if ok {
		s.Emit(EventShapesChanged, nil)
	}
}

// Redo steps the annotation history forward one frame.
func (s *State) Redo() {
	s.mu.Lock()
	ok := s.History.CanRedo()
	if ok {
		s.History.Redo()
	}
	s.mu.Unlock()
	if ok {
		s.Emit(EventShapesChanged, nil)
	}
}

// EraseAllShapes commits an empty snapshot. A no-op when there is nothing to
// erase, so it never pushes an empty-over-empty history frame.
func (s *State) EraseAllShapes() {
	s.mu.Lock()
	empty := len(s.History.Current()) == 0
	if !empty {
		s.History.Commit(nil)
	}
	s.mu.Unlock()
	if !empty {
		s.Emit(EventShapesChanged, nil)
	}
}

// AddMeasurement appends a committed measurement.
func (s *State) AddMeasurement(m annotate.Measurement) {
	s.mu.Lock()
	s.measurements = append(s.measurements, m)
	s.mu.Unlock()
	s.Emit(EventMeasurementAdded, m)
}

// Measurements returns a copy of the committed measurements, oldest first.
func (s *State) Measurements() []annotate.Measurement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]annotate.Measurement(nil), s.measurements...)
}

// ClearMeasurements drops all committed measurements.
func (s *State) ClearMeasurements() {
	s.mu.Lock()
	had := len(s.measurements) > 0
	s.measurements = nil
	s.mu.Unlock()
	if had {
		s.Emit(EventMeasurementsCleared, nil)
	}
}
