// Package panels provides the side panel sections of the main window.
package panels

import (
	"fmt"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/app"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/inspector"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/tools"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/viewport"
	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/colorutil"
	"github.com/CarryCash/EngiVibe-2.5-Pro/ui/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	container *container.AppTabs

	// Tab content
	toolsPanel      *ToolsPanel
	inspectorPanel  *InspectorPanel
	reportPanel     *ReportPanel
	quantitiesPanel *QuantitiesPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, cvs *canvas.DrawingCanvas, machine *tools.Machine, insp *inspector.Inspector, mapper *viewport.Mapper) *SidePanel {
	sp := &SidePanel{
		state: state,
	}

	// Create individual panels
	sp.toolsPanel = NewToolsPanel(state, cvs, machine, mapper)
	sp.inspectorPanel = NewInspectorPanel(state, insp)
	sp.reportPanel = NewReportPanel(state)
	sp.quantitiesPanel = NewQuantitiesPanel(state)

	// Create tabbed container
	sp.container = container.NewAppTabs(
		container.NewTabItem("Tools", sp.toolsPanel.Container()),
		container.NewTabItem("Inspector", sp.inspectorPanel.Container()),
		container.NewTabItem("Report", sp.reportPanel.Container()),
		container.NewTabItem("Quantities", sp.quantitiesPanel.Container()),
	)

	// Jump to the inspector when a selection is made so the property sheet
	// is visible without an extra click.
	state.On(app.EventSelectionChanged, func(data interface{}) {
		if data != nil {
			sp.container.SelectIndex(1)
		}
	})

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// ToolsPanel hosts the tool palette, drawing options, the measurement list,
// and the detail query form.
type ToolsPanel struct {
	state     *app.State
	canvas    *canvas.DrawingCanvas
	machine   *tools.Machine
	mapper    *viewport.Mapper
	container fyne.CanvasObject

	toolSelect  *widget.RadioGroup
	snapCheck   *widget.Check
	gridEntry   *widget.Entry
	colorSelect *widget.Select
	measureList *widget.List
	detailEntry *widget.Entry
	detailHint  *widget.Label

	measureRows []string
}

// toolOrder maps radio entries to tools; the radio group shows String() names.
var toolOrder = []tools.Tool{
	tools.ToolSelect,
	tools.ToolMeasure,
	tools.ToolDetailQuery,
	tools.ToolDrawRect,
	tools.ToolDrawCircle,
	tools.ToolDrawPolyline,
	tools.ToolDrawArc,
}

// shapeColors are the palette choices for drawn shapes.
var shapeColors = []string{"orange", "red", "green", "blue", "magenta", "black"}

// NewToolsPanel creates the tools panel.
func NewToolsPanel(state *app.State, cvs *canvas.DrawingCanvas, machine *tools.Machine, mapper *viewport.Mapper) *ToolsPanel {
	tp := &ToolsPanel{
		state:   state,
		canvas:  cvs,
		machine: machine,
		mapper:  mapper,
	}

	names := make([]string, len(toolOrder))
	for i, t := range toolOrder {
		names[i] = t.String()
	}
	tp.toolSelect = widget.NewRadioGroup(names, func(selected string) {
		for _, t := range toolOrder {
			if t.String() == selected {
				machine.SetTool(t)
				return
			}
		}
	})
	tp.toolSelect.SetSelected(tools.ToolSelect.String())

	// Keep the radio in sync when the tool changes elsewhere: detail query
	// submission reverts to select, and shortcuts switch tools directly.
	state.On(app.EventToolChanged, func(data interface{}) {
		if t, ok := data.(tools.Tool); ok {
			if tp.toolSelect.Selected != t.String() {
				tp.toolSelect.SetSelected(t.String())
			}
			tp.updateDetailHint(t)
		}
	})

	tp.snapCheck = widget.NewCheck("Snap to grid", func(checked bool) {
		mapper.SnapEnabled = checked
		cvs.Refresh()
	})

	tp.gridEntry = widget.NewEntry()
	tp.gridEntry.SetText(fmt.Sprintf("%g", mapper.GridSize))
	tp.gridEntry.OnSubmitted = func(s string) {
		var v float64
		if _, err := fmt.Sscanf(s, "%g", &v); err == nil && v > 0 {
			mapper.GridSize = v
			cvs.Refresh()
		} else {
			tp.gridEntry.SetText(fmt.Sprintf("%g", mapper.GridSize))
		}
	}

	tp.colorSelect = widget.NewSelect(shapeColors, func(selected string) {
		machine.SetShapeColor(colorutil.Parse(selected))
	})
	tp.colorSelect.SetSelected("orange")

	eraseButton := widget.NewButton("Erase All Shapes", func() {
		state.EraseAllShapes()
		cvs.Refresh()
	})

	tp.measureList = widget.NewList(
		func() int {
			return len(tp.measureRows)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("measurement")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(tp.measureRows) {
				obj.(*widget.Label).SetText(tp.measureRows[id])
			}
		},
	)
	clearMeasureButton := widget.NewButton("Clear Measurements", func() {
		state.ClearMeasurements()
		cvs.Refresh()
	})

	tp.detailEntry = widget.NewEntry()
	tp.detailEntry.SetPlaceHolder("element id, e.g. beam-1")
	tp.detailHint = widget.NewLabel("")
	tp.detailHint.Wrapping = fyne.TextWrapWord
	detailButton := widget.NewButton("Request Detail", func() {
		if machine.SubmitDetailQuery(tp.detailEntry.Text) {
			tp.detailEntry.SetText("")
		}
	})
	tp.detailEntry.OnSubmitted = func(s string) {
		if machine.SubmitDetailQuery(s) {
			tp.detailEntry.SetText("")
		}
	}

	// Layout
	tp.container = container.NewVBox(
		widget.NewCard("Tool", "", tp.toolSelect),
		widget.NewCard("Drawing", "", container.NewVBox(
			tp.snapCheck,
			widget.NewLabel("Grid size (m):"),
			tp.gridEntry,
			widget.NewLabel("Shape color:"),
			tp.colorSelect,
			eraseButton,
		)),
		widget.NewCard("Measurements", "", container.NewVBox(
			container.NewGridWrap(fyne.NewSize(220, 120), tp.measureList),
			clearMeasureButton,
		)),
		widget.NewCard("Detail Query", "", container.NewVBox(
			tp.detailHint,
			tp.detailEntry,
			detailButton,
		)),
	)

	// Register for events
	state.On(app.EventMeasurementAdded, func(interface{}) { tp.refreshMeasurements() })
	state.On(app.EventMeasurementsCleared, func(interface{}) { tp.refreshMeasurements() })
	state.On(app.EventDocumentChanged, func(interface{}) { tp.refreshMeasurements() })

	tp.updateDetailHint(machine.ActiveTool())
	tp.refreshMeasurements()

	return tp
}

// Container returns the panel container.
func (tp *ToolsPanel) Container() fyne.CanvasObject {
	return tp.container
}

func (tp *ToolsPanel) refreshMeasurements() {
	ms := tp.state.Measurements()
	rows := make([]string, len(ms))
	for i, m := range ms {
		rows[i] = fmt.Sprintf("%d. %.3f m", i+1, m.Distance)
	}
	tp.measureRows = rows
	tp.measureList.Refresh()
}

func (tp *ToolsPanel) updateDetailHint(t tools.Tool) {
	if t == tools.ToolDetailQuery {
		tp.detailHint.SetText("Enter an element id to generate a close-up detail of it.")
	} else {
		tp.detailHint.SetText("Switch to the Detail tool to request a close-up drawing.")
	}
}
