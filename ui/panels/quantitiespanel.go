package panels

import (
	"fmt"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/app"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/boq"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// QuantitiesPanel shows the bill of quantities extracted from the current
// drawing, one row per element type.
type QuantitiesPanel struct {
	state     *app.State
	container fyne.CanvasObject

	table      *widget.Table
	totalLabel *widget.Label
	lines      []boq.Line
}

var quantityHeaders = []string{"Element", "Count", "Length (m)", "Area (m²)"}

// NewQuantitiesPanel creates a new quantities panel.
func NewQuantitiesPanel(state *app.State) *QuantitiesPanel {
	qp := &QuantitiesPanel{
		state: state,
	}

	qp.table = widget.NewTable(
		func() (int, int) {
			return len(qp.lines) + 1, len(quantityHeaders)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("element type")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			label.TextStyle = fyne.TextStyle{}
			if id.Row == 0 {
				label.TextStyle = fyne.TextStyle{Bold: true}
				label.SetText(quantityHeaders[id.Col])
				return
			}
			line := qp.lines[id.Row-1]
			switch id.Col {
			case 0:
				label.SetText(line.Type)
			case 1:
				label.SetText(fmt.Sprintf("%d", line.Count))
			case 2:
				label.SetText(fmt.Sprintf("%.3f", line.TotalLength))
			case 3:
				label.SetText(fmt.Sprintf("%.3f", line.TotalArea))
			}
		},
	)
	qp.table.SetColumnWidth(0, 110)

	qp.totalLabel = widget.NewLabel("")

	qp.container = container.NewBorder(
		nil,
		qp.totalLabel,
		nil, nil,
		qp.table,
	)

	refresh := func(interface{}) { qp.refresh() }
	state.On(app.EventDocumentChanged, refresh)
	state.On(app.EventContentMutated, refresh)

	qp.refresh()

	return qp
}

// Container returns the panel container.
func (qp *QuantitiesPanel) Container() fyne.CanvasObject {
	return qp.container
}

func (qp *QuantitiesPanel) refresh() {
	qp.lines = boq.FromScene(qp.state.Scene)
	qp.totalLabel.SetText(fmt.Sprintf("%d counted elements", boq.TotalCount(qp.lines)))
	qp.table.Refresh()
}
