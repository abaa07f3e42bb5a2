package panels

import (
	"fmt"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/app"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/inspector"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// InspectorPanel is the property sheet for the selected element. It shows the
// read-only identity of the selection and an editable row per attribute the
// inspector accepts.
type InspectorPanel struct {
	state     *app.State
	insp      *inspector.Inspector
	container fyne.CanvasObject

	typeLabel   *widget.Label
	boundsLabel *widget.Label
	statusLabel *widget.Label
	entries     map[string]*widget.Entry
	clearButton *widget.Button
}

// NewInspectorPanel creates a new inspector panel.
func NewInspectorPanel(state *app.State, insp *inspector.Inspector) *InspectorPanel {
	ip := &InspectorPanel{
		state:   state,
		insp:    insp,
		entries: make(map[string]*widget.Entry),
	}

	ip.typeLabel = widget.NewLabel("Nothing selected")
	ip.boundsLabel = widget.NewLabel("")
	ip.statusLabel = widget.NewLabel("")
	ip.statusLabel.Wrapping = fyne.TextWrapWord

	form := widget.NewForm()
	for _, name := range inspector.EditableAttributes {
		attr := name
		entry := widget.NewEntry()
		entry.OnSubmitted = func(value string) {
			ip.applyEdit(attr, value)
		}
		ip.entries[attr] = entry
		form.Append(attr, entry)
	}

	applyButton := widget.NewButton("Apply", func() {
		for _, name := range inspector.EditableAttributes {
			ip.applyEdit(name, ip.entries[name].Text)
		}
	})

	ip.clearButton = widget.NewButton("Deselect", func() {
		insp.Clear()
	})
	ip.clearButton.Disable()

	ip.container = container.NewVBox(
		widget.NewCard("Selection", "", container.NewVBox(
			ip.typeLabel,
			ip.boundsLabel,
		)),
		widget.NewCard("Attributes", "", container.NewVBox(
			form,
			applyButton,
			ip.statusLabel,
		)),
		ip.clearButton,
	)

	state.On(app.EventSelectionChanged, func(data interface{}) {
		sel, _ := data.(*inspector.Selection)
		ip.showSelection(sel)
	})

	ip.showSelection(nil)

	return ip
}

// Container returns the panel container.
func (ip *InspectorPanel) Container() fyne.CanvasObject {
	return ip.container
}

func (ip *InspectorPanel) applyEdit(name, value string) {
	sel := ip.insp.Current()
	if sel == nil {
		return
	}
	// Skip untouched attributes so a blanket Apply does not wipe ones the
	// element never had.
	if value == sel.Attributes[name] {
		return
	}
	if err := ip.insp.ApplyEdit(name, value); err != nil {
		ip.statusLabel.SetText(err.Error())
		return
	}
	ip.statusLabel.SetText("")
}

func (ip *InspectorPanel) showSelection(sel *inspector.Selection) {
	if sel == nil {
		ip.typeLabel.SetText("Nothing selected")
		ip.boundsLabel.SetText("")
		ip.statusLabel.SetText("")
		for _, entry := range ip.entries {
			entry.SetText("")
			entry.Disable()
		}
		ip.clearButton.Disable()
		return
	}

	ip.typeLabel.SetText(fmt.Sprintf("%s  (%s)", sel.ElementID, sel.ElementType))
	bb := sel.BoundingBox
	ip.boundsLabel.SetText(fmt.Sprintf("%.3f x %.3f m at (%.3f, %.3f)", bb.Width, bb.Height, bb.X, bb.Y))
	ip.statusLabel.SetText("")

	for name, entry := range ip.entries {
		entry.Enable()
		if name == "id" {
			entry.SetText(sel.ElementID)
		} else {
			entry.SetText(sel.Attributes[name])
		}
	}
	ip.clearButton.Enable()
}
