package panels

import (
	"net/url"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/app"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/boq"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/report"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ReportPanel renders the engineering report for the current drawing,
// including the quantity and measurement sections, as markdown.
type ReportPanel struct {
	state     *app.State
	container fyne.CanvasObject

	text    *widget.RichText
	geoLink *widget.Hyperlink
}

// NewReportPanel creates a new report panel.
func NewReportPanel(state *app.State) *ReportPanel {
	rp := &ReportPanel{
		state: state,
	}

	rp.text = widget.NewRichTextFromMarkdown("")
	rp.text.Wrapping = fyne.TextWrapWord

	rp.geoLink = widget.NewHyperlink("", nil)
	rp.geoLink.Hide()

	rp.container = container.NewBorder(
		nil,
		rp.geoLink,
		nil, nil,
		container.NewVScroll(rp.text),
	)

	refresh := func(interface{}) { rp.refresh() }
	state.On(app.EventReportChanged, refresh)
	state.On(app.EventContentMutated, refresh)
	state.On(app.EventShapesChanged, refresh)
	state.On(app.EventMeasurementAdded, refresh)
	state.On(app.EventMeasurementsCleared, refresh)

	rp.refresh()

	return rp
}

// Container returns the panel container.
func (rp *ReportPanel) Container() fyne.CanvasObject {
	return rp.container
}

func (rp *ReportPanel) refresh() {
	doc := rp.state.Document
	if doc.Empty() {
		rp.text.ParseMarkdown("Describe a structure to generate a drawing and its report.")
		rp.geoLink.Hide()
		return
	}

	bill := boq.FromScene(rp.state.Scene)
	rp.text.ParseMarkdown(report.Build(doc, rp.state.Report, bill, rp.state.Measurements()))

	if doc.Geo != nil {
		if u, err := url.Parse(doc.Geo.MapURL()); err == nil {
			rp.geoLink.SetText("View site on map")
			rp.geoLink.SetURL(u)
			rp.geoLink.Show()
			return
		}
	}
	rp.geoLink.Hide()
}
