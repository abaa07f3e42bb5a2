// Package mainwindow assembles the application window: canvas, side panel,
// menus, toolbar, and keyboard shortcuts.
package mainwindow

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/annotate"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/app"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/boq"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/document"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/export"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/generate"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/input"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/inspector"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/tools"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/units"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/version"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/viewport"
	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/geometry"
	"github.com/CarryCash/EngiVibe-2.5-Pro/ui/canvas"
	"github.com/CarryCash/EngiVibe-2.5-Pro/ui/panels"
	"github.com/CarryCash/EngiVibe-2.5-Pro/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// Preference keys.
const (
	prefWindowWidth  = "window_width"
	prefWindowHeight = "window_height"
	prefSplitOffset  = "split_offset"
	prefSnapEnabled  = "snap_enabled"
	prefGridSize     = "grid_size"
)

// MainWindow is the application's main window.
type MainWindow struct {
	fyne.Window

	app       fyne.App
	state     *app.State
	generator *generate.Service
	prefs     *prefs.Prefs

	vp      *viewport.Controller
	mapper  *viewport.Mapper
	machine *tools.Machine
	insp    *inspector.Inspector
	bus     *input.Bus

	canvas    *canvas.DrawingCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label
	split     *container.Split

	generating bool
}

// New creates the main window and wires the interaction pipeline together.
func New(fyneApp fyne.App, state *app.State, generator *generate.Service) *MainWindow {
	mw := &MainWindow{
		Window:    fyneApp.NewWindow("EngiVibe Studio"),
		app:       fyneApp,
		state:     state,
		generator: generator,
		prefs:     prefs.Load(),
	}

	mw.vp = viewport.NewController(state.Document.Bounds)
	mw.mapper = viewport.NewMapper()
	mw.mapper.SnapEnabled = mw.prefs.Bool(prefSnapEnabled, false)
	mw.mapper.GridSize = mw.prefs.FloatWithFallback(prefGridSize, viewport.DefaultGridSize)
	mw.machine = tools.NewMachine(state.History)
	mw.insp = inspector.New()
	mw.insp.SetScene(state.Scene)
	mw.bus = input.NewBus()

	mw.canvas = canvas.NewDrawingCanvas(state, mw.vp, mw.mapper, mw.machine, mw.insp)

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.setupShortcuts()

	w := mw.prefs.FloatWithFallback(prefWindowWidth, 1280)
	h := mw.prefs.FloatWithFallback(prefWindowHeight, 800)
	mw.Resize(fyne.NewSize(float32(w), float32(h)))

	mw.SetCloseIntercept(func() {
		mw.savePrefs()
		mw.Close()
	})

	return mw
}

func (mw *MainWindow) setupUI() {
	mw.statusBar = widget.NewLabel("Ready")

	mw.sidePanel = panels.NewSidePanel(mw.state, mw.canvas, mw.machine, mw.insp, mw.mapper)

	canvasArea := container.NewBorder(
		mw.createToolbar(),
		nil, nil, nil,
		mw.canvas,
	)

	mw.split = container.NewHSplit(mw.sidePanel.Container(), canvasArea)
	mw.split.SetOffset(mw.prefs.FloatWithFallback(prefSplitOffset, 0.25))

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		mw.split,
	)

	mw.SetContent(content)
}

func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewButton("Generate...", func() { mw.showGenerateDialog() }),
		widget.NewSeparator(),
		widget.NewButton("Undo", func() { mw.state.Undo() }),
		widget.NewButton("Redo", func() { mw.state.Redo() }),
		widget.NewSeparator(),
		widget.NewButton("Zoom In", func() { mw.canvas.ZoomIn() }),
		widget.NewButton("Zoom Out", func() { mw.canvas.ZoomOut() }),
		widget.NewButton("Fit", func() { mw.canvas.ResetView() }),
	)
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Drawing...", func() { mw.showGenerateDialog() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Annotated SVG...", func() { mw.exportSVG() }),
		fyne.NewMenuItem("Export Quantities CSV...", func() { mw.exportBillCSV() }),
		fyne.NewMenuItem("Export Measurements CSV...", func() { mw.exportMeasurementsCSV() }),
		fyne.NewMenuItem("Export Shapes DXF...", func() { mw.exportDXF() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() { mw.bus.Dispatch(input.ActionUndo) }),
		fyne.NewMenuItem("Redo", func() { mw.bus.Dispatch(input.ActionRedo) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Erase All Shapes", func() { mw.state.EraseAllShapes() }),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { mw.canvas.ZoomIn() }),
		fyne.NewMenuItem("Zoom Out", func() { mw.canvas.ZoomOut() }),
		fyne.NewMenuItem("Reset to Fit", func() { mw.canvas.ResetView() }),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Unit Converter...", func() { mw.showConverterDialog() }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("About",
				fmt.Sprintf("EngiVibe Studio %s\nBuilt %s (%s)",
					version.Version, version.BuildTime, version.GitCommit),
				mw.Window)
		}),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, toolsMenu, helpMenu))
}

func (mw *MainWindow) setupEventHandlers() {
	state := mw.state

	// Gesture machine -> application
	mw.machine.OnMeasure(func(m annotate.Measurement) {
		state.AddMeasurement(m)
	})
	mw.machine.OnSelectClick(func(world geometry.Point2D) {
		mw.insp.HitTest(world)
	})
	mw.machine.OnDetail(func(elementID string) {
		state.Emit(app.EventDetailRequested, elementID)
	})
	mw.machine.OnPan(func(dx, dy float64) { mw.canvas.Pan(dx, dy) })
	mw.machine.OnChanged(func() { mw.canvas.Refresh() })
	mw.machine.OnToolChanged(func(t tools.Tool) {
		state.Emit(app.EventToolChanged, t)
		mw.updateStatus()
	})

	// Inspector -> application
	mw.insp.OnSelectionChanged(func(sel *inspector.Selection) {
		state.Emit(app.EventSelectionChanged, sel)
		mw.canvas.Refresh()
	})
	mw.insp.OnContentMutated(func(markup string) {
		if err := state.ApplyMarkup(markup); err != nil {
			log.Printf("edit produced unparseable markup: %v", err)
			return
		}
		mw.canvas.InvalidateBase()
		mw.canvas.Refresh()
	})

	// Undo/redo bus
	mw.bus.Subscribe(func(a input.Action) {
		switch a {
		case input.ActionUndo:
			state.Undo()
		case input.ActionRedo:
			state.Redo()
		}
	})

	// State -> window
	state.On(app.EventDocumentChanged, func(interface{}) {
		mw.vp.SetDocumentBounds(state.Document.Bounds)
		mw.machine.Reset()
		mw.insp.SetScene(state.Scene)
		state.Emit(app.EventToolChanged, mw.machine.ActiveTool())
		mw.canvas.InvalidateBase()
		mw.canvas.Refresh()
		mw.updateStatus()
	})
	state.On(app.EventShapesChanged, func(interface{}) { mw.canvas.Refresh() })
	state.On(app.EventMeasurementsCleared, func(interface{}) { mw.canvas.Refresh() })
	state.On(app.EventViewportChanged, func(interface{}) { mw.updateStatus() })
	state.On(app.EventDetailRequested, func(data interface{}) {
		if id, ok := data.(string); ok {
			mw.requestDetail(id)
		}
	})

	mw.canvas.OnViewportChanged(func() { mw.updateStatus() })
}

func (mw *MainWindow) setupShortcuts() {
	c := mw.Canvas()

	undoShortcut := &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	c.AddShortcut(undoShortcut, func(fyne.Shortcut) { mw.bus.Dispatch(input.ActionUndo) })

	redoShortcut := &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}
	c.AddShortcut(redoShortcut, func(fyne.Shortcut) { mw.bus.Dispatch(input.ActionRedo) })

	redoShortcutY := &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}
	c.AddShortcut(redoShortcutY, func(fyne.Shortcut) { mw.bus.Dispatch(input.ActionRedo) })
}

func (mw *MainWindow) updateStatus() {
	view := mw.vp.View()
	doc := mw.vp.DocumentBounds()
	zoom := 100.0
	if view.Width > 0 {
		zoom = doc.Width / view.Width * 100
	}
	mw.statusBar.SetText(fmt.Sprintf("Tool: %s | Zoom: %.0f%% | View: %.1f x %.1f m",
		mw.machine.ActiveTool(), zoom, view.Width, view.Height))
}

func (mw *MainWindow) showGenerateDialog() {
	if mw.generating {
		return
	}

	entry := widget.NewMultiLineEntry()
	entry.SetPlaceHolder("e.g. a 12m steel warehouse portal frame with 4 columns")
	entry.Wrapping = fyne.TextWrapWord

	form := dialog.NewForm("Generate Drawing", "Generate", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Structure", entry)},
		func(ok bool) {
			if !ok {
				return
			}
			mw.runGeneration(func(ctx context.Context) (document.BaseDocument, string, error) {
				return mw.generator.Generate(ctx, entry.Text)
			})
		},
		mw.Window)
	form.Resize(fyne.NewSize(480, 240))
	form.Show()
}

func (mw *MainWindow) requestDetail(elementID string) {
	if mw.generating || mw.state.Document.Empty() {
		return
	}
	markup := mw.state.Scene.Markup()
	mw.runGeneration(func(ctx context.Context) (document.BaseDocument, string, error) {
		return mw.generator.GenerateDetail(ctx, elementID, markup)
	})
}

// runGeneration performs one drawing request off the UI goroutine and installs
// the result. Only one request runs at a time.
func (mw *MainWindow) runGeneration(run func(ctx context.Context) (document.BaseDocument, string, error)) {
	mw.generating = true
	mw.state.Emit(app.EventGenerationStarted, nil)
	mw.statusBar.SetText("Generating drawing...")

	progress := dialog.NewCustomWithoutButtons("Generating", widget.NewProgressBarInfinite(), mw.Window)
	progress.Show()

	go func() {
		doc, reportBody, err := run(context.Background())

		progress.Hide()
		mw.generating = false

		if err != nil {
			mw.state.Emit(app.EventGenerationFailed, err)
			mw.updateStatus()
			dialog.ShowError(err, mw.Window)
			return
		}
		if err := mw.state.SetDocument(doc, reportBody); err != nil {
			mw.state.Emit(app.EventGenerationFailed, err)
			mw.updateStatus()
			dialog.ShowError(err, mw.Window)
			return
		}
	}()
}

func (mw *MainWindow) showConverterDialog() {
	symbols := make([]string, len(units.Lengths))
	for i, u := range units.Lengths {
		symbols[i] = u.Symbol
	}

	valueEntry := widget.NewEntry()
	valueEntry.SetText("1")
	fromSelect := widget.NewSelect(symbols, nil)
	fromSelect.SetSelected("m")
	toSelect := widget.NewSelect(symbols, nil)
	toSelect.SetSelected("mm")
	result := widget.NewLabel("")

	convert := func() {
		var v float64
		if _, err := fmt.Sscanf(valueEntry.Text, "%g", &v); err != nil {
			result.SetText("enter a number")
			return
		}
		from, err := units.Find(fromSelect.Selected)
		if err != nil {
			result.SetText(err.Error())
			return
		}
		to, err := units.Find(toSelect.Selected)
		if err != nil {
			result.SetText(err.Error())
			return
		}
		result.SetText(fmt.Sprintf("%.6g %s", units.ConvertLength(v, from, to), to.Symbol))
	}
	valueEntry.OnChanged = func(string) { convert() }
	fromSelect.OnChanged = func(string) { convert() }
	toSelect.OnChanged = func(string) { convert() }
	convert()

	content := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Value", valueEntry),
			widget.NewFormItem("From", fromSelect),
			widget.NewFormItem("To", toSelect),
		),
		result,
	)
	dialog.ShowCustom("Unit Converter", "Close", content, mw.Window)
}

func (mw *MainWindow) exportSVG() {
	mw.saveToFile("drawing.svg", ".svg", func(w io.Writer) error {
		_, err := io.WriteString(w, export.AnnotatedSVG(mw.state.Scene, mw.state.Shapes(), mw.state.Measurements()))
		return err
	})
}

func (mw *MainWindow) exportBillCSV() {
	mw.saveToFile("quantities.csv", ".csv", func(w io.Writer) error {
		return export.WriteBillCSV(w, boq.FromScene(mw.state.Scene))
	})
}

func (mw *MainWindow) exportMeasurementsCSV() {
	mw.saveToFile("measurements.csv", ".csv", func(w io.Writer) error {
		return export.WriteMeasurementsCSV(w, mw.state.Measurements())
	})
}

func (mw *MainWindow) exportDXF() {
	mw.saveToFile("shapes.dxf", ".dxf", func(w io.Writer) error {
		return export.WriteDXF(w, mw.state.Shapes())
	})
}

func (mw *MainWindow) saveToFile(suggested, ext string, write func(w io.Writer) error) {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()
		if err := write(writer); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	save.SetFileName(suggested)
	save.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	save.Show()
}

func (mw *MainWindow) savePrefs() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefWindowHeight, float64(size.Height))
	mw.prefs.SetFloat(prefSplitOffset, mw.split.Offset)
	mw.prefs.SetBool(prefSnapEnabled, mw.mapper.SnapEnabled)
	mw.prefs.SetFloat(prefGridSize, mw.mapper.GridSize)
	if err := mw.prefs.Save(); err != nil {
		log.Printf("saving preferences: %v", err)
	}
}
