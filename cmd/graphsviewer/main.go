package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	png "image/png"
	"os"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/lewiswolf/graphs/src/colormap"
	"github.com/lewiswolf/graphs/src/dsp"
	"github.com/lewiswolf/graphs/src/graphs"
	"github.com/lewiswolf/graphs/src/types"
)

type uiState struct {
	app    fyne.App
	window fyne.Window

	settings types.GraphSettings
	events   []types.GanttEvent

	ganttCanvas *canvas.Image
	waveCanvas  *canvas.Image
	specCanvas  *canvas.Image
	matCanvas   *canvas.Image

	fileLabel *widget.Label
}

func main() {
	var (
		ganttFile string
		logLevel  string
	)
	flag.StringVar(&ganttFile, "gantt", "", "JSON file of gantt events to open at startup")
	flag.StringVar(&logLevel, "loglevel", "warn", "Log level: debug, info, warn, error")
	flag.Parse()

	graphs.SetLogLevel(logLevel)

	a := app.NewWithID("com.lewiswolf.graphsviewer")
	w := a.NewWindow("Graphs Viewer")
	w.Resize(fyne.NewSize(1000, 760))

	state := &uiState{
		app:      a,
		window:   w,
		settings: types.DefaultSettings(),
		events:   sampleEvents(),
	}
	state.settings.ImageSize = 900

	placeholder := image.NewRGBA(image.Rect(0, 0, 100, 60))
	for _, c := range []**canvas.Image{&state.ganttCanvas, &state.waveCanvas, &state.specCanvas, &state.matCanvas} {
		img := canvas.NewImageFromImage(placeholder)
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(900, 500))
		*c = img
	}

	mapSelect := widget.NewSelect(colormap.Names(), func(v string) {
		state.settings.ColorMap = v
		state.refresh()
	})
	mapSelect.SetSelected(state.settings.ColorMap)

	gridChk := widget.NewCheck("Grid", func(on bool) {
		state.settings.ShowGrid = on
		state.refresh()
	})
	gridChk.SetChecked(state.settings.ShowGrid)
	barChk := widget.NewCheck("Colorbar", func(on bool) {
		state.settings.ShowColorbar = on
		state.refresh()
	})
	barChk.SetChecked(state.settings.ShowColorbar)

	state.fileLabel = widget.NewLabel("(sample events)")
	openBtn := widget.NewButton("Open Events…", func() { openEventsDialog(state) })

	tabs := container.NewAppTabs(
		container.NewTabItem("Gantt", tabContent(state, state.ganttCanvas, "gantt")),
		container.NewTabItem("Waveform", tabContent(state, state.waveCanvas, "waveform")),
		container.NewTabItem("Spectrogram", tabContent(state, state.specCanvas, "spectrogram")),
		container.NewTabItem("Matrix", tabContent(state, state.matCanvas, "matrix")),
	)

	top := container.NewHBox(
		widget.NewLabel("Colour map:"), mapSelect,
		gridChk, barChk,
		openBtn, state.fileLabel,
	)
	w.SetContent(container.NewBorder(top, nil, nil, nil, tabs))

	if ganttFile != "" {
		loadEvents(state, ganttFile)
	}
	state.refresh()
	w.ShowAndRun()
}

// tabContent wraps a chart canvas with its export button.
func tabContent(state *uiState, img *canvas.Image, name string) fyne.CanvasObject {
	export := widget.NewButton("Export PNG…", func() { exportChartPNG(state, img, name+".png") })
	return container.NewBorder(nil, container.NewHBox(export), nil, nil, container.NewVScroll(img))
}

// refresh re-renders every tab from the current settings. Render errors show
// as dialogs rather than killing the viewer; the stale image stays up.
func (state *uiState) refresh() {
	r, err := graphs.New(state.settings)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}

	const sampleRate = 44100
	sweep := dsp.SineSweep(sampleRate)

	if fig, err := r.Gantt(state.events); err == nil {
		setFigure(state.ganttCanvas, fig)
	} else {
		dialog.ShowError(fmt.Errorf("gantt: %w", err), state.window)
	}

	saw := dsp.Sawtooth(220, sampleRate, 0.25)
	if fig, err := r.Waveform([]types.Series{saw, sweep[:len(saw)]}, sampleRate); err == nil {
		setFigure(state.waveCanvas, fig)
	}

	if mel, err := dsp.MelSpectrogram(sweep, 64, 512, 256, 512, sampleRate, 20.05); err == nil {
		fig, err := r.Spectrogram(mel, graphs.SpectrogramOptions{
			InputType:  graphs.InputMel,
			SampleRate: sampleRate,
			HopLength:  256,
			FMin:       20.05,
		})
		if err == nil {
			setFigure(state.specCanvas, fig)
		}
	}

	if fig, err := r.Matrix(sampleMatrix()); err == nil {
		setFigure(state.matCanvas, fig)
	}
}

func setFigure(img *canvas.Image, fig *types.RenderedFigure) {
	img.Image = fig.Image
	img.Refresh()
}

func openEventsDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		loadEvents(state, rc.URI().Path())
	}, state.window)
	d.Show()
}

func loadEvents(state *uiState, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	var events []types.GanttEvent
	if err := json.Unmarshal(data, &events); err != nil {
		dialog.ShowError(fmt.Errorf("parse %s: %w", path, err), state.window)
		return
	}
	if len(events) == 0 {
		dialog.ShowError(fmt.Errorf("%s: no events", path), state.window)
		return
	}
	state.events = events
	state.fileLabel.SetText(path)
	state.refresh()
}

func exportChartPNG(state *uiState, img *canvas.Image, defaultName string) {
	if img == nil || img.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		_ = png.Encode(wc, img.Image)
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

func sampleEvents() []types.GanttEvent {
	return []types.GanttEvent{
		{Event: "research", Start: types.Date{Year: 2026, Month: 1, Day: 5}, End: types.Date{Year: 2026, Month: 2, Day: 13}, Reference: "phase 1"},
		{Event: "prototype", Start: types.Date{Year: 2026, Month: 2, Day: 2}, End: types.Date{Year: 2026, Month: 3, Day: 27}, Reference: "phase 1"},
		{Event: "evaluation", Start: types.Date{Year: 2026, Month: 3, Day: 16}, End: types.Date{Year: 2026, Month: 4, Day: 24}, Reference: "phase 2"},
		{Event: "write-up", Start: types.Date{Year: 2026, Month: 4, Day: 13}, End: types.Date{Year: 2026, Month: 6, Day: 1}, Color: "#ff7f00"},
	}
}

func sampleMatrix() types.Matrix {
	m := make(types.Matrix, 32)
	for i := range m {
		m[i] = make(types.Series, 32)
		for j := range m[i] {
			m[i][j] = float64((i - 16) * (j - 16))
		}
	}
	return m
}
