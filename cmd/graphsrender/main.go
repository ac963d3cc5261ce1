package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lewiswolf/graphs/src/animation"
	"github.com/lewiswolf/graphs/src/dsp"
	"github.com/lewiswolf/graphs/src/graphs"
	"github.com/lewiswolf/graphs/src/types"
)

func main() {
	var (
		ganttFile string
		demo      bool
		outDir    string
		colorMap  string
		size      int
		logLevel  string
	)
	flag.StringVar(&ganttFile, "gantt", "", "Path to a JSON file of gantt events to render")
	flag.BoolVar(&demo, "demo", false, "Render one example of every figure kind")
	flag.StringVar(&outDir, "out", ".", "Directory to write figures into")
	flag.StringVar(&colorMap, "colormap", "", "Colour map override (e.g. Viridis)")
	flag.IntVar(&size, "size", 0, "Figure width override in pixels")
	flag.StringVar(&logLevel, "loglevel", "warn", "Log level: debug, info, warn, error")
	flag.Parse()

	graphs.SetLogLevel(logLevel)

	if !demo && ganttFile == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -gantt <file> or -demo")
		flag.Usage()
		os.Exit(2)
	}

	settings := types.DefaultSettings()
	settings.OutputType = types.OutputPNG
	if colorMap != "" {
		settings.ColorMap = colorMap
	}
	if size > 0 {
		settings.ImageSize = size
	}

	r, err := graphs.New(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if ganttFile != "" {
		if err := renderGanttFile(r, ganttFile, outDir); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	if demo {
		if err := renderDemo(r, outDir); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// renderGanttFile reads a JSON array of events and writes the chart next to
// the other outputs, named after the input file.
func renderGanttFile(r *graphs.Renderer, path, outDir string) error {
	events, err := loadGanttEvents(path)
	if err != nil {
		return err
	}
	fig, err := r.Gantt(events)
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	base := filepath.Base(path)
	base = base[:len(base)-len(filepath.Ext(base))]
	out := filepath.Join(outDir, base)
	if err := r.Export(fig, out); err != nil {
		return err
	}
	fmt.Printf("wrote %s.png (%d events)\n", out, len(events))
	return nil
}

func loadGanttEvents(path string) ([]types.GanttEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var events []types.GanttEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%s: no events", path)
	}
	return events, nil
}

// renderDemo renders one figure of every kind from synthetic inputs, plus a
// short animated sweep, and reports each file as it lands.
func renderDemo(r *graphs.Renderer, outDir string) error {
	const sampleRate = 44100

	saw := dsp.Sawtooth(220, sampleRate, 0.25)
	sweep := dsp.SineSweep(sampleRate)

	stft, err := dsp.STFT(sweep, 512, 256, 512)
	if err != nil {
		return err
	}
	mel, err := dsp.MelSpectrogram(sweep, 64, 512, 256, 512, sampleRate, 20.05)
	if err != nil {
		return err
	}

	figures := []struct {
		name   string
		render func() (*types.RenderedFigure, error)
	}{
		{"gantt", func() (*types.RenderedFigure, error) { return r.Gantt(demoEvents()) }},
		{"waveform", func() (*types.RenderedFigure, error) {
			return r.Waveform([]types.Series{saw, sweep[:len(saw)]}, sampleRate)
		}},
		{"spectrogram_fft", func() (*types.RenderedFigure, error) {
			return r.Spectrogram(stft, graphs.SpectrogramOptions{
				InputType:  graphs.InputFFT,
				SampleRate: sampleRate,
				HopLength:  256,
			})
		}},
		{"spectrogram_mel", func() (*types.RenderedFigure, error) {
			return r.Spectrogram(mel, graphs.SpectrogramOptions{
				InputType:  graphs.InputMel,
				SampleRate: sampleRate,
				HopLength:  256,
				FMin:       20.05,
			})
		}},
		{"matrix", func() (*types.RenderedFigure, error) { return r.Matrix(demoMatrix()) }},
		{"circle", func() (*types.RenderedFigure, error) { return r.Circle(1) }},
		{"rectangle", func() (*types.RenderedFigure, error) { return r.Rectangle(2, 1) }},
		{"polygon", func() (*types.RenderedFigure, error) {
			return r.Polygon([]graphs.Vertex{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 1}})
		}},
		{"vertices", func() (*types.RenderedFigure, error) {
			return r.Vertices([]graphs.Vertex{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0.5}, {X: 3, Y: 2}})
		}},
	}

	for _, f := range figures {
		fig, err := f.render()
		if err != nil {
			return fmt.Errorf("render %s: %w", f.name, err)
		}
		out := filepath.Join(outDir, f.name)
		if err := r.Export(fig, out); err != nil {
			return err
		}
		fmt.Printf("wrote %s.png\n", out)
	}

	return renderDemoAnimation(r, outDir)
}

// renderDemoAnimation sweeps a sawtooth up an octave, one waveform per frame.
func renderDemoAnimation(r *graphs.Renderer, outDir string) error {
	anim, err := animation.New(types.DefaultAnimationSettings())
	if err != nil {
		return err
	}
	const sampleRate = 8000
	for freq := 110.0; freq <= 220; freq += 11 {
		fig, err := r.Waveform([]types.Series{dsp.Sawtooth(freq, sampleRate, 0.05)}, sampleRate)
		if err != nil {
			return err
		}
		if err := anim.AddFigure(fig); err != nil {
			return err
		}
	}
	out := filepath.Join(outDir, "waveform_sweep")
	if err := anim.Render(out); err != nil {
		return err
	}
	fmt.Printf("wrote %s.gif\n", out)
	return nil
}

func demoEvents() []types.GanttEvent {
	return []types.GanttEvent{
		{Event: "research", Start: types.Date{Year: 2026, Month: 1, Day: 5}, End: types.Date{Year: 2026, Month: 2, Day: 13}, Reference: "phase 1"},
		{Event: "prototype", Start: types.Date{Year: 2026, Month: 2, Day: 2}, End: types.Date{Year: 2026, Month: 3, Day: 27}, Reference: "phase 1"},
		{Event: "evaluation", Start: types.Date{Year: 2026, Month: 3, Day: 16}, End: types.Date{Year: 2026, Month: 4, Day: 24}, Reference: "phase 2"},
		{Event: "write-up", Start: types.Date{Year: 2026, Month: 4, Day: 13}, End: types.Date{Year: 2026, Month: 6, Day: 1}},
	}
}

func demoMatrix() types.Matrix {
	m := make(types.Matrix, 32)
	for i := range m {
		m[i] = make(types.Series, 32)
		for j := range m[i] {
			m[i][j] = float64((i - 16) * (j - 16))
		}
	}
	return m
}
