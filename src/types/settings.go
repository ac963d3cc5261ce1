package types

// OutputType selects how a figure leaves the renderer.
type OutputType string

const (
	// OutputNone keeps the figure in memory only (no file is written).
	OutputNone OutputType = ""
	// OutputPNG writes "<export path>.png".
	OutputPNG OutputType = "png"
)

// GraphSettings carries the display and export options shared by every chart
// kind. Obtain a baseline from DefaultSettings and mutate fields before
// constructing a renderer; the zero value is not usable.
type GraphSettings struct {
	// Display options.
	AxisColor     string // global axis, tick and label colour (hex)
	BGColor       string // plot background colour (hex; "" means transparent)
	ColorMap      string // named colour map used for categories and heatmaps
	ContentColor  string // default colour for chart content (hex)
	EmphasisColor string // secondary colour used for accenting (hex)
	FontSize      int    // base label size in points at canonical width
	ShowColorbar  bool   // draw the value colorbar on colour-mapped charts
	ShowGrid      bool   // draw grid lines

	// Export options.
	ExportPath string     // destination path, without extension
	ImageSize  int        // canonical exported width in pixels
	OutputType OutputType // how the figure is rendered on export
}

// DefaultSettings returns the library defaults: the Greens colour map with a
// dark-green content colour on a transparent background, 1200 px wide exports.
func DefaultSettings() GraphSettings {
	return GraphSettings{
		AxisColor:     "#000000",
		BGColor:       "",
		ColorMap:      "Greens",
		ContentColor:  "#1b9e31",
		EmphasisColor: "#126b21",
		FontSize:      18,
		ShowColorbar:  true,
		ShowGrid:      true,
		ExportPath:    "",
		ImageSize:     1200,
		OutputType:    OutputNone,
	}
}

// AnimationSettings carries the export options for frame-sequence animations.
type AnimationSettings struct {
	FPS       int // playback rate
	FrameSize int // canonical width of every frame in pixels
	LoopCount int // 0 loops forever
}

// DefaultAnimationSettings mirrors DefaultSettings for animations.
func DefaultAnimationSettings() AnimationSettings {
	return AnimationSettings{
		FPS:       10,
		FrameSize: 1200,
		LoopCount: 0,
	}
}
