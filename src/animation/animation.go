// Package animation collects rendered figures into a frame sequence and
// exports it as an animated GIF. Frames are normalized to one canonical
// geometry so playback never jumps between sizes.
package animation

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/lewiswolf/graphs/src/types"
)

// plan9Palette is the stdlib 256-colour quantization target for GIF frames.
var plan9Palette = color.Palette(palette.Plan9)

// Animation accumulates frames for one export. Unlike figure renderers the
// settings are fixed at construction, so a sequence cannot change geometry
// or rate midway.
type Animation struct {
	settings types.AnimationSettings
	frames   []*image.Paletted
}

// New returns an animation with the given settings; zero fields fall back to
// the defaults.
func New(settings types.AnimationSettings) (*Animation, error) {
	def := types.DefaultAnimationSettings()
	if settings.FPS == 0 {
		settings.FPS = def.FPS
	}
	if settings.FrameSize == 0 {
		settings.FrameSize = def.FrameSize
	}
	if settings.FPS < 0 || settings.FrameSize <= 0 {
		return nil, fmt.Errorf("animation: invalid settings (fps=%d frame size=%d)", settings.FPS, settings.FrameSize)
	}
	return &Animation{settings: settings}, nil
}

// Settings returns a copy of the animation settings.
func (a *Animation) Settings() types.AnimationSettings { return a.settings }

// FrameCount reports how many frames have been added since the last render.
func (a *Animation) FrameCount() int { return len(a.frames) }

// AddFigure appends a rendered figure as the next frame.
func (a *Animation) AddFigure(fig *types.RenderedFigure) error {
	if fig == nil || fig.Image == nil {
		return fmt.Errorf("animation: nil frame")
	}
	return a.AddFrame(fig.Image)
}

// AddFrame appends an image as the next frame, scaling it to the canonical
// frame geometry and quantizing it for GIF storage.
func (a *Animation) AddFrame(img image.Image) error {
	if img == nil {
		return fmt.Errorf("animation: nil frame")
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return fmt.Errorf("animation: empty frame")
	}

	// Width is pinned to FrameSize; height follows the first frame's aspect
	// so every frame in the sequence shares one geometry.
	w := a.settings.FrameSize
	h := w * b.Dy() / b.Dx()
	if len(a.frames) > 0 {
		fb := a.frames[0].Bounds()
		w, h = fb.Dx(), fb.Dy()
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	// GIF has no alpha blending; composite onto white first.
	draw.Draw(scaled, scaled.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, b, xdraw.Over, nil)

	pal := image.NewPaletted(scaled.Bounds(), plan9Palette)
	draw.FloydSteinberg.Draw(pal, scaled.Bounds(), scaled, image.Point{})
	a.frames = append(a.frames, pal)
	return nil
}

// Render writes the accumulated frames to path (".gif" is appended) and
// resets the frame counter for the next sequence.
func (a *Animation) Render(path string) error {
	if len(a.frames) == 0 {
		return fmt.Errorf("animation: no frames to render")
	}
	if path == "" {
		return fmt.Errorf("animation: export path is required")
	}

	delay := 100 / a.settings.FPS // GIF delays are in centiseconds
	if delay < 2 {
		delay = 2
	}
	out := &gif.GIF{
		Image:     a.frames,
		Delay:     make([]int, len(a.frames)),
		LoopCount: a.settings.LoopCount,
	}
	for i := range out.Delay {
		out.Delay[i] = delay
	}

	full := path + ".gif"
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("animation: create %s: %w", full, err)
	}
	if err := gif.EncodeAll(f, out); err != nil {
		f.Close()
		return fmt.Errorf("animation: encode %s: %w", full, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("animation: close %s: %w", full, err)
	}

	a.frames = nil
	return nil
}
