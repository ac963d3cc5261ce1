package graphs

import (
	"fmt"

	"github.com/lewiswolf/graphs/src/dsp"
	"github.com/lewiswolf/graphs/src/types"
)

// SpectrogramInput names the frequency scale of a precomputed spectrogram.
type SpectrogramInput string

const (
	// InputFFT marks linearly spaced frequency bins from a plain STFT.
	InputFFT SpectrogramInput = "fft"
	// InputMel marks mel-spaced bins from a mel filterbank.
	InputMel SpectrogramInput = "mel"
)

// SpectrogramOptions describe how a spectrogram matrix was produced, which
// fixes its axis labelling.
type SpectrogramOptions struct {
	InputType  SpectrogramInput // fft or mel; empty defaults to fft
	SampleRate float64          // Hz; 0 labels axes in bins/frames
	HopLength  int              // samples between frames
	FMin       float64          // lowest mel filter frequency (mel input only)
}

// Spectrogram renders a power spectrogram matrix (frequency bins by time
// frames, row 0 = lowest frequency) as a colour-mapped image. Values are
// shown in decibels relative to the matrix peak. The figure width is the
// canonical width regardless of frame count, so spectrograms of different
// signals align.
func (r *Renderer) Spectrogram(m types.Matrix, opts SpectrogramOptions) (*types.RenderedFigure, error) {
	rows, cols := m.Dims()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("spectrogram: %w", ErrNoData)
	}
	if !m.IsRectangular() {
		return nil, fmt.Errorf("spectrogram: rows have unequal lengths")
	}
	input := opts.InputType
	if input == "" {
		input = InputFFT
	}
	if input != InputFFT && input != InputMel {
		return nil, fmt.Errorf("spectrogram: unknown input type %q", opts.InputType)
	}

	// Display in dB relative to the hottest cell.
	_, peak, ok := m.MinMax()
	if !ok {
		return nil, fmt.Errorf("spectrogram: no finite values")
	}
	db := dsp.PowerToDB(m, peak)

	xTicks, xName := spectrogramTimeTicks(cols, opts)
	yTicks, yName := spectrogramFreqTicks(rows, input, opts)

	// Spectrograms keep a fixed wide aspect: frame count must not change
	// figure geometry.
	fig, err := r.heatmapFigure(db, defaultAspect, xName, yName, xTicks, yTicks)
	if err != nil {
		return nil, fmt.Errorf("spectrogram: %w", err)
	}
	Debugf("spectrogram: rendered %d bins x %d frames (%s)", rows, cols, input)
	return fig, nil
}

// spectrogramTimeTicks labels the time axis in seconds when the hop length
// and sample rate are known, in frames otherwise.
func spectrogramTimeTicks(frames int, opts SpectrogramOptions) (axisTicks, string) {
	if opts.SampleRate <= 0 || opts.HopLength <= 0 {
		return indexTicks(frames), "frame"
	}
	total := float64(frames-1) * float64(opts.HopLength) / opts.SampleRate
	out := make(axisTicks, 0, 6)
	for i := 0; i < 6; i++ {
		frac := float64(i) / 5
		out = append(out, axisTick{frac, formatTick(frac * total)})
	}
	return out, "time (s)"
}

// spectrogramFreqTicks labels the frequency axis according to the bin scale.
func spectrogramFreqTicks(bins int, input SpectrogramInput, opts SpectrogramOptions) (axisTicks, string) {
	if opts.SampleRate <= 0 {
		return indexTicks(bins), "bin"
	}
	out := make(axisTicks, 0, 6)
	switch input {
	case InputMel:
		// Mel rows are evenly spaced on the mel scale between fMin and
		// Nyquist; convert each tick back to Hz for labelling.
		loMel := dsp.HzToMel(opts.FMin)
		hiMel := dsp.HzToMel(opts.SampleRate / 2)
		for i := 0; i < 6; i++ {
			frac := float64(i) / 5
			hz := dsp.MelToHz(loMel + frac*(hiMel-loMel))
			out = append(out, axisTick{frac, formatTick(hz)})
		}
	default:
		// Linear bins: bin b sits at b * sr / nFFT with nFFT = 2*(bins-1).
		nyquist := opts.SampleRate / 2
		for i := 0; i < 6; i++ {
			frac := float64(i) / 5
			out = append(out, axisTick{frac, formatTick(frac * nyquist)})
		}
	}
	return out, "freq (hz)"
}
