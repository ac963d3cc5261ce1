// Package dsp computes the time-frequency inputs consumed by spectrogram
// figures: windowed short-time power spectra and their mel-scaled variant.
// The FFT itself comes from gonum; this package only handles framing,
// windowing and filterbank application.
package dsp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/lewiswolf/graphs/src/types"
)

// Hann returns a periodic Hann window of length n.
func Hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
	}
	return w
}

// STFT computes a power spectrogram of the signal: (nFFT/2 + 1) frequency
// bins by 1 + (len(signal) - winLen) / hop frames. Each frame is Hann
// windowed over winLen samples and zero padded to nFFT.
func STFT(signal []float64, nFFT, hop, winLen int) (types.Matrix, error) {
	if winLen <= 0 || hop <= 0 || nFFT < winLen {
		return nil, fmt.Errorf("stft: invalid framing (nFFT=%d hop=%d winLen=%d)", nFFT, hop, winLen)
	}
	if len(signal) < winLen {
		return nil, fmt.Errorf("stft: signal of %d samples is shorter than the %d sample window", len(signal), winLen)
	}

	frames := 1 + (len(signal)-winLen)/hop
	bins := nFFT/2 + 1
	window := Hann(winLen)
	fft := fourier.NewFFT(nFFT)

	out := make(types.Matrix, bins)
	for b := range out {
		out[b] = make([]float64, frames)
	}
	frame := make([]float64, nFFT)
	coeffs := make([]complex128, bins)
	for f := 0; f < frames; f++ {
		start := f * hop
		for i := 0; i < winLen; i++ {
			frame[i] = signal[start+i] * window[i]
		}
		for i := winLen; i < nFFT; i++ {
			frame[i] = 0
		}
		coeffs = fft.Coefficients(coeffs, frame)
		for b := 0; b < bins; b++ {
			re := real(coeffs[b])
			im := imag(coeffs[b])
			out[b][f] = re*re + im*im
		}
	}
	return out, nil
}

// HzToMel converts a frequency to the mel scale (HTK formula).
func HzToMel(hz float64) float64 { return 2595 * math.Log10(1+hz/700) }

// MelToHz is the inverse of HzToMel.
func MelToHz(mel float64) float64 { return 700 * (math.Pow(10, mel/2595) - 1) }

// MelFilterbank builds nMels triangular filters over nFFT/2 + 1 linear bins,
// spanning [fMin, sampleRate/2] on the mel scale.
func MelFilterbank(nMels, nFFT int, sampleRate, fMin float64) types.Matrix {
	bins := nFFT/2 + 1
	loMel := HzToMel(fMin)
	hiMel := HzToMel(sampleRate / 2)

	// nMels filters need nMels + 2 edge frequencies.
	edges := make([]float64, nMels+2)
	for i := range edges {
		mel := loMel + (hiMel-loMel)*float64(i)/float64(nMels+1)
		edges[i] = MelToHz(mel)
	}

	fb := make(types.Matrix, nMels)
	for m := 0; m < nMels; m++ {
		fb[m] = make([]float64, bins)
		lo, center, hi := edges[m], edges[m+1], edges[m+2]
		var weight float64
		for b := 0; b < bins; b++ {
			freq := float64(b) * sampleRate / float64(nFFT)
			switch {
			case freq <= lo || freq >= hi:
				// outside the triangle
			case freq <= center:
				fb[m][b] = (freq - lo) / (center - lo)
			default:
				fb[m][b] = (hi - freq) / (hi - center)
			}
			weight += fb[m][b]
		}
		if weight == 0 {
			// Narrow triangles near fMin can fall between two linear bins;
			// claim the bin nearest the centre so no filter is silent.
			b := int(math.Round(center * float64(nFFT) / sampleRate))
			if b >= bins {
				b = bins - 1
			}
			fb[m][b] = 1
		}
	}
	return fb
}

// MelSpectrogram computes STFT(signal) and projects it through a mel
// filterbank, yielding nMels bins by frame columns.
func MelSpectrogram(signal []float64, nMels, nFFT, hop, winLen int, sampleRate, fMin float64) (types.Matrix, error) {
	power, err := STFT(signal, nFFT, hop, winLen)
	if err != nil {
		return nil, err
	}
	fb := MelFilterbank(nMels, nFFT, sampleRate, fMin)
	bins, frames := power.Dims()
	out := make(types.Matrix, nMels)
	for m := 0; m < nMels; m++ {
		out[m] = make([]float64, frames)
		for f := 0; f < frames; f++ {
			var sum float64
			for b := 0; b < bins; b++ {
				sum += fb[m][b] * power[b][f]
			}
			out[m][f] = sum
		}
	}
	return out, nil
}

// PowerToDB converts power values to decibels relative to ref, flooring at
// -80 dB so silent cells do not swallow the display range.
func PowerToDB(m types.Matrix, ref float64) types.Matrix {
	const floor = -80.0
	if ref <= 0 {
		ref = 1
	}
	rows, cols := m.Dims()
	out := make(types.Matrix, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]float64, cols)
		for c := 0; c < cols; c++ {
			db := floor
			if m[r][c] > 0 {
				db = 10 * math.Log10(m[r][c]/ref)
				if db < floor {
					db = floor
				}
			}
			out[r][c] = db
		}
	}
	return out
}
