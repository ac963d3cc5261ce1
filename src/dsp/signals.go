package dsp

import "math"

// Sawtooth generates seconds worth of a bipolar sawtooth wave at freq Hz.
func Sawtooth(freq float64, sampleRate int, seconds float64) []float64 {
	n := int(seconds * float64(sampleRate))
	out := make([]float64, n)
	for i := range out {
		phase := freq * float64(i) / float64(sampleRate)
		out[i] = 2*(phase-math.Floor(phase)) - 1
	}
	return out
}

// SineSweep generates one second of a sinusoid whose frequency rises
// quadratically from 20 Hz to the Nyquist limit.
func SineSweep(sampleRate int) []float64 {
	out := make([]float64, sampleRate)
	var phi float64
	sl := 1 / float64(sampleRate)
	tau := 2 * math.Pi
	nyquist := float64(sampleRate) / 2
	for i := range out {
		p := float64(i) / float64(sampleRate)
		f := 20 + p*p*(nyquist-20)
		out[i] = math.Sin(phi)
		phi += tau * f * sl
		if phi > tau {
			phi -= tau
		}
	}
	return out
}
