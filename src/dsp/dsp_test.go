package dsp

import (
	"math"
	"testing"
)

func TestHann_Endpoints(t *testing.T) {
	w := Hann(512)
	if w[0] != 0 {
		t.Errorf("Hann[0] = %v, want 0", w[0])
	}
	// Periodic window: peak of 1 at n/2.
	if math.Abs(w[256]-1) > 1e-12 {
		t.Errorf("Hann midpoint = %v, want 1", w[256])
	}
	if len(Hann(1)) != 1 || Hann(1)[0] != 1 {
		t.Errorf("single-sample window should be identity")
	}
}

func TestSTFT_Shape(t *testing.T) {
	sr := 8000
	sig := Sawtooth(220, sr, 1)
	m, err := STFT(sig, 512, 256, 512)
	if err != nil {
		t.Fatalf("STFT: %v", err)
	}
	bins, frames := m.Dims()
	if bins != 257 {
		t.Errorf("bins = %d, want 257", bins)
	}
	wantFrames := 1 + (sr-512)/256
	if frames != wantFrames {
		t.Errorf("frames = %d, want %d", frames, wantFrames)
	}
	if !m.IsRectangular() {
		t.Errorf("spectrogram must be rectangular")
	}
}

func TestSTFT_RejectsBadFraming(t *testing.T) {
	sig := make([]float64, 100)
	if _, err := STFT(sig, 256, 128, 512); err == nil {
		t.Errorf("nFFT < winLen should error")
	}
	if _, err := STFT(sig, 512, 128, 512); err == nil {
		t.Errorf("signal shorter than window should error")
	}
	if _, err := STFT(sig, 64, 0, 64); err == nil {
		t.Errorf("zero hop should error")
	}
}

func TestSTFT_PureToneConcentratesEnergy(t *testing.T) {
	sr := 8000
	freq := 1000.0
	sig := make([]float64, sr)
	for i := range sig {
		sig[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sr))
	}
	m, err := STFT(sig, 512, 256, 512)
	if err != nil {
		t.Fatalf("STFT: %v", err)
	}
	// The strongest bin in a middle frame should sit at freq/sr * nFFT.
	bins, frames := m.Dims()
	f := frames / 2
	best := 0
	for b := 1; b < bins; b++ {
		if m[b][f] > m[best][f] {
			best = b
		}
	}
	want := int(math.Round(freq / float64(sr) * 512))
	if best < want-1 || best > want+1 {
		t.Fatalf("peak bin = %d, want ~%d", best, want)
	}
}

func TestSineSweep_FrequencyRises(t *testing.T) {
	sr := 8000
	m, err := STFT(SineSweep(sr), 512, 256, 512)
	if err != nil {
		t.Fatalf("STFT: %v", err)
	}
	bins, frames := m.Dims()
	peak := func(f int) int {
		best := 0
		for b := 1; b < bins; b++ {
			if m[b][f] > m[best][f] {
				best = b
			}
		}
		return best
	}
	early := peak(frames / 8)
	late := peak(frames - frames/8)
	if late <= early {
		t.Fatalf("sweep peak did not rise: early bin %d, late bin %d", early, late)
	}
}

func TestMelFilterbank_ShapeAndCoverage(t *testing.T) {
	fb := MelFilterbank(64, 512, 44100, 20.05)
	rows, cols := fb.Dims()
	if rows != 64 || cols != 257 {
		t.Fatalf("filterbank dims = (%d, %d), want (64, 257)", rows, cols)
	}
	// Every filter must have some weight; a zero row means the triangle fell
	// between two linear bins.
	for m, row := range fb {
		var sum float64
		for _, v := range row {
			sum += v
		}
		if sum <= 0 {
			t.Errorf("filter %d has no weight", m)
		}
	}
}

func TestMelSpectrogram_Shape(t *testing.T) {
	sr := 44100
	m, err := MelSpectrogram(SineSweep(sr), 64, 512, 256, 512, float64(sr), 20.05)
	if err != nil {
		t.Fatalf("MelSpectrogram: %v", err)
	}
	rows, frames := m.Dims()
	if rows != 64 {
		t.Errorf("mel bins = %d, want 64", rows)
	}
	if want := 1 + (sr-512)/256; frames != want {
		t.Errorf("frames = %d, want %d", frames, want)
	}
}

func TestPowerToDB_FloorsAndReferences(t *testing.T) {
	m := PowerToDB([][]float64{{1, 0.1, 0, 1e-12}}, 1)
	if m[0][0] != 0 {
		t.Errorf("ref power should map to 0 dB, got %v", m[0][0])
	}
	if math.Abs(m[0][1]+10) > 1e-9 {
		t.Errorf("0.1 of ref should be -10 dB, got %v", m[0][1])
	}
	if m[0][2] != -80 || m[0][3] != -80 {
		t.Errorf("silent cells should floor at -80 dB, got %v and %v", m[0][2], m[0][3])
	}
}
