// Package cue synthesizes the short tone played when two balls collide.
package cue

import (
	"io"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"
)

const (
	SampleRate = beep.SampleRate(44100)
	Duration   = 250 * time.Millisecond

	baseFreq     = 220.0
	freqPerSpeed = 110.0
	maxSpeed     = 10.0
	decayRate    = 14.0
)

// Pitch maps an impact speed to a tone frequency. Faster impacts ring higher.
func Pitch(speed float64) float64 {
	s := math.Min(math.Abs(speed), maxSpeed)
	return baseFreq + freqPerSpeed*s
}

// Gain scales loudness with impact speed so a gentle tap stays quiet.
func Gain(speed float64) float64 {
	return 0.2 + 0.8*math.Min(math.Abs(speed), maxSpeed)/maxSpeed
}

type tone struct {
	freq  float64
	phase float64
	pos   int
	total int
	rate  beep.SampleRate
}

func newTone(freq float64, d time.Duration, rate beep.SampleRate) *tone {
	return &tone{freq: freq, total: rate.N(d), rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if t.pos >= t.total {
			break
		}
		env := math.Exp(-decayRate * float64(t.pos) / float64(t.rate))
		v := env * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
		n++
	}
	return n, true
}

func (t *tone) Err() error { return nil }

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Impact returns a decaying tone with a quieter octave overtone.
func Impact(speed float64, rate beep.SampleRate) beep.Streamer {
	f := Pitch(speed)
	mixed := beep.Mix(
		withVolume(newTone(f, Duration, rate), 0.7),
		withVolume(newTone(2*f, Duration, rate), 0.3),
	)
	return withVolume(mixed, Gain(speed))
}

func Format() beep.Format {
	return beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}
}

// WriteWAV encodes the impact cue for speed as 16-bit stereo WAV.
func WriteWAV(w io.WriteSeeker, speed float64) error {
	f := Format()
	return wav.Encode(w, beep.Take(f.SampleRate.N(Duration), Impact(speed, f.SampleRate)), f)
}
