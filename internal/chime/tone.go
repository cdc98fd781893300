package chime

import (
	"encoding/binary"
	"math"
	"time"
)

// note is one step of the bell pattern; freq 0 is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

var bell = []note{
	{880, 180 * time.Millisecond},
	{0, 70 * time.Millisecond},
	{880, 180 * time.Millisecond},
	{0, 70 * time.Millisecond},
	{1320, 350 * time.Millisecond},
}

// Pattern renders the bell as signed 16-bit little-endian mono PCM.
func Pattern(rate int) []byte {
	var out []byte
	for _, n := range bell {
		out = append(out, Tone(n.freq, n.dur, rate)...)
	}
	return out
}

// Tone renders a sine wave with a short linear fade at both ends so the
// speaker doesn't click. freq 0 renders silence.
func Tone(freq float64, dur time.Duration, rate int) []byte {
	samples := int(dur.Seconds() * float64(rate))
	buf := make([]byte, samples*2)
	if freq <= 0 {
		return buf
	}

	fade := rate / 200 // 5ms
	const amp = 0.4 * math.MaxInt16
	for i := 0; i < samples; i++ {
		gain := 1.0
		if i < fade {
			gain = float64(i) / float64(fade)
		} else if left := samples - 1 - i; left < fade {
			gain = float64(left) / float64(fade)
		}
		v := amp * gain * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(v)))
	}
	return buf
}
