package chime

import (
	"context"
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/whatscooking/internal/logger"
)

func sample(pcm []byte, i int) int16 {
	return int16(binary.LittleEndian.Uint16(pcm[i*2:]))
}

func TestToneLength(t *testing.T) {
	pcm := Tone(440, 100*time.Millisecond, 24000)
	assert.Len(t, pcm, 2400*2)
}

func TestToneFadesAndPeaks(t *testing.T) {
	pcm := Tone(440, 100*time.Millisecond, 24000)
	n := len(pcm) / 2

	assert.Equal(t, int16(0), sample(pcm, 0))
	assert.Equal(t, int16(0), sample(pcm, n-1))

	peak := int16(0)
	for i := 0; i < n; i++ {
		if v := sample(pcm, i); v > peak {
			peak = v
		}
	}
	assert.Greater(t, peak, int16(10000))
}

func TestRestIsSilent(t *testing.T) {
	pcm := Tone(0, 50*time.Millisecond, 24000)
	require.NotEmpty(t, pcm)
	for _, b := range pcm {
		require.Zero(t, b)
	}
}

func TestPatternCoversEveryNote(t *testing.T) {
	var total time.Duration
	for _, n := range bell {
		total += n.dur
	}
	want := 0
	for _, n := range bell {
		want += int(n.dur.Seconds()*float64(SampleRate)) * 2
	}
	assert.Len(t, Pattern(SampleRate), want)
	assert.Equal(t, 850*time.Millisecond, total)
}

func TestSilentChime(t *testing.T) {
	s := NewSilent(logger.New(logger.LevelOff, nil))
	assert.NoError(t, s.Chime(context.Background()))
}
