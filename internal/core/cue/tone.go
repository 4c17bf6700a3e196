package cue

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

// Tone describes a fixed-frequency sine pulse.
type Tone struct {
	Frequency  float64
	Gain       float64
	Duration   time.Duration
	SampleRate int
}

// AlertTone is the pulse played for every threshold crossing.
var AlertTone = Tone{
	Frequency:  800,
	Gain:       0.3,
	Duration:   200 * time.Millisecond,
	SampleRate: 44100,
}

const (
	wavHeaderSize = 44
	bitsPerSample = 16
	channels      = 1
)

// SampleCount returns the number of mono samples in the pulse.
func (tone Tone) SampleCount() int {
	if tone.SampleRate <= 0 || tone.Duration <= 0 {
		return 0
	}
	return int(float64(tone.SampleRate) * tone.Duration.Seconds())
}

// WAV renders the pulse as a 16-bit mono PCM RIFF file.
func (tone Tone) WAV() []byte {
	samples := tone.SampleCount()
	dataSize := samples * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	buffer := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+dataSize))
	buffer.WriteString("RIFF")
	writeLE(buffer, uint32(36+dataSize))
	buffer.WriteString("WAVE")
	buffer.WriteString("fmt ")
	writeLE(buffer, uint32(16))
	writeLE(buffer, uint16(1))
	writeLE(buffer, uint16(channels))
	writeLE(buffer, uint32(tone.SampleRate))
	writeLE(buffer, uint32(tone.SampleRate*blockAlign))
	writeLE(buffer, uint16(blockAlign))
	writeLE(buffer, uint16(bitsPerSample))
	buffer.WriteString("data")
	writeLE(buffer, uint32(dataSize))

	gain := math.Max(0, math.Min(1, tone.Gain))
	for index := 0; index < samples; index++ {
		phase := 2 * math.Pi * tone.Frequency * float64(index) / float64(tone.SampleRate)
		writeLE(buffer, int16(math.Sin(phase)*gain*math.MaxInt16))
	}
	return buffer.Bytes()
}

func writeLE(buffer *bytes.Buffer, value any) {
	_ = binary.Write(buffer, binary.LittleEndian, value)
}
