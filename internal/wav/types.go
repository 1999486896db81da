package wav

import "time"

// Format mirrors the waveform-format record stored in the "fmt " chunk.
// All fields are little-endian in the container. Immutable once decoded.
type Format struct {
	FormatTag     uint16 // 1 = integer PCM
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32 // bytes per second
	BlockAlign    uint16
	BitsPerSample uint16
	ExtraSize     uint16 // extension byte count, zero for plain PCM
}

// formatRecordSize is the capacity of the format record in bytes.
// A "fmt " chunk declaring more than this is rejected.
const formatRecordSize = 18

// FormatPCM is the format tag for uncompressed integer PCM.
const FormatPCM = 1

// Clip is a decoded audio clip: the stream format plus the raw sample
// bytes from the data chunk. The Data slice is allocated by Decode and
// owned exclusively by the caller afterwards; the decoder keeps no
// reference to it.
type Clip struct {
	Format Format
	Data   []byte
}

// Duration returns the playback length implied by the byte rate.
// Returns zero if the format declares no byte rate.
func (c *Clip) Duration() time.Duration {
	if c.Format.ByteRate == 0 {
		return 0
	}
	return time.Duration(float64(len(c.Data)) / float64(c.Format.ByteRate) * float64(time.Second))
}
