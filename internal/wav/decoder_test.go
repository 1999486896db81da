package wav

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// chunk serializes a tag + little-endian size + body.
func chunk(tag string, body []byte) []byte {
	var b bytes.Buffer
	b.WriteString(tag)
	binary.Write(&b, binary.LittleEndian, uint32(len(body)))
	b.Write(body)
	return b.Bytes()
}

// pcmFormatBody builds a plain 16-byte PCM format chunk body.
func pcmFormatBody(channels uint16, rate uint32, bits uint16) []byte {
	block := channels * bits / 8
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, uint16(FormatPCM))
	binary.Write(&b, binary.LittleEndian, channels)
	binary.Write(&b, binary.LittleEndian, rate)
	binary.Write(&b, binary.LittleEndian, rate*uint32(block))
	binary.Write(&b, binary.LittleEndian, block)
	binary.Write(&b, binary.LittleEndian, bits)
	return b.Bytes()
}

// container assembles a RIFF/WAVE file from the given chunks.
func container(typeTag string, chunks ...[]byte) []byte {
	var payload bytes.Buffer
	payload.WriteString(typeTag)
	for _, c := range chunks {
		payload.Write(c)
	}
	return chunk("RIFF", payload.Bytes())
}

func writeTemp(t *testing.T, raw []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, raw, 0644))
	return path
}

func TestDecodeValid(t *testing.T) {
	samples := make([]byte, 64)
	for i := range samples {
		samples[i] = byte(i)
	}
	raw := container("WAVE",
		chunk("fmt ", pcmFormatBody(2, 44100, 16)),
		chunk("data", samples),
	)

	clip, err := Decode(writeTemp(t, raw))
	require.NoError(t, err)

	require.Equal(t, uint16(FormatPCM), clip.Format.FormatTag)
	require.Equal(t, uint16(2), clip.Format.Channels)
	require.Equal(t, uint32(44100), clip.Format.SampleRate)
	require.Equal(t, uint32(176400), clip.Format.ByteRate)
	require.Equal(t, uint16(4), clip.Format.BlockAlign)
	require.Equal(t, uint16(16), clip.Format.BitsPerSample)
	require.Equal(t, samples, clip.Data)
	require.Len(t, clip.Data, 64)
	require.Positive(t, clip.Duration())
}

func TestDecodeJunkChunkTransparent(t *testing.T) {
	samples := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	format := chunk("fmt ", pcmFormatBody(1, 22050, 8))
	data := chunk("data", samples)

	plain := container("WAVE", format, data)
	padded := container("WAVE", format, chunk("JUNK", make([]byte, 28)), data)

	a, err := Decode(writeTemp(t, plain))
	require.NoError(t, err)
	b, err := Decode(writeTemp(t, padded))
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestDecodeRejectsBadTags(t *testing.T) {
	format := chunk("fmt ", pcmFormatBody(1, 8000, 8))
	data := chunk("data", []byte{0, 0})

	cases := map[string][]byte{
		"not riff":  chunk("FORM", append([]byte("WAVE"), append(format, data...)...)),
		"not wave":  container("AIFF", format, data),
		"no fmt":    container("WAVE", chunk("LIST", nil), data),
		"only junk": container("WAVE", format, chunk("JUNK", []byte{0, 0})),
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			clip, err := Decode(writeTemp(t, raw))
			require.ErrorIs(t, err, ErrMalformedContainer)
			require.Nil(t, clip)
		})
	}
}

func TestDecodeRejectsUnknownChunkBeforeData(t *testing.T) {
	// Only JUNK is skipped; any other chunk between fmt and data fails.
	raw := container("WAVE",
		chunk("fmt ", pcmFormatBody(1, 8000, 8)),
		chunk("LIST", make([]byte, 4)),
		chunk("data", []byte{0, 0}),
	)

	_, err := Decode(writeTemp(t, raw))
	require.ErrorIs(t, err, ErrMalformedContainer)
}

func TestDecodeFormatTooLarge(t *testing.T) {
	raw := container("WAVE",
		chunk("fmt ", make([]byte, formatRecordSize+2)),
		chunk("data", []byte{0, 0}),
	)

	clip, err := Decode(writeTemp(t, raw))
	require.ErrorIs(t, err, ErrFormatTooLarge)
	require.Nil(t, clip)
}

func TestDecodeExtendedFormatRecord(t *testing.T) {
	// An 18-byte fmt body (with the extension size field) is the
	// largest accepted record.
	body := append(pcmFormatBody(2, 48000, 16), 0, 0)
	raw := container("WAVE",
		chunk("fmt ", body),
		chunk("data", []byte{1, 2, 3, 4}),
	)

	clip, err := Decode(writeTemp(t, raw))
	require.NoError(t, err)
	require.Equal(t, uint16(0), clip.Format.ExtraSize)
	require.Equal(t, uint32(48000), clip.Format.SampleRate)
}

func TestDecodeTruncatedData(t *testing.T) {
	var b bytes.Buffer
	b.WriteString("WAVE")
	b.Write(chunk("fmt ", pcmFormatBody(1, 8000, 8)))
	// Declare 100 bytes of sample data but provide only 10.
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(100))
	b.Write(make([]byte, 10))
	raw := chunk("RIFF", b.Bytes())

	clip, err := Decode(writeTemp(t, raw))
	require.ErrorIs(t, err, ErrTruncatedData)
	require.Nil(t, clip)
}

func TestDecodeMissingFile(t *testing.T) {
	_, err := Decode(filepath.Join(t.TempDir(), "absent.wav"))
	require.ErrorIs(t, err, ErrMissingFile)
}

func TestDecodeExactBufferLength(t *testing.T) {
	for _, n := range []int{0, 1, 13, 4096} {
		samples := bytes.Repeat([]byte{0xAB}, n)
		raw := container("WAVE",
			chunk("fmt ", pcmFormatBody(1, 8000, 8)),
			chunk("data", samples),
		)

		clip, err := Decode(writeTemp(t, raw))
		require.NoError(t, err)
		require.Len(t, clip.Data, n)
	}
}
