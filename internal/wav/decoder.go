package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// Decode error kinds. Every failure from Decode matches exactly one of
// these via errors.Is; no partial Clip is ever returned alongside one.
var (
	ErrMissingFile        = errors.New("wav: cannot open file")
	ErrMalformedContainer = errors.New("wav: malformed container")
	ErrFormatTooLarge     = errors.New("wav: format chunk exceeds record capacity")
	ErrTruncatedData      = errors.New("wav: data chunk truncated")
)

// Decode reads a RIFF/WAVE file and returns its format record and raw
// sample bytes. The container must hold a "fmt " chunk followed by a
// "data" chunk; a single "JUNK" padding chunk between them is skipped.
// Any other chunk in that position is a hard failure.
func Decode(path string) (*Clip, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingFile, path, err)
	}
	clip, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clip, nil
}

func decode(raw []byte) (*Clip, error) {
	r := &reader{data: raw}

	// RIFF header: "RIFF" tag, file size, "WAVE" type.
	tag, _, ok := r.readChunkHeader()
	if !ok || tag != "RIFF" {
		return nil, fmt.Errorf("%w: missing RIFF tag", ErrMalformedContainer)
	}
	if r.readTag() != "WAVE" {
		return nil, fmt.Errorf("%w: missing WAVE type", ErrMalformedContainer)
	}

	// Format chunk.
	tag, size, ok := r.readChunkHeader()
	if !ok || tag != "fmt " {
		return nil, fmt.Errorf("%w: expected fmt chunk, got %q", ErrMalformedContainer, tag)
	}
	if size > formatRecordSize {
		return nil, fmt.Errorf("%w: declared %d bytes, capacity %d", ErrFormatTooLarge, size, formatRecordSize)
	}
	body, ok := r.read(int(size))
	if !ok {
		return nil, fmt.Errorf("%w: fmt chunk body short", ErrMalformedContainer)
	}
	format := decodeFormat(body)

	// Data chunk, with one permitted JUNK padding chunk before it.
	tag, size, ok = r.readChunkHeader()
	if ok && tag == "JUNK" {
		if _, skipped := r.read(int(size)); !skipped {
			return nil, fmt.Errorf("%w: JUNK chunk body short", ErrMalformedContainer)
		}
		tag, size, ok = r.readChunkHeader()
	}
	if !ok || tag != "data" {
		return nil, fmt.Errorf("%w: expected data chunk, got %q", ErrMalformedContainer, tag)
	}

	body, ok = r.read(int(size))
	if !ok {
		return nil, fmt.Errorf("%w: declared %d bytes, %d available", ErrTruncatedData, size, r.remaining())
	}
	samples := make([]byte, size)
	copy(samples, body)

	return &Clip{Format: format, Data: samples}, nil
}

// decodeFormat fills a Format from up to formatRecordSize bytes.
// Fields past the declared chunk size stay zero.
func decodeFormat(body []byte) Format {
	var buf [formatRecordSize]byte
	copy(buf[:], body)

	return Format{
		FormatTag:     binary.LittleEndian.Uint16(buf[0:]),
		Channels:      binary.LittleEndian.Uint16(buf[2:]),
		SampleRate:    binary.LittleEndian.Uint32(buf[4:]),
		ByteRate:      binary.LittleEndian.Uint32(buf[8:]),
		BlockAlign:    binary.LittleEndian.Uint16(buf[12:]),
		BitsPerSample: binary.LittleEndian.Uint16(buf[14:]),
		ExtraSize:     binary.LittleEndian.Uint16(buf[16:]),
	}
}

// reader is a forward-only cursor over the container bytes.
type reader struct {
	data []byte
	off  int
}

func (r *reader) remaining() int {
	return len(r.data) - r.off
}

func (r *reader) read(n int) ([]byte, bool) {
	if n < 0 || r.off+n > len(r.data) {
		return nil, false
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, true
}

// readTag reads a 4-byte ASCII tag. Returns "" at end of input.
func (r *reader) readTag() string {
	b, ok := r.read(4)
	if !ok {
		return ""
	}
	return string(b)
}

// readChunkHeader reads a 4-byte tag plus a little-endian 32-bit size.
func (r *reader) readChunkHeader() (tag string, size uint32, ok bool) {
	b, ok := r.read(8)
	if !ok {
		return "", 0, false
	}
	return string(b[:4]), binary.LittleEndian.Uint32(b[4:]), true
}
