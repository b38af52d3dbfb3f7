package qoi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

const (
	// Magic is the signature every QOI stream starts with.
	Magic = "qoif"

	// HeaderSize is the encoded size of a Header.
	HeaderSize = 14

	// EndMarkSize is the size of the marker terminating a stream.
	EndMarkSize = 8

	// MaxPixels bounds the pixel count. A header is rejected when
	// height >= MaxPixels/width, as in the reference decoder.
	MaxPixels = 400_000_000

	// maxChunkSize is the largest chunk, QOI_OP_RGBA. The channels byte is
	// informative, so RGB streams may contain it too.
	maxChunkSize = 5

	// maxRun is the longest pixel run a single chunk can encode.
	maxRun = 62
)

// EndMark terminates every QOI stream.
var EndMark = [EndMarkSize]byte{0, 0, 0, 0, 0, 0, 0, 1}

// Header is the fixed-size descriptor at the start of a QOI stream.
type Header struct {
	Width      uint32
	Height     uint32
	Channels   Channels
	ColorSpace ColorSpace
}

// Pixels returns the number of pixels the header declares.
func (h Header) Pixels() uint64 {
	return uint64(h.Width) * uint64(h.Height)
}

// MaxEncodedSize returns the largest stream size that can describe the
// header's pixels: every pixel stored as a QOI_OP_RGBA chunk, whatever the
// declared channel count.
func (h Header) MaxEncodedSize() uint64 {
	return HeaderSize + h.Pixels()*maxChunkSize + EndMarkSize
}

// MinEncodedSize returns the smallest stream size able to describe every
// pixel, with all pixels packed into maximal runs.
func (h Header) MinEncodedSize() uint64 {
	return HeaderSize + (h.Pixels()+maxRun-1)/maxRun + EndMarkSize
}

// Validate checks the header fields against the format constraints.
func (h Header) Validate() error {
	return h.validate(MaxPixels)
}

func (h Header) validate(limit uint64) error {
	if h.Width == 0 || h.Height == 0 {
		return errorf(BadMetadata, "image dimensions %dx%d must be non-zero", h.Width, h.Height)
	}
	if uint64(h.Height) >= limit/uint64(h.Width) {
		return errorf(BadMetadata, "image dimensions %dx%d exceed the %d pixel limit", h.Width, h.Height, limit)
	}
	if !h.Channels.Valid() {
		return errorf(BadMetadata, "channel count %d must be 3 or 4", uint8(h.Channels))
	}
	if !h.ColorSpace.Valid() {
		return errorf(BadMetadata, "colorspace %d must be 0 or 1", uint8(h.ColorSpace))
	}
	return nil
}

// MarshalBinary validates h and returns its 14-byte encoding.
func (h Header) MarshalBinary() ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	buf := make([]byte, HeaderSize)
	h.put(buf)
	return buf, nil
}

func (h Header) put(buf []byte) {
	copy(buf[0:4], Magic)
	binary.BigEndian.PutUint32(buf[4:8], h.Width)
	binary.BigEndian.PutUint32(buf[8:12], h.Height)
	buf[12] = byte(h.Channels)
	buf[13] = byte(h.ColorSpace)
}

// UnmarshalBinary decodes exactly HeaderSize bytes into h and validates the result.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return errorf(InsufficientData, "header needs %d bytes, got %d", HeaderSize, len(data))
	}
	if len(data) > HeaderSize {
		return errorf(TooMuchData, "header is %d bytes, got %d", HeaderSize, len(data))
	}
	return h.parse(data, MaxPixels)
}

func (h *Header) parse(data []byte, limit uint64) error {
	if !bytes.Equal(data[0:4], []byte(Magic)) {
		return badMagic(data)
	}
	parsed := Header{
		Width:      binary.BigEndian.Uint32(data[4:8]),
		Height:     binary.BigEndian.Uint32(data[8:12]),
		Channels:   Channels(data[12]),
		ColorSpace: ColorSpace(data[13]),
	}
	if err := parsed.validate(limit); err != nil {
		return err
	}
	*h = parsed
	return nil
}

// badMagic names the foreign format when the signature belongs to one.
func badMagic(data []byte) CodecError {
	if f := DetectFormat(data); f != FormatUnknown && f != FormatQOI {
		return errorf(BadMagic, "expected 'qoif', found %s signature", f)
	}
	return errorf(BadMagic, "expected 'qoif', got %q", data[0:4])
}

// DecodeHeader reads and validates a header from r.
// A stream shorter than HeaderSize yields InsufficientData; any other read
// failure yields IOError.
func DecodeHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, errorf(InsufficientData, "header needs %d bytes, got %d", HeaderSize, n)
		}
		return Header{}, FromIOErrorMessage(err)
	}
	var h Header
	if err := h.parse(buf[:], MaxPixels); err != nil {
		return Header{}, err
	}
	return h, nil
}

// WriteHeader validates h and writes its encoding to w.
func WriteHeader(w io.Writer, h Header) error {
	buf, err := h.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := w.Write(buf); err != nil {
		return FromIOErrorMessage(err)
	}
	return nil
}

// WriteEndMark writes the stream terminator to w.
func WriteEndMark(w io.Writer) error {
	if _, err := w.Write(EndMark[:]); err != nil {
		return FromIOErrorMessage(err)
	}
	return nil
}

// CheckEndMark verifies the last EndMarkSize bytes of a stream.
func CheckEndMark(tail []byte) error {
	if len(tail) != EndMarkSize {
		return errorf(InsufficientData, "end mark needs %d bytes, got %d", EndMarkSize, len(tail))
	}
	if !bytes.Equal(tail, EndMark[:]) {
		return errorf(BadEndMark, "expected % x, got % x", EndMark[:], tail)
	}
	return nil
}
