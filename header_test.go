package qoi

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// encodeHeader builds a raw header without validation.
func encodeHeader(width, height uint32, channels, colorspace byte) []byte {
	buf := make([]byte, HeaderSize)
	Header{Width: width, Height: height, Channels: Channels(channels), ColorSpace: ColorSpace(colorspace)}.put(buf)
	return buf
}

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{Width: 640, Height: 480, Channels: RGBA, ColorSpace: Linear}
	data, err := h.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	if !bytes.Equal(data[:4], []byte("qoif")) {
		t.Errorf("magic = %q", data[:4])
	}
	if !bytes.Equal(data[4:12], []byte{0, 0, 2, 0x80, 0, 0, 1, 0xE0}) {
		t.Errorf("dimensions = % x", data[4:12])
	}

	var got Header
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	if got != h {
		t.Errorf("UnmarshalBinary() = %+v, want %+v", got, h)
	}
}

func TestHeaderUnmarshalErrors(t *testing.T) {
	valid := encodeHeader(2, 2, 3, 0)

	tests := []struct {
		name string
		data []byte
		kind ErrorKind
	}{
		{"Short", valid[:10], InsufficientData},
		{"Empty", nil, InsufficientData},
		{"Long", append(append([]byte{}, valid...), 0), TooMuchData},
		{"Magic", append([]byte("qoix"), valid[4:]...), BadMagic},
		{"ZeroWidth", encodeHeader(0, 2, 3, 0), BadMetadata},
		{"ZeroHeight", encodeHeader(2, 0, 3, 0), BadMetadata},
		{"TooManyPixels", encodeHeader(20000, 20000, 3, 0), BadMetadata},
		{"Channels", encodeHeader(2, 2, 5, 0), BadMetadata},
		{"ColorSpace", encodeHeader(2, 2, 4, 2), BadMetadata},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h Header
			err := h.UnmarshalBinary(tt.data)
			if !IsKind(err, tt.kind) {
				t.Fatalf("UnmarshalBinary() error = %v, want kind %v", err, tt.kind)
			}
			if h != (Header{}) {
				t.Errorf("header modified on error: %+v", h)
			}
		})
	}
}

func TestHeaderPixelLimitBoundary(t *testing.T) {
	// 20000*19999 = 399,980,000 is below the limit.
	ok := Header{Width: 20000, Height: 19999, Channels: RGB}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	over := Header{Width: 20000, Height: 20000, Channels: RGB}
	if err := over.Validate(); !IsKind(err, BadMetadata) {
		t.Errorf("Validate() error = %v, want BadMetadata", err)
	}
	// 3*133333333 is below the limit, but 133333333 >= 400000000/3.
	uneven := Header{Width: 3, Height: 133333333, Channels: RGB}
	if err := uneven.Validate(); !IsKind(err, BadMetadata) {
		t.Errorf("Validate() error = %v, want BadMetadata", err)
	}
	if err := (Header{Width: 3, Height: 133333332, Channels: RGB}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestHeaderSizes(t *testing.T) {
	h := Header{Width: 10, Height: 10, Channels: RGB}
	if got := h.Pixels(); got != 100 {
		t.Errorf("Pixels() = %d", got)
	}
	if got := h.MaxEncodedSize(); got != 14+100*5+8 {
		t.Errorf("MaxEncodedSize() = %d", got)
	}
	if got := h.MinEncodedSize(); got != 14+2+8 {
		t.Errorf("MinEncodedSize() = %d", got)
	}
}

func TestBadMagicNamesForeignFormat(t *testing.T) {
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 0x49, 0x48}
	var h Header
	err := h.UnmarshalBinary(png)
	var ce CodecError
	if !errors.As(err, &ce) || ce.Kind != BadMagic {
		t.Fatalf("error = %v, want BadMagic", err)
	}
	if !strings.Contains(ce.Description(), "PNG") {
		t.Errorf("Description() = %q, want it to mention PNG", ce.Description())
	}
}

func TestDecodeHeader(t *testing.T) {
	h, err := DecodeHeader(bytes.NewReader(encodeHeader(3, 4, 4, 1)))
	if err != nil {
		t.Fatalf("DecodeHeader() error = %v", err)
	}
	if h.Width != 3 || h.Height != 4 || h.Channels != RGBA || h.ColorSpace != Linear {
		t.Errorf("DecodeHeader() = %+v", h)
	}

	_, err = DecodeHeader(bytes.NewReader([]byte("qoif")))
	if !IsKind(err, InsufficientData) {
		t.Errorf("short stream error = %v, want InsufficientData", err)
	}

	_, err = DecodeHeader(failingReader{})
	if !IsKind(err, IOError) {
		t.Errorf("failing reader error = %v, want IOError", err)
	}
}

func TestWriteHeaderAndEndMark(t *testing.T) {
	var buf bytes.Buffer
	h := Header{Width: 1, Height: 1, Channels: RGB}
	if err := WriteHeader(&buf, h); err != nil {
		t.Fatalf("WriteHeader() error = %v", err)
	}
	if err := WriteEndMark(&buf); err != nil {
		t.Fatalf("WriteEndMark() error = %v", err)
	}
	if buf.Len() != HeaderSize+EndMarkSize {
		t.Errorf("wrote %d bytes", buf.Len())
	}

	if err := WriteHeader(&buf, Header{}); !IsKind(err, BadMetadata) {
		t.Errorf("invalid header error = %v, want BadMetadata", err)
	}
	if err := WriteHeader(failingWriter{}, h); !IsKind(err, IOError) {
		t.Errorf("failing writer error = %v, want IOError", err)
	}
	if err := WriteEndMark(failingWriter{}); !IsKind(err, IOError) {
		t.Errorf("failing writer error = %v, want IOError", err)
	}
}

func TestCheckEndMark(t *testing.T) {
	if err := CheckEndMark(EndMark[:]); err != nil {
		t.Errorf("CheckEndMark() error = %v", err)
	}
	if err := CheckEndMark([]byte{0, 0, 0, 0, 0, 0, 0, 2}); !IsKind(err, BadEndMark) {
		t.Errorf("wrong marker error = %v, want BadEndMark", err)
	}
	if err := CheckEndMark([]byte{0, 1}); !IsKind(err, InsufficientData) {
		t.Errorf("short marker error = %v, want InsufficientData", err)
	}
}

var errBroken = errors.New("device unplugged")

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errBroken }

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errBroken }
