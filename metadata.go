package qoi

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// Options controls how strictly a stream is checked.
type Options struct {
	// MaxPixels lowers the pixel limit below MaxPixels, applied the same
	// way: height >= MaxPixels/width is rejected. Zero means MaxPixels.
	MaxPixels uint64

	// SkipEndMark disables verification of the trailing end marker.
	SkipEndMark bool
}

func (o Options) pixelLimit() uint64 {
	if o.MaxPixels == 0 || o.MaxPixels > MaxPixels {
		return MaxPixels
	}
	return o.MaxPixels
}

// Metadata reads a QOI file and extracts its dimensions, channel layout,
// colorspace and payload size. The stream framing is verified: header,
// size bounds implied by the header, and the end marker.
//
// Every error returned is a CodecError.
//
// Example:
//
//	md, err := qoi.Metadata("image.qoi")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Dimensions: %dx%d\n", md.Width, md.Height)
func Metadata(filepath string) (*ImageMetadata, error) {
	return MetadataWithOptions(filepath, Options{})
}

// MetadataWithOptions is Metadata with explicit Options.
func MetadataWithOptions(filepath string, opts Options) (*ImageMetadata, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, FromIOErrorMessage(err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, FromIOErrorMessage(err)
	}

	return MetadataFromReaderWithOptions(file, fileInfo.Size(), opts)
}

// MetadataFromBytes extracts metadata from an in-memory QOI stream.
func MetadataFromBytes(data []byte) (*ImageMetadata, error) {
	return MetadataFromReader(bytes.NewReader(data), int64(len(data)))
}

// MetadataFromReader extracts metadata from any io.ReadSeeker holding
// fileSize bytes, allowing callers to reuse already opened readers.
func MetadataFromReader(r io.ReadSeeker, fileSize int64) (*ImageMetadata, error) {
	return MetadataFromReaderWithOptions(r, fileSize, Options{})
}

// MetadataFromReaderWithOptions is MetadataFromReader with explicit Options.
func MetadataFromReaderWithOptions(r io.ReadSeeker, fileSize int64, opts Options) (*ImageMetadata, error) {
	if fileSize < HeaderSize+EndMarkSize {
		return nil, errorf(InsufficientData, "stream is %d bytes, need at least %d", fileSize, HeaderSize+EndMarkSize)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, FromIOErrorMessage(err)
	}

	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errorf(InsufficientData, "stream ended before the %d byte header", HeaderSize)
		}
		return nil, FromIOErrorMessage(err)
	}

	var h Header
	if err := h.parse(buf[:], opts.pixelLimit()); err != nil {
		return nil, err
	}

	size := uint64(fileSize)
	if lo := h.MinEncodedSize(); size < lo {
		return nil, errorf(InsufficientData, "%dx%d image needs at least %d bytes, stream is %d", h.Width, h.Height, lo, size)
	}
	if hi := h.MaxEncodedSize(); size > hi {
		return nil, errorf(TooMuchData, "%dx%d image encodes to at most %d bytes, stream is %d", h.Width, h.Height, hi, size)
	}

	if !opts.SkipEndMark {
		if err := checkTail(r, fileSize); err != nil {
			return nil, err
		}
	}

	md := &ImageMetadata{
		Format:     FormatQOI,
		Width:      int(h.Width),
		Height:     int(h.Height),
		FileSize:   fileSize,
		ColorDepth: 8 * int(h.Channels),
		ColorSpace: h.Channels.String(),
	}
	md.setAdditional("Channels", int(h.Channels))
	md.setAdditional("Transfer", h.ColorSpace.String())
	md.setAdditional("PayloadSize", fileSize-HeaderSize-EndMarkSize)
	md.setAdditional("MaxEncodedSize", h.MaxEncodedSize())

	return md, nil
}

func checkTail(r io.ReadSeeker, fileSize int64) error {
	if _, err := r.Seek(fileSize-EndMarkSize, io.SeekStart); err != nil {
		return FromIOErrorMessage(err)
	}
	var tail [EndMarkSize]byte
	n, err := io.ReadFull(r, tail[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return CheckEndMark(tail[:n])
		}
		return FromIOErrorMessage(err)
	}
	return CheckEndMark(tail[:])
}
