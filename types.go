package qoi

import "strconv"

// Format represents an image format recognised by its signature.
type Format string

const (
	FormatUnknown Format = ""
	FormatQOI     Format = "QOI"
	FormatJPEG    Format = "JPEG"
	FormatPNG     Format = "PNG"
	FormatGIF     Format = "GIF"
	FormatWebP    Format = "WebP"
	FormatBMP     Format = "BMP"
)

// Channels is the number of color channels declared in a QOI header.
type Channels uint8

const (
	RGB  Channels = 3
	RGBA Channels = 4
)

// Valid reports whether c is a channel count the format allows.
func (c Channels) Valid() bool {
	return c == RGB || c == RGBA
}

func (c Channels) String() string {
	switch c {
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	default:
		return "Channels(" + strconv.Itoa(int(c)) + ")"
	}
}

// ColorSpace is the transfer function declared in a QOI header. It is
// informative only and does not change how chunks are encoded.
type ColorSpace uint8

const (
	// SRGB means sRGB color channels with a linear alpha channel.
	SRGB ColorSpace = 0
	// Linear means every channel is linear.
	Linear ColorSpace = 1
)

// Valid reports whether cs is a colorspace value the format allows.
func (cs ColorSpace) Valid() bool {
	return cs == SRGB || cs == Linear
}

func (cs ColorSpace) String() string {
	switch cs {
	case SRGB:
		return "sRGB"
	case Linear:
		return "linear"
	default:
		return "ColorSpace(" + strconv.Itoa(int(cs)) + ")"
	}
}

// ImageMetadata contains the metadata extracted from a QOI file.
type ImageMetadata struct {
	Format     Format `json:"format"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	FileSize   int64  `json:"fileSize"`
	ColorDepth int    `json:"colorDepth"`

	// ColorSpace is the channel layout, "RGB" or "RGBA".
	ColorSpace string `json:"colorSpace"`

	// Additional holds QOI specific values:
	// Channels, Transfer, PayloadSize and MaxEncodedSize.
	Additional map[string]interface{} `json:"additional,omitempty"`
}

// setAdditional stores a value lazily in the Additional map.
func (md *ImageMetadata) setAdditional(key string, value interface{}) {
	if md.Additional == nil {
		md.Additional = make(map[string]interface{})
	}
	md.Additional[key] = value
}
