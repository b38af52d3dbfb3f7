package qoi

var (
	pngSignature  = [...]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	riffSignature = [...]byte{0x52, 0x49, 0x46, 0x46}
	webpSignature = [...]byte{0x57, 0x45, 0x42, 0x50}
)

// DetectFormat identifies an image format by its magic bytes.
// It returns FormatUnknown when no signature matches. Formats other than
// QOI are only recognised so that error messages can name them.
func DetectFormat(magicBytes []byte) Format {
	if len(magicBytes) < 2 {
		return FormatUnknown
	}

	// QOI: 71 6F 69 66 ("qoif")
	if hasPrefix(magicBytes, []byte(Magic)) {
		return FormatQOI
	}

	// JPEG: FF D8 FF
	if len(magicBytes) >= 3 && magicBytes[0] == 0xFF && magicBytes[1] == 0xD8 && magicBytes[2] == 0xFF {
		return FormatJPEG
	}

	if hasPrefix(magicBytes, pngSignature[:]) {
		return FormatPNG
	}

	// GIF87a or GIF89a
	if len(magicBytes) >= 6 {
		if magicBytes[0] == 0x47 && magicBytes[1] == 0x49 && magicBytes[2] == 0x46 &&
			magicBytes[3] == 0x38 && (magicBytes[4] == 0x37 || magicBytes[4] == 0x39) &&
			magicBytes[5] == 0x61 {
			return FormatGIF
		}
	}

	// WebP: RIFF ... WEBP
	if len(magicBytes) >= 12 && hasPrefix(magicBytes, riffSignature[:]) &&
		hasPrefix(magicBytes[8:], webpSignature[:]) {
		return FormatWebP
	}

	// BMP: "BM"
	if magicBytes[0] == 0x42 && magicBytes[1] == 0x4D {
		return FormatBMP
	}

	return FormatUnknown
}

func hasPrefix(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i, b := range prefix {
		if buf[i] != b {
			return false
		}
	}
	return true
}
