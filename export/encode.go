package export

import (
	"bytes"
	"image/png"

	"github.com/wudi/pdfview/document"
)

// EncodePNG turns a decoded page or asset raster into PNG bytes, for
// callers that hold pixels rather than an already-encoded stream.
func EncodePNG(r document.Raster) ([]byte, error) {
	img, err := r.Image()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SniffExtension guesses a file extension from an asset's magic bytes.
// Unknown encodings fall back to "bin".
func SniffExtension(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff}):
		return "jpg"
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return "gif"
	case bytes.HasPrefix(data, []byte("BM")):
		return "bmp"
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return "tif"
	default:
		return "bin"
	}
}
