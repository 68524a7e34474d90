package vision

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultMaxWidth bounds the resolution of every raster sent to the
// generative service, keeping request payloads and token cost in check.
const DefaultMaxWidth = 1024

// jpegQuality matches the 0.8 compression used by the capture layer.
const jpegQuality = 80

// DecodeDataURI splits a data URI into its mime type and raw bytes.
func DecodeDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}
	comma := strings.Index(uri, ",")
	if comma < 0 {
		return "", nil, fmt.Errorf("malformed data URI: missing payload")
	}
	meta := uri[len("data:"):comma]
	mime := strings.SplitN(meta, ";", 2)[0]
	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URI payload: %w", err)
	}
	return mime, data, nil
}

// EncodeDataURI is the inverse of DecodeDataURI.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Optimize re-encodes an image data URI with its width clamped to
// DefaultMaxWidth, preserving aspect ratio. It never fails: anything that
// cannot be decoded is returned unchanged.
func Optimize(dataURI string) string {
	return OptimizeTo(dataURI, DefaultMaxWidth)
}

// OptimizeTo is Optimize with an explicit width bound.
func OptimizeTo(dataURI string, maxWidth int) string {
	_, raw, err := DecodeDataURI(dataURI)
	if err != nil {
		return dataURI
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return dataURI
	}

	if img.Bounds().Dx() > maxWidth {
		// Height 0 keeps the aspect ratio.
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return dataURI
	}

	return EncodeDataURI("image/jpeg", buf.Bytes())
}
