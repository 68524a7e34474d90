package vision_test

import (
	"bytes"
	"image"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina-backend/internal/vision"
)

func jpegDataURI(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return vision.EncodeDataURI("image/jpeg", buf.Bytes())
}

func decodeSize(t *testing.T, dataURI string) (int, int) {
	t.Helper()
	_, raw, err := vision.DecodeDataURI(dataURI)
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestDecodeDataURI(t *testing.T) {
	mime, data, err := vision.DecodeDataURI("data:image/png;base64,aGVsbG8=")
	assert.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, []byte("hello"), data)
}

func TestDecodeDataURI_Malformed(t *testing.T) {
	_, _, err := vision.DecodeDataURI("http://example.com/image.png")
	assert.Error(t, err)

	_, _, err = vision.DecodeDataURI("data:image/png;base64")
	assert.Error(t, err)

	_, _, err = vision.DecodeDataURI("data:image/png;base64,not-base64!!!")
	assert.Error(t, err)
}

func TestOptimize_DownscalesWideImages(t *testing.T) {
	uri := jpegDataURI(t, 2048, 1024)

	optimized := vision.Optimize(uri)

	w, h := decodeSize(t, optimized)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 512, h, "aspect ratio must be preserved")
	assert.True(t, strings.HasPrefix(optimized, "data:image/jpeg;base64,"))
}

func TestOptimize_LeavesSmallImagesAtSize(t *testing.T) {
	uri := jpegDataURI(t, 640, 480)

	optimized := vision.Optimize(uri)

	w, h := decodeSize(t, optimized)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestOptimize_ReturnsInputOnGarbage(t *testing.T) {
	assert.Equal(t, "not a data uri", vision.Optimize("not a data uri"))
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", vision.Optimize("data:image/jpeg;base64,aGVsbG8="))
}
