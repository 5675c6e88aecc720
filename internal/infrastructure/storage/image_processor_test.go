package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 90, A: 255})
		}
	}
	return img
}

func TestProcessLogo_FitsIntoBox(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, solidImage(800, 400), nil))

	p := NewImageProcessor()
	require.NoError(t, p.ValidateImage(buf.Bytes()))

	out, err := p.ProcessLogo(buf.Bytes())
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 256, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestProcessLogo_SmallImageKeepsSize(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, solidImage(64, 64)))

	out, err := NewImageProcessor().ProcessLogo(buf.Bytes())
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
}

func TestValidateImage_Rejects(t *testing.T) {
	p := NewImageProcessor()

	assert.ErrorIs(t, p.ValidateImage([]byte("not an image")), ErrUnsupportedFormat)

	buf := new(bytes.Buffer)
	require.NoError(t, gif.Encode(buf, solidImage(10, 10), nil))
	assert.ErrorIs(t, p.ValidateImage(buf.Bytes()), ErrUnsupportedFormat)

	p.MaxSize = 10
	assert.ErrorIs(t, p.ValidateImage(make([]byte, 11)), ErrImageTooLarge)
}
