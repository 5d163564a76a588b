package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xwebp "golang.org/x/image/webp"

	"github.com/BruksfildServices01/barber-booking/internal/config"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEncodeAvatar_FitsBox(t *testing.T) {
	out, err := EncodeAvatar(bytes.NewReader(pngOf(t, 1024, 256)), AvatarSize, AvatarQuality)
	require.NoError(t, err)

	cfg, err := xwebp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestEncodeAvatar_KeepsSmallImages(t *testing.T) {
	out, err := EncodeAvatar(bytes.NewReader(pngOf(t, 40, 60)), AvatarSize, AvatarQuality)
	require.NoError(t, err)

	cfg, err := xwebp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 60, cfg.Height)
}

func TestEncodeAvatar_RejectsGarbage(t *testing.T) {
	_, err := EncodeAvatar(strings.NewReader("not an image"), AvatarSize, AvatarQuality)
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestFit(t *testing.T) {
	assert.Equal(t, image.Rect(0, 0, 256, 512), fit(500, 1000, 512))
	assert.Equal(t, image.Rect(0, 0, 512, 1), fit(5000, 2, 512))
}

func TestS3URL(t *testing.T) {
	s := NewS3AvatarStore(config.S3Config{Bucket: "avatars", Region: "us-east-1", Endpoint: "http://minio:9000/"})
	assert.Equal(t, "http://minio:9000/avatars/barbers/1.webp", s.URL("barbers/1.webp"))

	s = NewS3AvatarStore(config.S3Config{Bucket: "avatars", Region: "us-east-1", PublicURL: "https://cdn.example.com/"})
	assert.Equal(t, "https://cdn.example.com/barbers/1.webp", s.URL("barbers/1.webp"))

	s = NewS3AvatarStore(config.S3Config{Bucket: "avatars", Region: "sa-east-1"})
	assert.Equal(t, "https://avatars.s3.amazonaws.com/k", s.URL("k"))
}
