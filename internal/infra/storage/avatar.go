package storage

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	AvatarSize        = 512
	AvatarQuality     = 80
	AvatarContentType = "image/webp"
)

var ErrInvalidImage = errors.New("invalid image")

// EncodeAvatar decodes a jpeg, png or webp image, scales it down to fit a
// size x size box keeping its aspect ratio, and re-encodes it as webp.
func EncodeAvatar(r io.Reader, size int, quality float32) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, ErrInvalidImage
	}

	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrInvalidImage
	}

	dst := image.NewRGBA(fit(b.Dx(), b.Dy(), size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fit(w, h, size int) image.Rectangle {
	if w <= size && h <= size {
		return image.Rect(0, 0, w, h)
	}
	if w >= h {
		return image.Rect(0, 0, size, max(1, h*size/w))
	}
	return image.Rect(0, 0, max(1, w*size/h), size)
}
