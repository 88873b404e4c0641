// pkg/render/image.go
package render

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/webp"

	"github.com/opd-ai/go-snake/pkg/entity"
)

// ImageTexture is a decoded image held in memory
type ImageTexture struct {
	Image image.Image
}

// Width implements entity.Texture.
func (t ImageTexture) Width() float32 {
	if t.Image == nil {
		return 0
	}
	return float32(t.Image.Bounds().Dx())
}

// Height implements entity.Texture.
func (t ImageTexture) Height() float32 {
	if t.Image == nil {
		return 0
	}
	return float32(t.Image.Bounds().Dy())
}

// At returns the color at column x, row y counted from the image origin
func (t ImageTexture) At(x, y int) color.Color {
	b := t.Image.Bounds()
	return t.Image.At(b.Min.X+x, b.Min.Y+y)
}

// DecodeImage decodes a png, jpeg, gif or webp stream
func DecodeImage(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("empty %s image", format)
	}
	return img, nil
}

// DecodeImageFile reads and decodes the image at path. It has the shape of
// a resource.Decoder.
func DecodeImageFile(path string) (entity.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := DecodeImage(f)
	if err != nil {
		return nil, err
	}
	return ImageTexture{Image: img}, nil
}
