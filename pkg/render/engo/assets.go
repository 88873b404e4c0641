// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/draw"

	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-snake/pkg/entity"
	"github.com/opd-ai/go-snake/pkg/render"
)

// DecodeTexture loads the image at path and uploads it as an engo texture.
// It must run on the render thread, which is where the engine ticks inside
// the window frontend.
func DecodeTexture(path string) (entity.Texture, error) {
	decoded, err := render.DecodeImageFile(path)
	if err != nil {
		return nil, err
	}
	img := decoded.(render.ImageTexture).Image

	return common.NewTextureSingle(common.NewImageObject(toNRGBA(img))), nil
}

// toNRGBA converts an image to the pixel layout engo uploads
func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) {
		return nrgba
	}

	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	return out
}
