package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	maxPhotoBytes  = 20 << 20
	maxPhotoEdge   = 1600
	maxPhotoPixels = 40_000_000
)

// embeddableImage is a photo re-encoded as a baseline JPEG that the PDF writer accepts.
type embeddableImage struct {
	data   []byte
	width  int
	height int
}

// toEmbeddable decodes any supported image format, flattens transparency onto
// white, shrinks it to maxPhotoEdge and re-encodes it as JPEG. Images declaring
// more than maxPhotoPixels are refused before any pixel is decoded.
func toEmbeddable(r io.Reader) (*embeddableImage, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxPhotoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	if len(raw) > maxPhotoBytes {
		return nil, fmt.Errorf("photo larger than %d bytes", maxPhotoBytes)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode photo header: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPhotoPixels {
		return nil, fmt.Errorf("photo is %dx%d, over the %d pixel limit", cfg.Width, cfg.Height, maxPhotoPixels)
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}

	bounds := src.Bounds()
	width, height := fit(bounds.Dx(), bounds.Dy(), maxPhotoEdge)
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("photo has no pixels")
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode photo: %w", err)
	}
	return &embeddableImage{data: out.Bytes(), width: width, height: height}, nil
}

func fit(width, height, limit int) (int, int) {
	if width <= limit && height <= limit {
		return width, height
	}
	if width >= height {
		return limit, max(1, height*limit/width)
	}
	return max(1, width*limit/height), limit
}
