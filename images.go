package rancher

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"

	_ "golang.org/x/image/webp"
)

// ErrRemoteSource is returned for URL sources; fetching them is up to the host program.
var ErrRemoteSource = errors.New("remote image source")

// ImageResolver gives layout the intrinsic size of an image source.
type ImageResolver interface {
	Resolve(src Src) (Vec, error)
}

// ImageCache reads images from disk. Sizes come from the image header only; full
// decoding happens when a rasterizer asks for pixels. Both are cached until the file
// changes on disk.
type ImageCache struct {
	files *fileCache
}

func NewImageCache() (*ImageCache, error) {
	files, err := newFileCache()
	if err != nil {
		return nil, fmt.Errorf("image cache: %w", err)
	}
	return &ImageCache{files: files}, nil
}

// OnInvalidate registers a hook run (from the watcher goroutine) when a cached file
// changes. The backends' WatchImages use it to wake up for a new frame.
func (c *ImageCache) OnInvalidate(fn func(fpath string)) {
	c.files.onInvalidate = fn
}

func (c *ImageCache) Resolve(src Src) (Vec, error) {
	const key = "size"
	if src.Kind == SrcURL {
		return Vec{}, ErrRemoteSource
	}
	fpath := filepath.Clean(src.Path)
	if size, found := fileCacheGet[Vec](c.files, fpath, key); found {
		return size, nil
	}
	content, err := c.files.readFile(fpath)
	if err != nil {
		return Vec{}, fmt.Errorf("resolve image: %w", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return Vec{}, fmt.Errorf("resolve image %s: %w", fpath, err)
	}
	size := Vec{X: f32(cfg.Width), Y: f32(cfg.Height)}
	c.files.set(fpath, key, size)
	return size, nil
}

// Load decodes the whole image.
func (c *ImageCache) Load(src Src) (*image.RGBA, error) {
	const key = "image"
	if src.Kind == SrcURL {
		return nil, ErrRemoteSource
	}
	fpath := filepath.Clean(src.Path)
	if img, found := fileCacheGet[*image.RGBA](c.files, fpath, key); found {
		return img, nil
	}
	content, err := c.files.readFile(fpath)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", fpath, err)
	}
	img := imageToRGBA(decoded)
	c.files.set(fpath, key, img)
	return img, nil
}

func (c *ImageCache) Close() error {
	return c.files.close()
}

// from: https://stackoverflow.com/a/61721655/35364
func imageToRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}

	// No conversion needed if image is an *image.RGBA.
	if dst, ok := src.(*image.RGBA); ok {
		return dst
	}

	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
