// Package imageload reads PNG and JPEG files for summarization.
package imageload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnsupportedImage = errors.New("unsupported image format")

// Image is a decoded raster image plus the bytes it was decoded from.
type Image struct {
	Path     string
	Name     string
	MIMEType string
	Data     []byte
	Image    image.Image
}

func (i *Image) Width() int  { return i.Image.Bounds().Dx() }
func (i *Image) Height() int { return i.Image.Bounds().Dy() }

// IsImagePath reports whether path has a .png, .jpg or .jpeg extension.
func IsImagePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// Load reads and decodes path. The MIME type follows the decoded content, so
// a PNG saved as .jpg is still sent as image/png.
func Load(path string) (*Image, error) {
	if !IsImagePath(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", filepath.Base(path), err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", filepath.Base(path), err)
	}

	var mime string
	switch format {
	case "png":
		mime = "image/png"
	case "jpeg":
		mime = "image/jpeg"
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, format)
	}

	return &Image{
		Path:     path,
		Name:     filepath.Base(path),
		MIMEType: mime,
		Data:     data,
		Image:    img,
	}, nil
}
