package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
)

var (
	ErrImageTooLarge     = errors.New("image too large")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// ImageProcessor kiểm tra và chuẩn hóa logo: JPEG/PNG, fit vào khung vuông, encode PNG
type ImageProcessor struct {
	MaxSize int64
	Box     int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 2 * 1024 * 1024, Box: 256}
}

// ValidateImage chỉ nhận jpeg/png và <= MaxSize
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("%w: max %dMB", ErrImageTooLarge, p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("%w: %s (only jpeg/png)", ErrUnsupportedFormat, format)
	}
}

// ProcessLogo fit ảnh vào Box x Box (giữ tỉ lệ, không phóng to) và encode PNG
func (p *ImageProcessor) ProcessLogo(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > p.Box || bounds.Dy() > p.Box {
		img = imaging.Fit(img, p.Box, p.Box, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("cannot encode png: %w", err)
	}
	return buf.Bytes(), nil
}
