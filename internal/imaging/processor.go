// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging validates uploaded images. It sniffs the real format,
// decodes the pixels to prove the file is an image, applies the EXIF
// orientation and scales down oversized pictures.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// Supported formats.
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// DefaultMaxDimension is the longest edge kept for uploaded pictures.
const DefaultMaxDimension = 4096

var (
	// ErrUnsupportedFormat is returned for content that is not JPEG, PNG or WebP.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrCorruptImage is returned when the content cannot be decoded.
	ErrCorruptImage = errors.New("image could not be decoded")
	// ErrFormatMismatch is returned when the extension disagrees with the content.
	ErrFormatMismatch = errors.New("file extension does not match image content")
)

// Result is a validated image ready to be written to disk.
type Result struct {
	Format string
	Width  int
	Height int
	Data   []byte
	// Modified is true when Data was re-encoded (rotated or scaled).
	Modified bool
}

// Processor checks and normalises uploaded images.
type Processor struct {
	MaxDimension int
	JPEGQuality  int
}

// NewProcessor creates a processor with the default limits.
func NewProcessor() *Processor {
	return &Processor{MaxDimension: DefaultMaxDimension, JPEGQuality: 90}
}

// Process reads an upload named filename and returns the bytes to store.
// The extension must be png, jpg, jpeg or webp and agree with the content.
func (p *Processor) Process(r io.Reader, filename string) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	format := DetectFormat(data)
	if format == "" {
		return nil, ErrUnsupportedFormat
	}
	if want := FormatFromExtension(filename); want != format {
		return nil, ErrFormatMismatch
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptImage, err)
	}

	res := &Result{Format: format, Data: data}

	// The pure Go WebP package only decodes, so WebP files are kept as uploaded.
	if format != FormatWebP {
		if orientation := readExifOrientation(bytes.NewReader(data)); orientation > 1 {
			img = applyOrientation(img, orientation)
			res.Modified = true
		}
		if limit := p.MaxDimension; limit > 0 {
			b := img.Bounds()
			if b.Dx() > limit || b.Dy() > limit {
				img = imaging.Fit(img, limit, limit, imaging.Lanczos)
				res.Modified = true
			}
		}
		if res.Modified {
			if res.Data, err = encodeImage(img, format, p.quality()); err != nil {
				return nil, fmt.Errorf("encoding image: %w", err)
			}
		}
	}

	res.Width = img.Bounds().Dx()
	res.Height = img.Bounds().Dy()
	return res, nil
}

func (p *Processor) quality() int {
	if p.JPEGQuality <= 0 || p.JPEGQuality > 100 {
		return 90
	}
	return p.JPEGQuality
}

// DetectFormat sniffs the image format from raw bytes. It returns "" for
// anything other than JPEG, PNG or WebP.
func DetectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// TIFF is never accepted (CVE-2023-36308 in disintegration/imaging).
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch contentType {
	case "image/jpeg":
		return FormatJPEG
	case "image/png":
		return FormatPNG
	case "image/webp":
		return FormatWebP
	default:
		return ""
	}
}

// FormatFromExtension maps an allowed file extension to its format.
func FormatFromExtension(filename string) string {
	dot := strings.LastIndexByte(filename, '.')
	if dot < 0 {
		return ""
	}
	switch strings.ToLower(filename[dot+1:]) {
	case "jpg", "jpeg":
		return FormatJPEG
	case "png":
		return FormatPNG
	case "webp":
		return FormatWebP
	default:
		return ""
	}
}

// readExifOrientation returns the EXIF orientation tag, or 1 when absent.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation undoes the camera orientation so pixels display upright.
//
//	2 flip horizontal    3 rotate 180    4 flip vertical
//	5 transpose          6 rotate 90 CW  7 transverse     8 rotate 90 CCW
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(&buf, img)
	case FormatJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	default:
		return nil, fmt.Errorf("cannot encode %s", format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
