// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// createTestImage creates a simple test image with the given dimensions.
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, createTestImage(w, h)); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, createTestImage(w, h), nil); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestProcess_PNG(t *testing.T) {
	data := pngBytes(t, 40, 20)

	res, err := NewProcessor().Process(bytes.NewReader(data), "logo.png")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Format != FormatPNG || res.Width != 40 || res.Height != 20 {
		t.Errorf("unexpected result: format=%s %dx%d", res.Format, res.Width, res.Height)
	}
	if res.Modified {
		t.Error("small upright image should be kept as uploaded")
	}
	if !bytes.Equal(res.Data, data) {
		t.Error("unmodified image data should be returned unchanged")
	}
}

func TestProcess_JPEGExtensions(t *testing.T) {
	for _, name := range []string{"photo.jpg", "photo.JPEG"} {
		if _, err := NewProcessor().Process(bytes.NewReader(jpegBytes(t, 8, 8)), name); err != nil {
			t.Errorf("Process(%q): %v", name, err)
		}
	}
}

func TestProcess_ScalesDown(t *testing.T) {
	p := &Processor{MaxDimension: 16}

	res, err := p.Process(bytes.NewReader(pngBytes(t, 64, 32)), "wide.png")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !res.Modified {
		t.Error("oversized image should be modified")
	}
	if res.Width != 16 || res.Height != 8 {
		t.Errorf("scaled size = %dx%d, want 16x8", res.Width, res.Height)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(res.Data))
	if err != nil {
		t.Fatalf("re-encoded data does not decode: %v", err)
	}
	if format != "png" || cfg.Width != 16 {
		t.Errorf("re-encoded as %s %dpx, want png 16px", format, cfg.Width)
	}
}

func TestProcess_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		filename string
		want     error
	}{
		{"text file", []byte("just some text, not an image"), "notes.png", ErrUnsupportedFormat},
		{"gif", []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;"), "anim.gif", ErrUnsupportedFormat},
		{"tiff", []byte("II*\x00\x08\x00\x00\x00"), "scan.png", ErrUnsupportedFormat},
		{"wrong extension", nil, "logo.jpg", ErrFormatMismatch},
		{"no extension", nil, "logo", ErrFormatMismatch},
		{"truncated png", nil, "broken.png", ErrCorruptImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data
			if data == nil {
				data = pngBytes(t, 10, 10)
			}
			if tt.name == "truncated png" {
				data = data[:len(data)/2]
			}

			_, err := NewProcessor().Process(bytes.NewReader(data), tt.filename)
			if !errors.Is(err, tt.want) {
				t.Errorf("Process() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestApplyOrientation(t *testing.T) {
	img := createTestImage(30, 10)

	tests := []struct {
		orientation int
		wantW       int
		wantH       int
	}{
		{1, 30, 10},
		{2, 30, 10},
		{3, 30, 10},
		{4, 30, 10},
		{5, 10, 30},
		{6, 10, 30},
		{7, 10, 30},
		{8, 10, 30},
		{99, 30, 10},
	}

	for _, tt := range tests {
		b := applyOrientation(img, tt.orientation).Bounds()
		if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
			t.Errorf("orientation %d: got %dx%d, want %dx%d", tt.orientation, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestReadExifOrientation_NoExif(t *testing.T) {
	if got := readExifOrientation(bytes.NewReader(jpegBytes(t, 4, 4))); got != 1 {
		t.Errorf("readExifOrientation() = %d, want 1", got)
	}
}

func TestFormatFromExtension(t *testing.T) {
	tests := map[string]string{
		"a.png":     FormatPNG,
		"a.JPG":     FormatJPEG,
		"a.jpeg":    FormatJPEG,
		"a.webp":    FormatWebP,
		"a.gif":     "",
		"a.png.exe": "",
		"noext":     "",
	}
	for name, want := range tests {
		if got := FormatFromExtension(name); got != want {
			t.Errorf("FormatFromExtension(%q) = %q, want %q", name, got, want)
		}
	}
}
