// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/olanding/internal/imaging"
	"github.com/olegiv/olanding/internal/util"
)

// Upload kinds. Each kind is a subdirectory of the uploads root.
const (
	KindSchools = "schools"
	KindEvents  = "events"
	KindTeam    = "team"
	KindHero    = "hero"
	KindAbout   = "about"
	KindFooter  = "footer"
)

var knownKinds = map[string]bool{
	KindSchools: true, KindEvents: true, KindTeam: true,
	KindHero: true, KindAbout: true, KindFooter: true,
}

// AllowedExtensions lists the accepted upload extensions.
var AllowedExtensions = []string{"png", "jpg", "jpeg", "webp"}

// Upload name collisions are resolved by trying name_1 ... name_N.
const maxNameAttempts = 100

// FileUpload is one file received from a form.
type FileUpload struct {
	Field    string // form field, used in validation messages
	Filename string // client-supplied name
	Size     int64  // declared size, or <= 0 when unknown
	Content  io.Reader
}

// UploadManager stores validated images under <root>/<kind>/ and deletes
// them again when the owning record lets go of them.
type UploadManager struct {
	root      string
	maxBytes  int64
	processor *imaging.Processor
	logger    *slog.Logger
	now       func() time.Time
}

// NewUploadManager creates an UploadManager rooted at root.
func NewUploadManager(root string, maxBytes int64, logger *slog.Logger) *UploadManager {
	return &UploadManager{
		root:      root,
		maxBytes:  maxBytes,
		processor: imaging.NewProcessor(),
		logger:    logger,
		now:       time.Now,
	}
}

// Save validates up and writes it as <kind>/YYYYMMDD_HHMMSS_<name>.
// It returns the stored file name. Rejected uploads yield a *ValidationError.
func (m *UploadManager) Save(kind string, up *FileUpload) (string, error) {
	if !knownKinds[kind] {
		return "", fmt.Errorf("unknown upload kind %q", kind)
	}

	field := up.Field
	if field == "" {
		field = "image"
	}

	ext := util.Ext(up.Filename)
	if !isAllowedExtension(ext) {
		return "", invalid(field, "Allowed image types: "+strings.Join(AllowedExtensions, ", "))
	}
	if up.Size > m.maxBytes {
		return "", invalid(field, m.tooLargeMessage())
	}

	data, err := io.ReadAll(io.LimitReader(up.Content, m.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > m.maxBytes {
		return "", invalid(field, m.tooLargeMessage())
	}

	img, err := m.processor.Process(bytes.NewReader(data), up.Filename)
	if err != nil {
		switch {
		case errors.Is(err, imaging.ErrUnsupportedFormat), errors.Is(err, imaging.ErrFormatMismatch):
			return "", invalid(field, "The file is not a PNG, JPEG or WebP image")
		case errors.Is(err, imaging.ErrCorruptImage):
			return "", invalid(field, "The image file is damaged and could not be read")
		default:
			return "", fmt.Errorf("processing upload: %w", err)
		}
	}

	base := util.SecureFilename(up.Filename)
	if base == "" || util.Ext(base) != ext {
		base = "image." + ext
	}
	name := m.now().Format("20060102_150405") + "_" + base

	dir, err := util.SafeJoinPath(m.root, kind)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	stored, err := writeExclusive(dir, name, img.Data)
	if err != nil {
		return "", err
	}

	m.logger.Info("upload stored", "kind", kind, "file", stored,
		"bytes", len(img.Data), "width", img.Width, "height", img.Height, "normalized", img.Modified)
	return stored, nil
}

// Remove deletes a stored file. It never fails: problems are logged.
func (m *UploadManager) Remove(kind, name string) {
	if name == "" {
		return
	}
	p, err := m.Path(kind, name)
	if err != nil {
		m.logger.Warn("refusing to remove upload", "kind", kind, "file", name, "error", err)
		return
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		m.logger.Warn("failed to remove upload", "kind", kind, "file", name, "error", err)
		return
	}
	m.logger.Debug("upload removed", "kind", kind, "file", name)
}

// RemoveAll removes every file in names.
func (m *UploadManager) RemoveAll(kind string, names []string) {
	for _, name := range names {
		m.Remove(kind, name)
	}
}

// Path returns the on-disk path of a stored file.
func (m *UploadManager) Path(kind, name string) (string, error) {
	if !knownKinds[kind] {
		return "", fmt.Errorf("unknown upload kind %q", kind)
	}
	if !util.IsPlainFilename(name) {
		return "", fmt.Errorf("invalid stored filename %q", name)
	}
	return util.SafeJoinPath(m.root, kind, name)
}

// UploadURL returns the public URL of a stored file, or "" for no file.
func UploadURL(kind, name string) string {
	if name == "" {
		return ""
	}
	return path.Join("/uploads", kind, name)
}

func (m *UploadManager) tooLargeMessage() string {
	return fmt.Sprintf("File is too large (maximum %d MB)", m.maxBytes>>20)
}

func isAllowedExtension(ext string) bool {
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// writeExclusive creates dir/name without overwriting anything, adding a
// numeric suffix when the name is taken. It returns the name used.
func writeExclusive(dir, name string, data []byte) (string, error) {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		candidate := name
		if attempt > 0 {
			candidate = stem + "_" + strconv.Itoa(attempt) + ext
		}

		full, err := util.SafeJoinPath(dir, candidate)
		if err != nil {
			return "", err
		}
		f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating upload file: %w", err)
		}

		_, werr := f.Write(data)
		cerr := f.Close()
		if werr != nil || cerr != nil {
			_ = os.Remove(full)
			return "", fmt.Errorf("writing upload file: %w", errors.Join(werr, cerr))
		}
		return candidate, nil
	}
	return "", fmt.Errorf("no free file name for %q after %d attempts", name, maxNameAttempts)
}
