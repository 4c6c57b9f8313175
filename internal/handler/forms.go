// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/form/v4"

	"github.com/olegiv/olanding/internal/service"
)

// Request limits for admin forms. Events accept several images at once.
const (
	maxFilesPerRequest = 10
	multipartMemory    = 8 << 20
	formOverheadBytes  = 1 << 20
)

// parseForm caps the request body and parses urlencoded or multipart forms.
func parseForm(w http.ResponseWriter, r *http.Request, maxUpload int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload*maxFilesPerRequest+formOverheadBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(multipartMemory)
	}
	return r.ParseForm()
}

// formDecoder maps form values onto the `form` tags of the service inputs.
// Checkboxes decode through isChecked, so any posted value other than an
// explicit "off" counts as checked.
var formDecoder = newFormDecoder()

func newFormDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.RegisterCustomTypeFunc(func(vals []string) (any, error) {
		return isChecked(vals[0]), nil
	}, false)
	return d
}

// decodeForm fills dst from the parsed form values. Unknown keys are ignored.
func decodeForm(values url.Values, dst any) error {
	return formDecoder.Decode(dst, values)
}

func isChecked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "off":
		return false
	}
	return true
}

// openFiles tracks uploaded files that must be closed after the request.
type openFiles []io.Closer

func (o *openFiles) Close() {
	for _, c := range *o {
		_ = c.Close()
	}
	*o = nil
}

// formFiles returns the files posted in field. Empty file inputs are skipped.
func formFiles(r *http.Request, field string, opened *openFiles) ([]*service.FileUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var uploads []*service.FileUpload
	for _, fh := range r.MultipartForm.File[field] {
		if fh.Filename == "" && fh.Size == 0 {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		*opened = append(*opened, f)
		uploads = append(uploads, newFileUpload(field, fh, f))
	}
	return uploads, nil
}

// formFile returns the first file posted in field, or nil.
func formFile(r *http.Request, field string, opened *openFiles) (*service.FileUpload, error) {
	uploads, err := formFiles(r, field, opened)
	if err != nil || len(uploads) == 0 {
		return nil, err
	}
	return uploads[0], nil
}

func newFileUpload(field string, fh *multipart.FileHeader, f multipart.File) *service.FileUpload {
	return &service.FileUpload{
		Field:    field,
		Filename: fh.Filename,
		Size:     fh.Size,
		Content:  f,
	}
}
