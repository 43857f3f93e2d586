// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package upload stores user-supplied images on local disk and records them.

Every file is validated on three axes before it is written: the extension,
the Content-Type declared in the multipart part, and the sniffed bytes must
all agree on JPEG or PNG. Files land in the configured directory under a
generated name and are served back from /uploads.
*/
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/internal/platform/constants"
	"github.com/taibuivan/medora/pkg/slug"
	"github.com/taibuivan/medora/pkg/uuid"
)

// # Errors

var (
	ErrNotAnImage = apperr.ValidationError("Only images are allowed")
	ErrTooLarge   = apperr.PayloadTooLarge("File too large (max 5MB)")
	ErrNoFile     = apperr.ValidationError("No file uploaded")
	ErrBadType    = apperr.ValidationError("Invalid image type")
)

var allowedExtensions = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
}

// # Service

// Service owns the upload directory.
type Service struct {
	dir    string
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates dir if needed and returns a [Service] writing into it.
func NewService(dir string, repo Repository, logger *zap.Logger) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: create dir %q: %w", dir, err)
	}
	return &Service{dir: dir, repo: repo, logger: logger, now: time.Now}, nil
}

// Dir returns the directory served at /uploads.
func (service *Service) Dir() string { return service.dir }

/*
Save validates and writes one file.

Returns:
  - string: public path, e.g. "uploads/1718000000000-xray.png"
  - error: ErrNotAnImage, ErrTooLarge or an internal I/O failure
*/
func (service *Service) Save(header *multipart.FileHeader) (string, error) {
	if header.Size > constants.MaxUploadSize {
		return "", ErrTooLarge
	}

	base := filepath.Base(header.Filename)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(base)), ".")
	wantType, ok := allowedExtensions[ext]
	if !ok || !declaredImage(header.Header.Get("Content-Type")) {
		return "", ErrNotAnImage
	}

	source, err := header.Open()
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("upload: open part: %w", err))
	}
	defer source.Close()

	sniff := make([]byte, 512)
	n, err := io.ReadFull(source, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", apperr.Internal(fmt.Errorf("upload: read part: %w", err))
	}
	if http.DetectContentType(sniff[:n]) != wantType {
		return "", ErrNotAnImage
	}

	name := fmt.Sprintf("%d-%s.%s", service.now().UnixMilli(), slug.From(strings.TrimSuffix(base, filepath.Ext(base))), ext)
	target := filepath.Join(service.dir, name)

	destination, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("upload: create %q: %w", target, err))
	}

	written, err := io.Copy(destination, io.LimitReader(io.MultiReader(bytes.NewReader(sniff[:n]), source), constants.MaxUploadSize+1))
	closeErr := destination.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(target)
		return "", apperr.Internal(fmt.Errorf("upload: write %q: %w", target, err))
	}
	if written > constants.MaxUploadSize {
		_ = os.Remove(target)
		return "", ErrTooLarge
	}

	return path.Join(constants.UploadURLPrefix, name), nil
}

// SaveOptional stores the file in field when present and returns "" when absent.
// The multipart form must already be parsed with [ParseMultipart].
func (service *Service) SaveOptional(request *http.Request, field string) (string, error) {
	if request.MultipartForm == nil || len(request.MultipartForm.File[field]) == 0 {
		return "", nil
	}
	return service.Save(request.MultipartForm.File[field][0])
}

// Remove deletes a previously saved file. Used to clean up after a failed write.
func (service *Service) Remove(publicPath string) {
	if publicPath == "" {
		return
	}
	target := filepath.Join(service.dir, path.Base(publicPath))
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		service.logger.Warn("upload_remove_failed", zap.String("path", target), zap.Error(err))
	}
}

/*
Upload stores the file and records it in the image catalog.

Parameters:
  - header: the multipart file
  - imageType: optional; defaults to product
  - uploadedBy: principal id of the caller
*/
func (service *Service) Upload(ctx context.Context, header *multipart.FileHeader, imageType ImageType, uploadedBy string) (*Image, error) {
	if imageType == "" {
		imageType = TypeProduct
	}
	if !imageType.Valid() {
		return nil, ErrBadType
	}

	publicPath, err := service.Save(header)
	if err != nil {
		return nil, err
	}

	image := &Image{
		ID:         uuid.New(),
		ImageURL:   publicPath,
		Type:       imageType,
		UploadedBy: uploadedBy,
	}
	if err := service.repo.Create(ctx, image); err != nil {
		service.Remove(publicPath)
		return nil, err
	}

	service.logger.Info("image_uploaded",
		zap.String("image_id", image.ID),
		zap.String("path", publicPath),
		zap.String("uploaded_by", uploadedBy),
	)
	return image, nil
}

// # Multipart

// ParseMultipart bounds and parses a multipart body. Bodies over the upload
// limit (plus room for text fields) are rejected with 413.
func ParseMultipart(writer http.ResponseWriter, request *http.Request) error {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadSize+constants.MaxMultipartMemory)
	if err := request.ParseMultipartForm(constants.MaxMultipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrTooLarge
		}
		if errors.Is(err, http.ErrNotMultipart) {
			// Plain form or JSON bodies carry no file; fields are read from PostForm.
			return nil
		}
		return apperr.ValidationError("Invalid multipart payload")
	}
	return nil
}

func declaredImage(contentType string) bool {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg", "image/png":
		return true
	}
	return false
}
