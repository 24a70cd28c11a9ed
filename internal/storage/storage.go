// Package storage persists uploaded images, either on local disk or in an
// S3-compatible bucket.
package storage

import (
	"bufio"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrNotImage is returned when an upload does not sniff as an image.
var ErrNotImage = errors.New("upload is not an image")

// MaxUploadBytes caps a single uploaded file.
const MaxUploadBytes = 5 << 20

// Store saves an upload and returns the path or URL clients should use.
type Store interface {
	Save(ctx context.Context, field, filename string, r io.Reader) (string, error)
}

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true}

// objectName builds "<field>-<uuid><ext>", keeping the extension only when it
// is a known image type.
func objectName(field, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if !imageExts[ext] {
		ext = ""
	}
	return field + "-" + uuid.NewString() + ext
}

// sniffBytes is how much of an upload mimetype looks at.
const sniffBytes = 3072

// imageTypes are the raster formats accepted as uploads. SVG is left out since
// it can carry script.
var imageTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// sniff peeks at the head of r and fails unless it is an accepted image type.
func sniff(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffBytes)
	head, err := br.Peek(sniffBytes)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, "", err
	}
	mt := mimetype.Detect(head)
	if !mimetype.EqualsAny(mt.String(), imageTypes...) {
		return nil, "", ErrNotImage
	}
	return io.LimitReader(br, MaxUploadBytes), mt.String(), nil
}
