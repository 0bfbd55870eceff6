// Package batch implements the client side of bulk estimation: local file
// validation, template generation, and the upload + polling state machine
// that tracks a server-side job to completion.
package batch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dkaras/relocost/internal/common"
)

// MaxUploadSize is the largest file the client will send.
const MaxUploadSize = 10 << 20 // 10 MiB

var allowedExtensions = map[string]struct{}{
	".csv":  {},
	".xlsx": {},
	".xls":  {},
}

// ValidateFile checks a selected file's extension (case-insensitive) and
// size. It runs before any request is made; a failure here never reaches
// the network.
func ValidateFile(name string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: %q (allowed: .csv, .xlsx, .xls)", common.ErrUnsupportedFileType, ext)
	}
	if size > MaxUploadSize {
		return fmt.Errorf("%w: %d bytes (max %d)", common.ErrFileTooLarge, size, MaxUploadSize)
	}
	return nil
}
