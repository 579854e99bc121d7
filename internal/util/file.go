package util

import (
	"fmt"
	"mime/multipart"
)

// ValidateUpload checks one evidence file against the classification
// allow-list and the size cap. It runs before any submission row is
// written, so a bad file means no partial submission.
func ValidateUpload(header *multipart.FileHeader) error {
	if header.Size > MaxUploadBytes {
		return NewValidationError(header.Filename,
			fmt.Sprintf("file exceeds the %d byte limit (got %d)", MaxUploadBytes, header.Size))
	}

	contentType := header.Header.Get("Content-Type")
	for _, allowed := range AllowedUploadTypes {
		if contentType == allowed {
			return nil
		}
	}

	return NewValidationError(header.Filename,
		"file type "+contentType+" is not allowed (pdf, jpeg, png, mp4 or word document)")
}
