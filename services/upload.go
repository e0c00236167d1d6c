package services

import (
	"fmt"
	"io"
	"net/http"
)

// MaxProofSize is the payment proof upload cap.
const MaxProofSize = 5 << 20 // 5 MB

var allowedProofTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// ProofUpload is an uploaded payment proof. Body must be seekable so the
// content type can be sniffed before the blob is stored.
type ProofUpload struct {
	Filename string
	Size     int64
	Body     io.ReadSeeker
}

// Validate checks size and sniffs the content type from the file bytes
// (the client-declared type is not trusted). Returns the detected type.
func (up ProofUpload) Validate() (string, error) {
	if up.Size <= 0 {
		return "", &ValidationError{Field: "file", Message: "payment proof file is required"}
	}
	if up.Size > MaxProofSize {
		return "", &ValidationError{Field: "file", Message: "file size must not exceed 5MB"}
	}

	buf := make([]byte, 512)
	n, err := up.Body.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if _, err := up.Body.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	contentType := http.DetectContentType(buf[:n])
	if !allowedProofTypes[contentType] {
		return "", &ValidationError{Field: "file", Message: "only JPG, PNG or PDF files are allowed"}
	}
	return contentType, nil
}
