package security

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxCertificateSize is the upload cap for certificates (2 MB).
const MaxCertificateSize = 2048 * 1024

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Detected file extension
	DetectedMIME string // Detected MIME type
	Error        string // Error message if validation failed
}

var pdfMagic = []byte("%PDF")

// ValidateCertificate accepts only PDF documents:
// 1. size cap
// 2. .pdf extension
// 3. %PDF magic bytes
// 4. sniffed MIME type application/pdf
func ValidateCertificate(filename string, data []byte) FileValidationResult {
	result := FileValidationResult{}

	if len(data) == 0 {
		result.Error = "file is empty"
		return result
	}
	if len(data) > MaxCertificateSize {
		result.Error = "file may not be greater than 2048 kilobytes"
		return result
	}

	ext := strings.ToLower(filepath.Ext(filename))
	result.Extension = ext
	if ext != ".pdf" {
		result.Error = "file must be a file of type: pdf"
		return result
	}

	if !bytes.HasPrefix(data, pdfMagic) {
		result.Error = "file content does not match extension"
		return result
	}

	detected := mimetype.Detect(data)
	result.DetectedMIME = detected.String()
	if !detected.Is("application/pdf") {
		result.Error = "MIME type not allowed: " + detected.String()
		return result
	}

	result.Valid = true
	return result
}
