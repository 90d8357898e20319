package constants

import "strings"

// FileFormat is the canonical document format for rows in extract_jobs.
type FileFormat string

// Stable values (store these exact strings in DB).
const (
	PDF  FileFormat = "PDF"
	DOCX FileFormat = "DOCX"
)

// AllowedExtensions holds the default allowed file extensions for resume ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"docx": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized file extension to its FileFormat.
// Returns "" for extensions we do not handle.
func MapExtToFormat(ext string) FileFormat {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "docx":
		return DOCX
	default:
		return ""
	}
}
