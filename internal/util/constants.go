package util

import "time"

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageS3    = "s3"
	StorageOSS   = "oss"
)

const (
	MimeImage = "image/"
	MimePDF   = "application/pdf"
)

var (
	AllowedImageExtensions   = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}
	AllowedExhibitExtensions = []string{".pdf", ".png", ".jpg", ".jpeg", ".xlsx", ".csv"}
)

// DateOf 按 UTC 取自然日
func DateOf(t time.Time) string {
	return t.UTC().Format(DateFormat)
}
