package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// Evidence upload constraints.
const (
	MaxUploadBytes = 20 * 1024 * 1024 // 20 MiB

	MimePDF  = "application/pdf"
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeMP4  = "video/mp4"
	MimeDoc  = "application/msword"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// AllowedUploadTypes is the evidence file allow-list.
var AllowedUploadTypes = []string{
	MimePDF,
	MimeJPEG,
	MimePNG,
	MimeMP4,
	MimeDoc,
	MimeDocx,
}
