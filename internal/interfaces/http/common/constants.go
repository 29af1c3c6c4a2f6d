package common

import "time"

const (
	// DefaultMaxUploadBytes caps a whole intake request (all photos, the CV and the fields).
	DefaultMaxUploadBytes = 40 << 20
	// MaxFileBytes caps a single uploaded file.
	MaxFileBytes = 10 << 20
	// MaxFormMemory is the multipart size kept in memory before spilling to temporary files.
	MaxFormMemory = 8 << 20
	// MaxAuthRequestBody limits JSON bodies on the auth endpoints.
	MaxAuthRequestBody = 16 << 10

	// RequestTimeout bounds store-only requests.
	RequestTimeout = 10 * time.Second
	// UploadTimeout bounds an intake request including its uploads.
	UploadTimeout = 2 * time.Minute
	// ExportTimeout bounds PDF exports that fetch photos.
	ExportTimeout = time.Minute
)
