package rsclient

import (
	"io"

	"github.com/rsplatform/rsclient/session"
)

// UserRecord is the profile half of the session record. See
// [session.User] for field semantics; the alias keeps the session
// subpackage free of imports from this package.
type UserRecord = session.User

// SessionRecord is the persisted {token, userInfo} pair.
type SessionRecord = session.Record

// UploadResult is the file service's answer to a successful upload. All
// three fields are mandatory; the pipeline rejects anything less as
// ErrMalformedUploadResponse.
type UploadResult struct {
	URL       string `json:"url"`
	Bucket    string `json:"bucket"`
	ObjectKey string `json:"objectKey"`
}

// UploadRequest describes one object upload. Content is streamed as the
// multipart "file" field; IsCache marks transient objects the backend may
// reap.
type UploadRequest struct {
	Bucket   string
	Filename string
	Content  io.Reader
	IsCache  bool
}

// Page is the backend's standard paged listing shape.
type Page[T any] struct {
	Records []T   `json:"records"`
	Total   int64 `json:"total"`
	Size    int   `json:"size"`
	Current int   `json:"current"`
}

// PageQuery carries the common pagination parameters.
type PageQuery struct {
	Current int
	Size    int
}
