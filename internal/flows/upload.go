package flows

import (
	"context"
	"encoding/json"
	"io"
	"strings"
)

// UploadDeps wires the upload flow to identity, session state and the
// file pipeline.
type UploadDeps struct {
	// UserID resolves the caller's identity. The flow fails hard when
	// this returns an error.
	UserID func(ctx context.Context) (string, error)
	// CurrentAvatar returns the signed-in user's avatar URL, or "".
	CurrentAvatar func(ctx context.Context) string
	// IsDefaultAvatar reports whether a URL points at the stock avatar.
	IsDefaultAvatar func(url string) bool
	// DeleteObject removes a stored object. Failures are advisory: the
	// callee logs them and the flow proceeds regardless.
	DeleteObject func(ctx context.Context, bucket, objectKey string)
	// Send performs the multipart upload and returns the unwrapped payload.
	Send func(ctx context.Context, userID, bucket, filename string, content io.Reader, isCache bool) (json.RawMessage, error)
}

// Upload runs the full upload protocol: resolve identity, clean up the
// previous avatar when targeting the avatar bucket, then send.
func Upload(ctx context.Context, deps UploadDeps, avatarBucket, bucket, filename string, content io.Reader, isCache bool) (json.RawMessage, error) {
	userID, err := deps.UserID(ctx)
	if err != nil {
		return nil, err
	}

	if bucket == avatarBucket {
		cleanupStaleAvatar(ctx, deps, avatarBucket)
	}

	return deps.Send(ctx, userID, bucket, filename, content, isCache)
}

// cleanupStaleAvatar deletes the previously stored avatar object so the
// bucket does not accumulate one object per change. Default avatars and
// URLs too short to carry an object key are left alone.
func cleanupStaleAvatar(ctx context.Context, deps UploadDeps, avatarBucket string) {
	old := deps.CurrentAvatar(ctx)
	if old == "" || deps.IsDefaultAvatar(old) {
		return
	}
	key, ok := staleObjectKey(old)
	if !ok {
		return
	}
	deps.DeleteObject(ctx, avatarBucket, key)
}

// staleObjectKey derives the object key from a stored avatar URL: the
// last two path segments, joined. Both must be non-empty.
func staleObjectKey(url string) (string, bool) {
	parts := strings.Split(url, "/")
	if len(parts) < 2 {
		return "", false
	}
	dir, name := parts[len(parts)-2], parts[len(parts)-1]
	if dir == "" || name == "" {
		return "", false
	}
	return dir + "/" + name, true
}
