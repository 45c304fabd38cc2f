package rsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rsplatform/rsclient/internal/flows"
)

// ResolveFileURL derives the public address of a stored object. When the
// object key already embeds a path it is assumed to carry the owning
// user segment; otherwise the session's user id is injected between
// bucket and key.
//
// Resolution never fails: any precondition miss — empty key, no session,
// no usable user id — yields the fixed placeholder address.
func (c *Client) ResolveFileURL(ctx context.Context, bucket, objectKey string) string {
	placeholder := c.config.Endpoints.FileURL + c.config.Files.PlaceholderPath

	if objectKey == "" {
		return placeholder
	}
	if bucket == "" {
		bucket = "default"
	}

	userID, err := c.sessionUserID(ctx)
	if err != nil {
		return placeholder
	}

	if strings.Contains(objectKey, "/") {
		return fmt.Sprintf("%s/file/%s/%s", c.config.Endpoints.FileURL, bucket, objectKey)
	}
	return fmt.Sprintf("%s/file/%s/%s/%s", c.config.Endpoints.FileURL, bucket, userID, objectKey)
}

// Upload stores an object and returns its validated address. The caller
// must be signed in with a usable user id; uploads to the avatar bucket
// first garbage-collect the previous avatar object.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	deps := flows.UploadDeps{
		UserID: c.sessionUserID,
		CurrentAvatar: func(ctx context.Context) string {
			rec, err := c.sessions.Load(ctx)
			if err != nil || !rec.IsLoggedIn() {
				return ""
			}
			return rec.User.Avatar
		},
		IsDefaultAvatar: func(url string) bool {
			return strings.Contains(url, c.config.Files.DefaultAvatarMarker)
		},
		DeleteObject: c.cleanupAvatarObject,
		Send:         c.sendUpload,
	}

	raw, err := flows.Upload(ctx, deps, c.config.Files.AvatarBucket, req.Bucket, req.Filename, req.Content, req.IsCache)
	if err != nil {
		return nil, err
	}

	result, err := validateUploadResult(raw)
	if err != nil {
		c.metrics.Inc(MetricUploadRejected)
		c.audit.Emit(ctx, AuditEvent{
			Timestamp: time.Now(),
			EventType: AuditUploadRejected,
			Error:     err.Error(),
		})
		if !silentFromContext(ctx) {
			c.notifier.Notify(ctx, Notification{Level: NotifyError, Message: "file service returned an unusable upload result"})
		}
		return nil, err
	}

	c.metrics.Inc(MetricUploadSuccess)
	c.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: AuditUploadSuccess,
		Success:   true,
		Metadata:  map[string]string{"bucket": result.Bucket, "objectKey": result.ObjectKey},
	})
	return result, nil
}

// FetchFile retrieves an object's raw content.
func (c *Client) FetchFile(ctx context.Context, bucket, objectKey string) ([]byte, error) {
	return c.files.getBinary(ctx, fmt.Sprintf("/file/%s/%s", bucket, objectKey))
}

// DeleteFile removes a stored object.
func (c *Client) DeleteFile(ctx context.Context, bucket, objectKey string) error {
	return c.files.delete(ctx, fmt.Sprintf("/file/%s/%s", bucket, objectKey), nil)
}

// sessionUserID resolves the signed-in user's id, or ErrMissingIdentity.
func (c *Client) sessionUserID(ctx context.Context) (string, error) {
	rec, err := c.sessions.Load(ctx)
	if err != nil || !rec.IsLoggedIn() {
		return "", apiError(ErrMissingIdentity, 0, 0, "no signed-in user", nil)
	}
	id, ok := rec.User.StringID()
	if !ok {
		return "", apiError(ErrMissingIdentity, 0, 0, "session carries no usable user id", nil)
	}
	return id, nil
}

// cleanupAvatarObject deletes a superseded avatar. The delete is
// advisory; a failure is recorded and the upload proceeds.
func (c *Client) cleanupAvatarObject(ctx context.Context, bucket, objectKey string) {
	if err := c.DeleteFile(WithSilent(ctx), bucket, objectKey); err != nil {
		c.metrics.Inc(MetricAvatarCleanupFailed)
		c.logger.Warn().Err(err).
			Str("bucket", bucket).
			Str("objectKey", objectKey).
			Msg("stale avatar cleanup failed")
		c.audit.Emit(ctx, AuditEvent{
			Timestamp: time.Now(),
			EventType: AuditAvatarCleanup,
			Error:     err.Error(),
			Metadata:  map[string]string{"bucket": bucket, "objectKey": objectKey},
		})
		return
	}
	c.metrics.Inc(MetricAvatarCleanup)
}

// sendUpload performs the multipart POST on the file pipeline.
func (c *Client) sendUpload(ctx context.Context, userID, bucket, filename string, content io.Reader, isCache bool) (json.RawMessage, error) {
	fields := map[string]string{}
	if isCache {
		fields["is_cache"] = "true"
	}
	body, contentType, err := multipartForm("file", filename, content, fields)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	err = c.files.postMultipart(ctx, "/file/upload/"+bucket, body, contentType,
		map[string]string{headerUserID: userID}, &raw)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// validateUploadResult enforces the upload contract: url, bucket, and
// objectKey must all be present as strings. Anything less is rejected
// outright rather than surfaced as a partial result.
func validateUploadResult(raw json.RawMessage) (*UploadResult, error) {
	var probe struct {
		URL       *string `json:"url"`
		Bucket    *string `json:"bucket"`
		ObjectKey *string `json:"objectKey"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, apiError(ErrMalformedUploadResponse, 0, 0, "upload response is not an object", raw)
	}
	if probe.URL == nil || probe.Bucket == nil || probe.ObjectKey == nil {
		return nil, apiError(ErrMalformedUploadResponse, 0, 0, "upload response is missing url, bucket, or objectKey", raw)
	}
	return &UploadResult{URL: *probe.URL, Bucket: *probe.Bucket, ObjectKey: *probe.ObjectKey}, nil
}
