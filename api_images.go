package rsclient

import (
	"context"
	"fmt"
	"io"
	"strconv"
)

// Image is a catalogued remote-sensing image. The object itself lives in
// storage; this record carries its address and raster metadata.
type Image struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BucketName  string `json:"bucketName"`
	ObjectKey   string `json:"objectKey"`
	Size        int64  `json:"size"`
	Format      string `json:"format"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Bands       int    `json:"bands"`
	Status      int    `json:"status"`
	CreateTime  string `json:"createTime"`
	UpdateTime  string `json:"updateTime"`
}

// ImageCreate registers an already-uploaded object as an image.
type ImageCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	BucketName  string `json:"bucketName"`
	ObjectKey   string `json:"objectKey"`
	Size        int64  `json:"size"`
	Format      string `json:"format"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Bands       int    `json:"bands"`
}

// ImageQuery filters the paged image listing. Zero values are omitted.
type ImageQuery struct {
	PageQuery
	Name   string
	Format string
	Status *int
}

const imagesBucket = "images"

// UploadImageFile stores a raw image file in the images bucket. The
// returned address feeds [Client.CreateImage].
func (c *Client) UploadImageFile(ctx context.Context, filename string, content io.Reader) (*UploadResult, error) {
	return c.Upload(ctx, UploadRequest{Bucket: imagesBucket, Filename: filename, Content: content})
}

// ImageFileURL resolves the public address of a stored image file.
func (c *Client) ImageFileURL(ctx context.Context, bucket, objectKey string) string {
	return c.ResolveFileURL(ctx, bucket, objectKey)
}

// DeleteImageFile removes a stored image file.
func (c *Client) DeleteImageFile(ctx context.Context, bucket, objectKey string) error {
	return c.DeleteFile(ctx, bucket, objectKey)
}

// CreateImage catalogues an uploaded image.
func (c *Client) CreateImage(ctx context.Context, create ImageCreate) (*Image, error) {
	var img Image
	if err := c.business.post(ctx, "/images", create, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

// Images pages through the image catalogue.
func (c *Client) Images(ctx context.Context, q ImageQuery) (*Page[Image], error) {
	query := pageQueryValues(q.PageQuery)
	if q.Name != "" {
		query.Set("name", q.Name)
	}
	if q.Format != "" {
		query.Set("format", q.Format)
	}
	if q.Status != nil {
		query.Set("status", strconv.Itoa(*q.Status))
	}
	var page Page[Image]
	if err := c.business.get(ctx, "/images", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Image fetches one catalogued image by id.
func (c *Client) Image(ctx context.Context, id int64) (*Image, error) {
	var img Image
	if err := c.business.get(ctx, fmt.Sprintf("/images/%d", id), nil, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

// DeleteImage removes a catalogue entry. The stored file is deleted
// separately through [Client.DeleteImageFile].
func (c *Client) DeleteImage(ctx context.Context, id int64) error {
	return c.business.delete(ctx, fmt.Sprintf("/images/%d", id), nil)
}
