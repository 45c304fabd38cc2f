package rsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Dataset is a training dataset archive catalogued by the backend.
type Dataset struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	UserID      int64  `json:"userId"`
	Bucket      string `json:"bucket"`
	ObjectKey   string `json:"objectKey"`
	Description string `json:"description"`
	Status      int    `json:"status"`
	CreateTime  string `json:"createTime"`
	UpdateTime  string `json:"updateTime"`
}

// DatasetCreate uploads a dataset archive with its metadata in one
// multipart request.
type DatasetCreate struct {
	Name        string
	Description string
	Filename    string
	Archive     io.Reader
}

// DatasetQuery filters the paged dataset listing.
type DatasetQuery struct {
	PageQuery
	Name   string
	Status *int
}

// DatasetUpdate rewrites a dataset's metadata.
type DatasetUpdate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      int    `json:"status"`
}

// CreateDataset uploads and registers a dataset, returning its id.
func (c *Client) CreateDataset(ctx context.Context, create DatasetCreate) (int64, error) {
	body, contentType, err := multipartForm("file", create.Filename, create.Archive, map[string]string{
		"name":        create.Name,
		"description": create.Description,
	})
	if err != nil {
		return 0, err
	}

	var id json.Number
	if err := c.business.postMultipart(ctx, "/dataset", body, contentType, nil, &id); err != nil {
		return 0, err
	}
	return id.Int64()
}

// Datasets pages through the dataset catalogue.
func (c *Client) Datasets(ctx context.Context, q DatasetQuery) (*Page[Dataset], error) {
	query := pageQueryValues(q.PageQuery)
	if q.Name != "" {
		query.Set("name", q.Name)
	}
	if q.Status != nil {
		query.Set("status", strconv.Itoa(*q.Status))
	}
	var page Page[Dataset]
	if err := c.business.get(ctx, "/list_datasets", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Dataset fetches one dataset by id.
func (c *Client) Dataset(ctx context.Context, id int64) (*Dataset, error) {
	var ds Dataset
	if err := c.business.get(ctx, fmt.Sprintf("/dataset/%d", id), nil, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// UpdateDataset rewrites a dataset's metadata.
func (c *Client) UpdateDataset(ctx context.Context, id int64, update DatasetUpdate) error {
	return c.business.put(ctx, fmt.Sprintf("/dataset/%d", id), update, nil)
}

// DeleteDataset removes a dataset.
func (c *Client) DeleteDataset(ctx context.Context, id int64) error {
	return c.business.delete(ctx, fmt.Sprintf("/dataset/%d", id), nil)
}

// DownloadDataset retrieves the dataset archive's raw bytes.
func (c *Client) DownloadDataset(ctx context.Context, id int64) ([]byte, error) {
	return c.business.getBinary(ctx, fmt.Sprintf("/dataset/%d/download", id))
}
